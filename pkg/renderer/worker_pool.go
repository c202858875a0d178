package renderer

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RowTask asks a worker to render one image row
type RowTask struct {
	Row int
}

// WorkerPool hands image rows to a fixed set of workers on demand, so workers
// that finish cheap rows pick up more of them
type WorkerPool struct {
	raytracer  *Raytracer
	buffer     *PixelBuffer
	taskQueue  chan RowTask
	workers    []*Worker
	numWorkers int
	group      errgroup.Group
}

// Worker renders rows taken from the shared queue
type Worker struct {
	ID        int
	raytracer *Raytracer
	buffer    *PixelBuffer
	taskQueue chan RowTask
	stats     RenderStats // Owned by this worker until the pool stops
}

// NewWorkerPool creates a worker pool writing into buf
func NewWorkerPool(raytracer *Raytracer, buf *PixelBuffer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		raytracer:  raytracer,
		buffer:     buf,
		taskQueue:  make(chan RowTask, buf.Height), // Room for every row
		numWorkers: numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:        i,
			raytracer: raytracer,
			buffer:    buf,
			taskQueue: wp.taskQueue,
			stats:     newRenderStats(),
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.group.Go(worker.run)
	}
}

// SubmitTask queues a row for rendering
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// Stop closes the queue, waits for every queued row to finish and returns the
// merged statistics
func (wp *WorkerPool) Stop() RenderStats {
	close(wp.taskQueue)
	_ = wp.group.Wait()

	stats := newRenderStats()
	for _, worker := range wp.workers {
		stats.merge(worker.stats)
	}
	stats.Workers = wp.numWorkers
	stats.finalize()
	return stats
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run() error {
	for task := range w.taskQueue {
		w.stats.merge(w.raytracer.RenderRow(task.Row, w.buffer))
	}
	return nil
}
