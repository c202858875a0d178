package renderer

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/integrator"
)

// Config contains rendering configuration
type Config struct {
	Width      int     // Image width in pixels
	Height     int     // Image height in pixels
	FOV        float64 // Vertical field of view in radians
	MaxDepth   int     // Maximum number of bounces per pixel
	NumWorkers int     // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns the reference settings: 1920x1080, 90 degree field of view, 4 bounces
func DefaultConfig() Config {
	return Config{
		Width:      1920,
		Height:     1080,
		FOV:        math.Pi / 2.0,
		MaxDepth:   4,
		NumWorkers: 0,
	}
}

// Validate reports configuration values the camera cannot work with
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if !(c.FOV > 0 && c.FOV < math.Pi) {
		return fmt.Errorf("field of view must be in (0, pi) radians, got %g", c.FOV)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	}
	return nil
}

// Raytracer renders a scene one primary ray per pixel
type Raytracer struct {
	scene      integrator.Scene
	integrator integrator.Integrator
	camera     *Camera
	config     Config
}

// NewRaytracer creates a raytracer shading with the mirror integrator
func NewRaytracer(scene integrator.Scene, config Config) *Raytracer {
	return &Raytracer{
		scene:      scene,
		integrator: integrator.NewMirrorIntegrator(),
		camera:     NewCamera(config.Width, config.Height, config.FOV),
		config:     config,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Config returns the raytracer configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// RenderPixel traces the primary ray of pixel (i, j) and returns its color
// along with the number of rays traced
func (rt *Raytracer) RenderPixel(i, j int) (core.Vec3, int) {
	ray := rt.camera.GetRay(i, j)
	return rt.integrator.RayColor(ray, rt.scene, rt.config.MaxDepth)
}

// RenderRow renders row j into buf. Rows never share buffer slots, so
// different rows may be rendered concurrently.
func (rt *Raytracer) RenderRow(j int, buf *PixelBuffer) RenderStats {
	stats := newRenderStats()
	row := buf.Row(j)
	for i := range row {
		color, rays := rt.RenderPixel(i, j)
		row[i] = color
		stats.addPixel(rays)
	}
	stats.Rows = 1
	return stats
}

// Render renders the whole image in parallel and returns the populated buffer.
// Elapsed covers the render phase only.
func (rt *Raytracer) Render() (*PixelBuffer, RenderStats) {
	numWorkers := rt.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	Logger().Debug("render started",
		"width", rt.config.Width,
		"height", rt.config.Height,
		"maxDepth", rt.config.MaxDepth,
		"workers", numWorkers,
		"spheres", len(rt.scene.GetSpheres()))

	buf := NewPixelBuffer(rt.config.Width, rt.config.Height)
	pool := NewWorkerPool(rt, buf, numWorkers)

	startTime := time.Now()
	pool.Start()
	for j := 0; j < rt.config.Height; j++ {
		pool.SubmitTask(RowTask{Row: j})
	}
	stats := pool.Stop()

	stats.Elapsed = time.Since(startTime)

	Logger().Debug("render finished",
		"elapsed", stats.Elapsed,
		"rays", stats.TotalRays,
		"averageRays", stats.AverageRays)

	return buf, stats
}
