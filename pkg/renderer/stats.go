package renderer

import (
	"math"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	TotalRays   int           // Primary and reflected rays traced
	AverageRays float64       // Average rays per pixel
	MinRays     int           // Fewest rays used by any pixel
	MaxRays     int           // Most rays used by any pixel
	Rows        int           // Rows rendered
	Workers     int           // Workers that shared the rows
	Elapsed     time.Duration // Wall-clock time of the render phase
}

func newRenderStats() RenderStats {
	return RenderStats{MinRays: math.MaxInt}
}

// addPixel records the ray count of a single pixel
func (s *RenderStats) addPixel(rays int) {
	s.TotalPixels++
	s.TotalRays += rays
	s.MinRays = min(s.MinRays, rays)
	s.MaxRays = max(s.MaxRays, rays)
}

// merge folds statistics gathered by another worker into s
func (s *RenderStats) merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalRays += other.TotalRays
	s.MinRays = min(s.MinRays, other.MinRays)
	s.MaxRays = max(s.MaxRays, other.MaxRays)
	s.Rows += other.Rows
}

// finalize calculates derived statistics once all pixels are rendered
func (s *RenderStats) finalize() {
	if s.TotalPixels == 0 {
		s.MinRays = 0
		return
	}
	s.AverageRays = float64(s.TotalRays) / float64(s.TotalPixels)
}
