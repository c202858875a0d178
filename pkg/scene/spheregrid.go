package scene

import (
	"math"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a wall of gridSize x gridSize spheres facing the camera.
// Hue varies across columns and chroma across rows.
func NewSphereGridScene(gridSize int) *Scene {
	if gridSize < 1 {
		gridSize = 1
	}
	s := NewScene("sphere-grid")

	// Fit the grid into roughly the same visual area regardless of its size
	targetArea := 9.0
	spacing := targetArea
	if gridSize > 1 {
		spacing = targetArea / float64(gridSize-1)
	}
	sphereRadius := math.Max(0.02, math.Min(0.45*spacing, 1.5))

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25
	depth := -14.0
	halfExtent := float64(gridSize-1) * spacing / 2.0

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - halfExtent
			y := float64(j)*spacing - halfExtent

			var hue, chroma float64
			if gridSize > 1 {
				hue = float64(i) / float64(gridSize-1) * 360.0
				chroma = minChroma + float64(j)/float64(gridSize-1)*(maxChroma-minChroma)
			}

			s.Add(geometry.NewSphere(
				core.NewVec3(x, y, depth),
				sphereRadius,
				oklchToRGB(baseLightness, chroma, hue),
			))
		}
	}

	return s
}
