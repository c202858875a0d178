package renderer

import (
	"math"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// Camera generates primary rays from the origin looking down -Z
type Camera struct {
	origin      core.Vec3
	width       int
	height      int
	scale       float64 // tan(fov/2)
	aspectRatio float64
}

// NewCamera creates a camera for a width x height image with the given
// vertical field of view in radians
func NewCamera(width, height int, fov float64) *Camera {
	return &Camera{
		origin:      core.NewVec3(0, 0, 0),
		width:       width,
		height:      height,
		scale:       math.Tan(fov / 2.0),
		aspectRatio: float64(width) / float64(height),
	}
}

// GetRay returns the primary ray through the center of pixel (i, j).
// Row 0 is the top of the image.
func (c *Camera) GetRay(i, j int) core.Ray {
	x := (2*(float64(i)+0.5)/float64(c.width) - 1) * c.scale * c.aspectRatio
	y := -(2*(float64(j)+0.5)/float64(c.height) - 1) * c.scale

	direction := core.NewVec3(x, y, -1)
	direction.Normalize()
	return core.NewRay(c.origin, direction)
}
