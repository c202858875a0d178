package scene

import (
	"fmt"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
)

// DefaultBackground is the color returned for rays that escape the scene
var DefaultBackground = core.NewVec3(0.7, 0.7, 0.9)

// Scene contains all the elements needed for rendering.
// It is built once and must not be modified while a render is running.
type Scene struct {
	Name       string
	Shapes     []geometry.Sphere // Spheres in scan order; earlier spheres win exact distance ties
	Background core.Vec3
}

// NewScene creates a scene with the default background
func NewScene(name string, spheres ...geometry.Sphere) *Scene {
	return &Scene{
		Name:       name,
		Shapes:     spheres,
		Background: DefaultBackground,
	}
}

// GetSpheres returns the spheres in scan order
func (s *Scene) GetSpheres() []geometry.Sphere {
	return s.Shapes
}

// GetBackground returns the background color
func (s *Scene) GetBackground() core.Vec3 {
	return s.Background
}

// Add appends a sphere to the scene
func (s *Scene) Add(sphere geometry.Sphere) {
	s.Shapes = append(s.Shapes, sphere)
}

// Validate checks that every sphere has a positive radius
func (s *Scene) Validate() error {
	for i, sphere := range s.Shapes {
		if !(sphere.Radius > 0) {
			return fmt.Errorf("sphere %d: radius must be positive, got %g", i, sphere.Radius)
		}
	}
	return nil
}
