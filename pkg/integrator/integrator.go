package integrator

import (
	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
)

// Scene is the read-only view of a scene the integrators need.
// Defined here to avoid importing pkg/scene.
type Scene interface {
	GetSpheres() []geometry.Sphere
	GetBackground() core.Vec3
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color seen along a ray with the given bounce budget
	// and reports how many rays were traced to compute it
	RayColor(ray core.Ray, scene Scene, depth int) (core.Vec3, int)
}
