package integrator

import (
	"math"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
)

const (
	// SurfaceWeight is the share of a hit sphere's own color in the shaded result
	SurfaceWeight = 0.2
	// ReflectionWeight is the share of the reflected ray's color
	ReflectionWeight = 0.8
)

// MirrorIntegrator shades every surface as a partial mirror: a fixed blend of the
// sphere's flat color and whatever the reflected ray sees. There are no lights
// and no shadows.
type MirrorIntegrator struct{}

// NewMirrorIntegrator creates a new mirror integrator
func NewMirrorIntegrator() *MirrorIntegrator {
	return &MirrorIntegrator{}
}

// Trace returns the color seen along ray with at most depth bounces
func (mi *MirrorIntegrator) Trace(ray core.Ray, scene Scene, depth int) core.Vec3 {
	color, _ := mi.RayColor(ray, scene, depth)
	return color
}

// RayColor implements Integrator
func (mi *MirrorIntegrator) RayColor(ray core.Ray, scene Scene, depth int) (core.Vec3, int) {
	// Out of bounces: no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}, 0
	}

	sphere, t, isHit := ClosestHit(ray, scene.GetSpheres())
	if !isHit {
		return scene.GetBackground(), 1
	}

	hitPoint := ray.At(t)
	normal := sphere.Normal(hitPoint)
	reflected := core.NewRay(hitPoint, ray.Direction.Reflect(normal))

	reflectedColor, rays := mi.RayColor(reflected, scene, depth-1)
	color := sphere.Color.Multiply(SurfaceWeight).Add(reflectedColor.Multiply(ReflectionWeight))
	return color, rays + 1
}

// ClosestHit scans all spheres and returns the one with the smallest hit distance.
// On an exact tie the sphere that comes first wins.
func ClosestHit(ray core.Ray, spheres []geometry.Sphere) (*geometry.Sphere, float64, bool) {
	var closest *geometry.Sphere
	closestSoFar := math.Inf(1)

	for i := range spheres {
		if t, isHit := spheres[i].Intersect(ray); isHit && t < closestSoFar {
			closestSoFar = t
			closest = &spheres[i]
		}
	}

	return closest, closestSoFar, closest != nil
}
