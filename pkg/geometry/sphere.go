package geometry

import (
	"math"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// HitEpsilon is the smallest ray parameter accepted as a hit. Roots closer to
// the ray origin are discarded so reflected rays do not re-hit their own surface.
const HitEpsilon = 0.001

// Sphere represents a sphere with a flat color
type Sphere struct {
	Center core.Vec3
	Radius float64
	Color  core.Vec3 // RGB in [0,1], not clamped
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, color core.Vec3) Sphere {
	return Sphere{
		Center: center,
		Radius: radius,
		Color:  color,
	}
}

// Intersect returns the nearest ray parameter greater than HitEpsilon at which
// the ray meets the sphere.
//
// A zero-length direction makes the quadratic degenerate (a == 0). The division
// then yields Inf or NaN and the comparisons below report a miss.
func (s Sphere) Intersect(ray core.Ray) (float64, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2.0 * a)
	t2 := (-b + sqrtD) / (2.0 * a)

	// Fall back to the far root when the origin is inside the sphere
	t := t2
	if t1 > HitEpsilon {
		t = t1
	}
	if t > HitEpsilon {
		return t, true
	}
	return 0, false
}

// Normal returns the outward unit normal at a point on the sphere surface
func (s Sphere) Normal(point core.Vec3) core.Vec3 {
	normal := point.Subtract(s.Center)
	return normal.Normalize()
}
