package scene

import (
	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
)

// NewDefaultScene creates the reference scene: four spheres in front of the camera
func NewDefaultScene() *Scene {
	return NewScene("default",
		geometry.NewSphere(core.NewVec3(-3, 0, -16), 2, core.NewVec3(1, 0.32, 0.36)),
		geometry.NewSphere(core.NewVec3(-1, -1.5, -12), 2, core.NewVec3(0.9, 0.76, 0.46)),
		geometry.NewSphere(core.NewVec3(1.5, -0.5, -18), 3, core.NewVec3(0.65, 0.77, 0.97)),
		geometry.NewSphere(core.NewVec3(7, 5, -18), 4, core.NewVec3(0.90, 0.90, 0.90)),
	)
}

// NewSingleSphereScene creates a scene with one sphere centered on the view axis
func NewSingleSphereScene() *Scene {
	return NewScene("single-sphere",
		geometry.NewSphere(core.NewVec3(0, 0, -5), 1, core.NewVec3(1, 0.32, 0.36)),
	)
}

// NewEmptyScene creates a scene with no spheres; every pixel shows the background
func NewEmptyScene() *Scene {
	return NewScene("empty")
}
