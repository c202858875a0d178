package scene

import (
	"math"
	"testing"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
)

func TestNewDefaultScene(t *testing.T) {
	s := NewDefaultScene()

	spheres := s.GetSpheres()
	if len(spheres) != 4 {
		t.Fatalf("Expected 4 spheres, got %d", len(spheres))
	}
	if s.GetBackground() != core.NewVec3(0.7, 0.7, 0.9) {
		t.Errorf("Unexpected background %v", s.GetBackground())
	}
	if spheres[0].Center != core.NewVec3(-3, 0, -16) || spheres[0].Radius != 2 {
		t.Errorf("Unexpected first sphere %+v", spheres[0])
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Default scene failed validation: %v", err)
	}
}

func TestScene_Validate(t *testing.T) {
	s := NewScene("bad", geometry.NewSphere(core.NewVec3(0, 0, -1), -1, core.NewVec3(1, 1, 1)))
	if err := s.Validate(); err == nil {
		t.Error("Expected validation error for negative radius")
	}

	s = NewScene("nan", geometry.NewSphere(core.NewVec3(0, 0, -1), math.NaN(), core.NewVec3(1, 1, 1)))
	if err := s.Validate(); err == nil {
		t.Error("Expected validation error for NaN radius")
	}
}

func TestNewSphereGridScene(t *testing.T) {
	tests := []struct {
		gridSize int
		expected int
	}{
		{1, 1},
		{3, 9},
		{10, 100},
		{0, 1},
	}

	for _, tt := range tests {
		s := NewSphereGridScene(tt.gridSize)
		spheres := s.GetSpheres()
		if len(spheres) != tt.expected {
			t.Errorf("gridSize %d: expected %d spheres, got %d", tt.gridSize, tt.expected, len(spheres))
			continue
		}
		for _, sphere := range spheres {
			if sphere.Center.Z >= 0 {
				t.Errorf("Sphere %v is behind the camera", sphere.Center)
			}
			c := sphere.Color
			if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
				t.Errorf("Sphere color %v out of range", c)
			}
		}
	}

	if center := NewSphereGridScene(1).GetSpheres()[0].Center; center.X != 0 || center.Y != 0 {
		t.Errorf("Single sphere grid should be centered, got %v", center)
	}
}
