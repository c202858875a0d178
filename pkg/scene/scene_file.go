package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
)

// SupportedExtensions lists the scene description formats LoadFile understands
var SupportedExtensions = []string{".json", ".yaml", ".yml", ".toml"}

// sphereDescription is one sphere record in a scene file
type sphereDescription struct {
	Center []float64 `mapstructure:"center"`
	Radius float64   `mapstructure:"radius"`
	Color  []float64 `mapstructure:"color"`
}

// sceneDescription is the on-disk form of a scene
type sceneDescription struct {
	Name       string              `mapstructure:"name"`
	Background []float64           `mapstructure:"background"`
	Spheres    []sphereDescription `mapstructure:"spheres"`
}

// LoadFile reads a scene description from a JSON, YAML or TOML file:
//
//	name: mirrors
//	background: [0.7, 0.7, 0.9]
//	spheres:
//	  - {center: [0, 0, -5], radius: 1, color: [1, 0.32, 0.36]}
func LoadFile(path string) (*Scene, error) {
	if !IsSceneFile(path) {
		return nil, fmt.Errorf("unsupported scene file extension %q", filepath.Ext(path))
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}

	var desc sceneDescription
	if err := v.Unmarshal(&desc); err != nil {
		return nil, fmt.Errorf("failed to decode scene file %s: %w", path, err)
	}

	s, err := desc.build()
	if err != nil {
		return nil, fmt.Errorf("invalid scene file %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// IsSceneFile reports whether the path has a supported scene file extension
func IsSceneFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

func (d sceneDescription) build() (*Scene, error) {
	s := NewScene(d.Name)

	if d.Background != nil {
		bg, err := toVec3(d.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		s.Background = bg
	}

	for i, sd := range d.Spheres {
		center, err := toVec3(sd.Center)
		if err != nil {
			return nil, fmt.Errorf("sphere %d center: %w", i, err)
		}
		color, err := toVec3(sd.Color)
		if err != nil {
			return nil, fmt.Errorf("sphere %d color: %w", i, err)
		}
		s.Add(geometry.NewSphere(center, sd.Radius, color))
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func toVec3(values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}
