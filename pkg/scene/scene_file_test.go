package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

func writeSceneFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	return path
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeSceneFile(t, "mirrors.json", `{
  "name": "mirrors",
  "background": [0.1, 0.2, 0.3],
  "spheres": [
    {"center": [-1, 0, -5], "radius": 1, "color": [1, 0, 0]},
    {"center": [1, 0, -5], "radius": 0.5, "color": [0, 0, 1]}
  ]
}`)

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if s.Name != "mirrors" {
		t.Errorf("Name = %q, want mirrors", s.Name)
	}
	if s.GetBackground() != core.NewVec3(0.1, 0.2, 0.3) {
		t.Errorf("Background = %v", s.GetBackground())
	}
	spheres := s.GetSpheres()
	if len(spheres) != 2 {
		t.Fatalf("Expected 2 spheres, got %d", len(spheres))
	}
	if spheres[0].Center != core.NewVec3(-1, 0, -5) || spheres[0].Radius != 1 || spheres[0].Color != core.NewVec3(1, 0, 0) {
		t.Errorf("Unexpected first sphere %+v", spheres[0])
	}
	if spheres[1].Radius != 0.5 {
		t.Errorf("Expected second radius 0.5, got %f", spheres[1].Radius)
	}
}

func TestLoadFile_YAMLDefaults(t *testing.T) {
	path := writeSceneFile(t, "two-balls.yaml", `spheres:
  - center: [0, 0, -4]
    radius: 2
    color: [0.5, 0.5, 0.5]
`)

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if s.Name != "two-balls" {
		t.Errorf("Expected name from file name, got %q", s.Name)
	}
	if s.GetBackground() != DefaultBackground {
		t.Errorf("Expected default background, got %v", s.GetBackground())
	}
	if len(s.GetSpheres()) != 1 {
		t.Errorf("Expected 1 sphere, got %d", len(s.GetSpheres()))
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errText string
	}{
		{"bad extension", "scene.txt", "{}", "unsupported scene file extension"},
		{"bad radius", "r.json", `{"spheres": [{"center": [0,0,0], "radius": 0, "color": [1,1,1]}]}`, "radius must be positive"},
		{"short center", "c.json", `{"spheres": [{"center": [0,0], "radius": 1, "color": [1,1,1]}]}`, "sphere 0 center"},
		{"bad background", "b.json", `{"background": [1], "spheres": []}`, "background"},
		{"malformed json", "m.json", `{"spheres": [`, "failed to read scene file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSceneFile(t, tt.file, tt.content)
			s, err := LoadFile(path)
			if err == nil {
				t.Fatalf("Expected error, got scene %+v", s)
			}
			if !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("Expected error containing %q, got %v", tt.errText, err)
			}
		})
	}
}
