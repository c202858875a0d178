package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned by Lookup when no built-in scene or scene file matches
var ErrUnknownScene = errors.New("unknown scene")

// ErrInvalidSceneName is returned when a "file:" ID is not a plain file name
var ErrInvalidSceneName = errors.New("invalid scene name")

// ScenesDir is the directory searched for scene description files
var ScenesDir = "scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to scene file (file type only)
}

type builtinScene struct {
	info  SceneInfo
	build func() *Scene
}

var builtinScenes = []builtinScene{
	{
		info:  SceneInfo{ID: "default", DisplayName: "Default Scene", Description: "Four reflective spheres"},
		build: NewDefaultScene,
	},
	{
		info:  SceneInfo{ID: "single-sphere", DisplayName: "Single Sphere", Description: "One sphere on the view axis"},
		build: NewSingleSphereScene,
	},
	{
		info:  SceneInfo{ID: "empty", DisplayName: "Empty", Description: "Background only"},
		build: NewEmptyScene,
	},
	{
		info:  SceneInfo{ID: "sphere-grid", DisplayName: "Sphere Grid", Description: "10x10 wall of rainbow-colored spheres"},
		build: func() *Scene { return NewSphereGridScene(10) },
	},
}

// ListBuiltinScenes returns metadata for the scenes compiled into the binary
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	return scenes
}

// ListSceneFiles scans dir for scene description files.
// A missing directory yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return []SceneInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !IsSceneFile(entry.Name()) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		scenes = append(scenes, SceneInfo{
			ID:          "file:" + name,
			DisplayName: titleCase(name),
			Type:        "file",
			FilePath:    filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ListAllScenes returns built-in scenes followed by the files found in ScenesDir
func ListAllScenes() ([]SceneInfo, error) {
	files, err := ListSceneFiles(ScenesDir)
	if err != nil {
		return nil, err
	}
	return append(ListBuiltinScenes(), files...), nil
}

// LookupID resolves a built-in scene name or a "file:<name>" ID naming a scene
// file directly inside ScenesDir. Filesystem paths are not accepted.
func LookupID(id string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.build(), nil
		}
	}

	fileName, ok := strings.CutPrefix(id, "file:")
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, id)
	}
	if fileName == "" || filepath.Base(fileName) != fileName || !filepath.IsLocal(fileName) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSceneName, id)
	}
	for _, ext := range SupportedExtensions {
		path := filepath.Join(ScenesDir, fileName+ext)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownScene, id)
}

// Lookup resolves a scene by built-in name, "file:<name>" ID, or file path
func Lookup(name string) (*Scene, error) {
	if !strings.HasPrefix(name, "file:") && IsSceneFile(name) {
		if _, err := os.Stat(name); err == nil {
			return LoadFile(name)
		}
	}
	return LookupID(name)
}

// titleCase converts a filename-style string to title case
// e.g., "mirror-hall" -> "Mirror Hall"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
