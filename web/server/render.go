package server

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/df07/go-mirror-raytracer/pkg/output"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

// Limits keep a single synchronous request from monopolizing the server
const (
	maxImageSize = 4096
	maxDepth     = 64
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string        // Scene name (e.g., "default")
	Format output.Format // Encoding of the response body
	Config renderer.Config
}

// handleScenes lists built-in scenes and scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, scenes)
}

// handleRender renders the requested scene and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	renderID := uuid.NewString()
	logger := s.logger.With("renderID", renderID)

	req, err := parseRenderRequest(r, s.defaults)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, ok := s.lookupScene(w, req.Scene)
	if !ok {
		return
	}

	raytracer := renderer.NewRaytracer(sceneObj, req.Config)
	buf, stats := raytracer.Render()

	var body bytes.Buffer
	if err := output.Encode(&body, buf, req.Format); err != nil {
		logger.Error("failed to encode image", "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to encode image")
		return
	}

	logger.Info("render complete",
		"scene", req.Scene,
		"width", req.Config.Width,
		"height", req.Config.Height,
		"elapsed", stats.Elapsed,
		"rays", stats.TotalRays)

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.Header().Set("X-Render-ID", renderID)
	w.Header().Set("X-Render-Time", stats.Elapsed.String())
	w.WriteHeader(http.StatusOK)
	if _, err := body.WriteTo(w); err != nil {
		logger.Warn("failed to write image", "err", err)
	}
}

// lookupScene resolves a scene ID, writing the error response on failure.
// Only built-in names and "file:" IDs from the scene list are served.
func (s *Server) lookupScene(w http.ResponseWriter, name string) (*scene.Scene, bool) {
	sceneObj, err := scene.LookupID(name)
	switch {
	case err == nil:
		return sceneObj, true
	case errors.Is(err, scene.ErrUnknownScene):
		s.writeError(w, http.StatusNotFound, "Unknown scene: "+name)
	case errors.Is(err, scene.ErrInvalidSceneName):
		s.writeError(w, http.StatusBadRequest, "Invalid scene name: "+name)
	default:
		s.logger.Error("failed to load scene", "scene", name, "err", err)
		s.writeError(w, http.StatusBadRequest, "Failed to load scene: "+name)
	}
	return nil, false
}

// parseRenderRequest parses request parameters, falling back to defaults
func parseRenderRequest(r *http.Request, defaults renderer.Config) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene:  "default",
		Format: output.FormatPNG,
		Config: defaults,
	}

	if sceneName := query.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	}
	if format := query.Get("format"); format != "" {
		parsed, err := output.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		req.Format = parsed
	}

	var err error
	if req.Config.Width, err = parseIntParam(query, "width", defaults.Width, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Config.Height, err = parseIntParam(query, "height", defaults.Height, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Config.MaxDepth, err = parseIntParam(query, "depth", defaults.MaxDepth, 0, maxDepth); err != nil {
		return nil, err
	}
	if query.Has("fov") {
		fov, err := parseFloatParam(query, "fov", 0, 1, 179)
		if err != nil {
			return nil, err
		}
		req.Config.FOV = fov * math.Pi / 180.0
	}

	return req, req.Config.Validate()
}
