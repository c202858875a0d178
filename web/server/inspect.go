package server

import (
	"net/http"

	"github.com/df07/go-mirror-raytracer/pkg/integrator"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit         bool       `json:"hit"`
	SphereIndex int        `json:"sphereIndex"` // Position in scan order, -1 on miss
	Point       [3]float64 `json:"point"`
	Normal      [3]float64 `json:"normal"`
	Distance    float64    `json:"distance"`
	Color       [3]float64 `json:"color"`  // Flat color of the hit sphere
	Pixel       [3]float64 `json:"pixel"`  // Final shaded pixel value
	Center      [3]float64 `json:"center"` // Sphere center
	Radius      float64    `json:"radius"`
}

// handleInspect reports what the primary ray through pixel (x, y) hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r, s.defaults)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	query := r.URL.Query()
	x, err := parseIntParam(query, "x", req.Config.Width/2, 0, req.Config.Width-1)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseIntParam(query, "y", req.Config.Height/2, 0, req.Config.Height-1)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, ok := s.lookupScene(w, req.Scene)
	if !ok {
		return
	}

	camera := renderer.NewCamera(req.Config.Width, req.Config.Height, req.Config.FOV)
	ray := camera.GetRay(x, y)
	pixel, _ := renderer.NewRaytracer(sceneObj, req.Config).RenderPixel(x, y)

	response := InspectResponse{
		SphereIndex: -1,
		Pixel:       [3]float64{pixel.X, pixel.Y, pixel.Z},
	}

	spheres := sceneObj.GetSpheres()
	if sphere, t, isHit := integrator.ClosestHit(ray, spheres); isHit {
		point := ray.At(t)
		normal := sphere.Normal(point)
		for i := range spheres {
			if &spheres[i] == sphere {
				response.SphereIndex = i
				break
			}
		}
		response.Hit = true
		response.Distance = t
		response.Point = [3]float64{point.X, point.Y, point.Z}
		response.Normal = [3]float64{normal.X, normal.Y, normal.Z}
		response.Color = [3]float64{sphere.Color.X, sphere.Color.Y, sphere.Color.Z}
		response.Center = [3]float64{sphere.Center.X, sphere.Center.Y, sphere.Center.Z}
		response.Radius = sphere.Radius
	}

	s.writeJSON(w, http.StatusOK, response)
}
