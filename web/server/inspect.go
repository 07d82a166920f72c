package server

import (
	"errors"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// inspectMinT matches the integrator's self-intersection guard
const inspectMinT = 0.001

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// handleInspect casts the camera ray through the center of pixel (x, y)
// and reports what it hits first
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	sceneID := values.Get("scene")
	if sceneID == "" {
		sceneID = defaultScene
	}
	if _, ok := scene.Lookup(sceneID); !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown scene: " + sceneID})
	}

	width, err := parseIntParam(values, "width", 0, minWidth, maxWidth)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	sc, err := scene.Build(sceneID, scene.Options{Width: width, TexturePath: s.config.TexturePath})
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	config := sc.GetSamplingConfig()

	x, err := parseIntParam(values, "x", -1, 0, config.Width-1)
	if err == nil && x < 0 {
		err = errors.New("missing x")
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	y, err := parseIntParam(values, "y", -1, 0, config.Height-1)
	if err == nil && y < 0 {
		err = errors.New("missing y")
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, inspectPixel(sc, x, y))
}

// inspectPixel traces the ray through the center of pixel (x, y), y=0 being
// the top row. Lens and shutter draws come from a fixed seed.
func inspectPixel(sc *scene.Scene, x, y int) InspectResponse {
	config := sc.GetSamplingConfig()
	sampler := core.NewSeededSampler(0)

	u := (float64(x) + 0.5) / float64(config.Width)
	v := (float64(config.Height-1-y) + 0.5) / float64(config.Height)

	var ray core.Ray
	if camera, ok := sc.GetCamera().(*renderer.Camera); ok {
		ray = camera.GetRayST(u, v, sampler)
	} else {
		ray = sc.GetCamera().GetRay(x, y, sampler)
	}

	hit, isHit := sc.GetWorld().Hit(ray, inspectMinT, math.Inf(1), sampler)
	if !isHit {
		background := integrator.BackgroundColor(ray, sc)
		return InspectResponse{
			Properties: map[string]interface{}{"background": vecToArray(background)},
		}
	}

	materialType, properties := extractMaterialInfo(hit.Material)
	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        vecToArray(hit.Point),
		Normal:       vecToArray(hit.Normal),
		Distance:     hit.T * ray.Direction.Length(),
		FrontFace:    hit.FrontFace,
		Properties:   properties,
	}
}

// extractMaterialInfo extracts material details with type assertions
func extractMaterialInfo(mat core.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = describeTexture(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecToArray(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		return "dielectric", properties

	case *material.DiffuseLight:
		properties["emission"] = describeTexture(m.Emission)
		return "diffuse-light", properties

	case *material.Isotropic:
		properties["albedo"] = describeTexture(m.Albedo)
		return "isotropic", properties

	default:
		return "unknown", properties
	}
}

func describeTexture(texture core.ColorSource) interface{} {
	switch t := texture.(type) {
	case *material.SolidColor:
		return vecToArray(t.Color)
	case *material.CheckerTexture:
		return map[string]interface{}{"type": "checker", "even": describeTexture(t.Even), "odd": describeTexture(t.Odd)}
	case *material.NoiseTexture:
		return map[string]interface{}{"type": "noise", "scale": t.Scale}
	case *material.ImageTexture:
		return map[string]interface{}{"type": "image", "width": t.Width, "height": t.Height}
	default:
		return "unknown"
	}
}

func vecToArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
