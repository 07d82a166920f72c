package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var black = core.Vec3{}

// NewSimpleLightScene creates marble spheres lit only by emissive shapes
func NewSimpleLightScene(opts Options) (*Scene, error) {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, rand.New(rand.NewSource(opts.Seed))))
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	shapes := []core.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		geometry.NewXYRect(3, 5, 1, 3, -2, light),
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light),
	}

	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(26, 3, 6),
		LookAt:        core.NewVec3(0, 2, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		FocusDistance: 10.0,
	}
	samplingConfig := core.SamplingConfig{
		SamplesPerPixel: 400,
		MaxDepth:        50,
	}
	return newScene(opts, cameraConfig, samplingConfig, black, black, shapes)
}
