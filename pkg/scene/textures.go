package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

var texturedSampling = core.SamplingConfig{
	SamplesPerPixel: 100,
	MaxDepth:        50,
}

// NewTwoSpheresScene creates two large checker spheres touching at the origin
func NewTwoSpheresScene(opts Options) (*Scene, error) {
	checker := material.NewTexturedLambertian(material.NewCheckerTexture(
		material.NewSolidColor(core.NewVec3(0.2, 0.3, 0.1)),
		material.NewSolidColor(core.NewVec3(0.9, 0.9, 0.9)),
	))

	shapes := []core.Shape{
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	}
	return newScene(opts, sphereFieldCamera(0), texturedSampling, skyTop, skyBottom, shapes)
}

// NewTwoPerlinSpheresScene creates a marble ground with a marble sphere on it
func NewTwoPerlinSpheresScene(opts Options) (*Scene, error) {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, rand.New(rand.NewSource(opts.Seed))))

	shapes := []core.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	}
	return newScene(opts, sphereFieldCamera(0), texturedSampling, skyTop, skyBottom, shapes)
}

// NewEarthScene creates a globe textured with the image at opts.TexturePath
func NewEarthScene(opts Options) (*Scene, error) {
	earth, err := loadEarthTexture(opts)
	if err != nil {
		return nil, err
	}

	shapes := []core.Shape{
		geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(earth)),
	}
	return newScene(opts, sphereFieldCamera(0), texturedSampling, skyTop, skyBottom, shapes)
}

func loadEarthTexture(opts Options) (*material.ImageTexture, error) {
	path := opts.TexturePath
	if path == "" {
		path = DefaultTexturePath
	}
	return loaders.LoadImageTexture(path)
}
