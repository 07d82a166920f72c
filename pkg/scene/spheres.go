package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var (
	skyTop    = core.NewVec3(0.5, 0.7, 1.0)
	skyBottom = core.NewVec3(1.0, 1.0, 1.0)
)

// sphereFieldCamera looks over the sphere field from (13, 2, 3)
func sphereFieldCamera(aperture float64) renderer.CameraConfig {
	config := renderer.DefaultCameraConfig()
	config.Aperture = aperture
	config.Time1 = 1.0
	return config
}

// NewRandomSpheresScene creates the classic field of random spheres
func NewRandomSpheresScene(opts Options) (*Scene, error) {
	return newSphereField(opts, false)
}

// NewBouncingSpheresScene is the sphere field with diffuse spheres moving
// upwards during the shutter interval
func NewBouncingSpheresScene(opts Options) (*Scene, error) {
	return newSphereField(opts, true)
}

func newSphereField(opts Options, bouncing bool) (*Scene, error) {
	random := rand.New(rand.NewSource(opts.Seed))
	sampler := core.NewRandomSampler(random)

	checker := material.NewCheckerTexture(
		material.NewSolidColor(core.NewVec3(0.2, 0.3, 0.1)),
		material.NewSolidColor(core.NewVec3(0.9, 0.9, 0.9)),
	)
	shapes := []core.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)),
	}

	clearance := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())
			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomColor(sampler, 0, 1).MultiplyVec(core.RandomColor(sampler, 0, 1))
				diffuse := material.NewLambertian(albedo)
				if bouncing {
					center1 := center.Add(core.NewVec3(0, core.RandomInRange(sampler, 0, 0.5), 0))
					shapes = append(shapes, geometry.NewMovingSphere(center, center1, 0, 1, 0.2, diffuse))
				} else {
					shapes = append(shapes, geometry.NewSphere(center, 0.2, diffuse))
				}
			case chooseMat < 0.95:
				albedo := core.RandomColor(sampler, 0.5, 1)
				fuzz := core.RandomInRange(sampler, 0, 0.5)
				shapes = append(shapes, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				shapes = append(shapes, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	samplingConfig := core.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
	return newScene(opts, sphereFieldCamera(0.1), samplingConfig, skyTop, skyBottom, shapes)
}
