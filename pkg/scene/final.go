package scene

import (
	"errors"
	"math/rand"
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewFinalScene creates the showcase scene: a field of boxes, a moving sphere,
// glass, metal, subsurface-like volumes, global mist, textures and an instanced
// sphere cluster
func NewFinalScene(opts Options) (*Scene, error) {
	random := rand.New(rand.NewSource(opts.Seed))
	sampler := core.NewRandomSampler(random)

	// Ground: 20x20 boxes of random height
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	var boxes []core.Shape
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := core.RandomInRange(sampler, 1, 101)
			boxes = append(boxes, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	shapes := []core.Shape{core.MustNewBVH(boxes, 0, 1, random)}

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	shapes = append(shapes, geometry.NewXZRect(123, 423, 147, 412, 554, light))

	center0 := core.NewVec3(400, 400, 200)
	center1 := center0.Add(core.NewVec3(30, 0, 0))
	shapes = append(shapes, geometry.NewMovingSphere(center0, center1, 0, 1, 50,
		material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	glass := material.NewDielectric(1.5)
	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, glass),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Blue medium inside a glass shell
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, glass)
	shapes = append(shapes, boundary,
		geometry.NewConstantMedium(boundary, 0.2, material.NewSolidColor(core.NewVec3(0.2, 0.4, 0.9))))

	// Thin mist over everything
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, glass)
	shapes = append(shapes, geometry.NewConstantMedium(mist, 0.0001, material.NewSolidColor(core.NewVec3(1, 1, 1))))

	globe, err := finalGlobeTexture(opts, random)
	if err != nil {
		return nil, err
	}
	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(globe)),
		geometry.NewSphere(core.NewVec3(220, 280, 300), 80,
			material.NewTexturedLambertian(material.NewNoiseTexture(0.1, random))),
	)

	// Cluster of 1000 small spheres, instanced with a rotation and a translation
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	cluster := make([]core.Shape, 0, 1000)
	for i := 0; i < 1000; i++ {
		cluster = append(cluster, geometry.NewSphere(core.RandomColor(sampler, 0, 165), 10, white))
	}
	clusterBVH := core.MustNewBVH(cluster, 0, 1, random)
	shapes = append(shapes,
		geometry.NewTranslate(geometry.NewRotateY(clusterBVH, 15), core.NewVec3(-100, 270, 395)))

	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(478, 278, -600),
		LookAt:        core.NewVec3(278, 278, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         800,
		AspectRatio:   1.0,
		VFov:          40.0,
		FocusDistance: 10.0,
		Time0:         0.0,
		Time1:         1.0,
	}
	samplingConfig := core.SamplingConfig{
		SamplesPerPixel: 1000,
		MaxDepth:        50,
	}
	return newScene(opts, cameraConfig, samplingConfig, black, black, shapes)
}

// finalGlobeTexture loads the earth image. A missing default file falls back to
// a marble texture; an explicitly requested file must load.
func finalGlobeTexture(opts Options, random *rand.Rand) (core.ColorSource, error) {
	earth, err := loadEarthTexture(opts)
	if err == nil {
		return earth, nil
	}
	if opts.TexturePath == "" && errors.Is(err, os.ErrNotExist) {
		logger.Warningf("%s not found, using marble for the globe", DefaultTexturePath)
		return material.NewNoiseTexture(1, random), nil
	}
	return nil, err
}
