package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:        core.NewVec3(278, 278, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         600,
		AspectRatio:   1.0,
		VFov:          40.0,
		Aperture:      0.0,
		FocusDistance: 10.0,
		Time0:         0.0,
		Time1:         1.0,
	}
}

// cornellWalls returns the five walls plus the ceiling light
func cornellWalls(light core.Shape) []core.Shape {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	return []core.Shape{
		geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, green), // Left wall as seen from the camera
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, red),
		light,
		geometry.NewXZRect(0, boxSize, 0, boxSize, 0, white),       // Floor
		geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, white), // Ceiling
		geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, white), // Back wall
	}
}

// cornellBoxes returns the tall and short boxes, rotated about Y and moved into place
func cornellBoxes(m core.Material) (tall, short core.Shape) {
	tall = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), m)
	tall = geometry.NewRotateY(tall, 15)
	tall = geometry.NewTranslate(tall, core.NewVec3(265, 0, 295))

	short = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), m)
	short = geometry.NewRotateY(short, -18)
	short = geometry.NewTranslate(short, core.NewVec3(130, 0, 65))
	return tall, short
}

// NewCornellScene creates a classic Cornell box with two rotated boxes
func NewCornellScene(opts Options) (*Scene, error) {
	light := geometry.NewXZRect(213, 343, 227, 332, 554, material.NewDiffuseLight(core.NewVec3(15, 15, 15)))
	tall, short := cornellBoxes(material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)))

	shapes := append(cornellWalls(light), tall, short)
	samplingConfig := core.SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50,
	}
	return newScene(opts, cornellCamera(), samplingConfig, black, black, shapes)
}

// NewCornellSmokeScene fills the Cornell boxes with dark smoke and white fog
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	light := geometry.NewXZRect(113, 443, 127, 432, 554, material.NewDiffuseLight(core.NewVec3(7, 7, 7)))
	tall, short := cornellBoxes(material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)))

	shapes := append(cornellWalls(light),
		geometry.NewConstantMedium(tall, 0.01, material.NewSolidColor(core.NewVec3(0, 0, 0))),
		geometry.NewConstantMedium(short, 0.01, material.NewSolidColor(core.NewVec3(1, 1, 1))),
	)
	samplingConfig := core.SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50,
	}
	return newScene(opts, cornellCamera(), samplingConfig, black, black, shapes)
}
