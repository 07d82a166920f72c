package scene

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var logger = log.New("scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         core.Camera
	CameraConfig   renderer.CameraConfig
	TopColor       core.Vec3    // Background color straight up
	BottomColor    core.Vec3    // Background color straight down; equal colors give a flat background
	Shapes         []core.Shape // Objects in the scene
	SamplingConfig core.SamplingConfig
	UseBVH         bool // Accelerate hit queries with a BVH instead of a linear scan

	world core.Shape
}

// Options are the caller's overrides for a built-in scene. Zero values keep
// the scene's recommended settings.
type Options struct {
	Width           int    // Image width in pixels
	SamplesPerPixel int    // Camera rays per pixel
	MaxDepth        int    // Maximum bounce depth
	Seed            int64  // Seed for scene generation and BVH axis choices
	TexturePath     string // Image file for textured scenes
}

// DefaultTexturePath is the earth texture used when Options.TexturePath is empty
const DefaultTexturePath = "earthmap.jpg"

// GetCamera returns the scene camera
func (s *Scene) GetCamera() core.Camera {
	return s.Camera
}

// GetBackgroundColors returns the gradient endpoints used for rays that escape
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetWorld returns the hit-query root built by Preprocess. Before Preprocess
// it falls back to a linear scan over Shapes.
func (s *Scene) GetWorld() core.Shape {
	if s.world == nil {
		return core.NewShapeList(s.Shapes...)
	}
	return s.world
}

// GetSamplingConfig returns the sampling configuration
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}

// GetPrimitiveCount returns the number of top-level shapes
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// Preprocess builds the hit-query root: a BVH over the shutter interval when
// UseBVH is set, a linear shape list otherwise
func (s *Scene) Preprocess(random *rand.Rand) error {
	if !s.UseBVH {
		s.world = core.NewShapeList(s.Shapes...)
		return nil
	}

	start := time.Now()
	bvh, err := core.NewBVH(s.Shapes, s.CameraConfig.Time0, s.CameraConfig.Time1, random)
	if err != nil {
		return fmt.Errorf("failed to build scene BVH: %w", err)
	}
	s.world = bvh

	stats := bvh.Stats()
	logger.Debugf("built BVH over %d shapes in %v: %d interior nodes, %d leaves, depth %d, bounds center %v size %v",
		len(s.Shapes), time.Since(start), stats.InteriorNodes, stats.Leaves, stats.MaxDepth, bvh.Box.Center(), bvh.Box.Size())
	return nil
}

// newScene applies the caller's overrides to a builder's recommended settings,
// creates the camera and preprocesses the shapes
func newScene(opts Options, cameraConfig renderer.CameraConfig, samplingConfig core.SamplingConfig,
	topColor, bottomColor core.Vec3, shapes []core.Shape) (*Scene, error) {

	if opts.Width > 0 {
		cameraConfig.Width = opts.Width
	}
	if opts.SamplesPerPixel > 0 {
		samplingConfig.SamplesPerPixel = opts.SamplesPerPixel
	}
	if opts.MaxDepth > 0 {
		samplingConfig.MaxDepth = opts.MaxDepth
	}
	samplingConfig.Width = cameraConfig.Width
	samplingConfig.Height = cameraConfig.Height()

	s := &Scene{
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		TopColor:       topColor,
		BottomColor:    bottomColor,
		Shapes:         shapes,
		SamplingConfig: samplingConfig,
		UseBVH:         true,
	}

	// BVH axes draw from their own generator
	if err := s.Preprocess(rand.New(rand.NewSource(opts.Seed + 1))); err != nil {
		return nil, err
	}
	return s, nil
}
