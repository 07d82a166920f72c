package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Framebuffer holds per-pixel sample accumulators in row-major order, top row first.
// Each tile writes a disjoint rectangle, so concurrent tiles need no locking.
type Framebuffer struct {
	Width, Height int
	Pixels        [][]PixelStats
}

// NewFramebuffer allocates an empty framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	pixels := make([][]PixelStats, height)
	for y := range pixels {
		pixels[y] = make([]PixelStats, width)
	}
	return &Framebuffer{Width: width, Height: height, Pixels: pixels}
}

// At returns the accumulator for pixel (x, y)
func (fb *Framebuffer) At(x, y int) *PixelStats {
	return &fb.Pixels[y][x]
}

// ToneMap converts an averaged linear color to 8-bit channels: gamma 2 (square
// root), clamp to [0, 0.999], scale by 256
func ToneMap(c core.Vec3) (r, g, b uint8) {
	finite := func(v float64) float64 {
		if math.IsNaN(v) || v < 0 {
			return 0
		}
		return v
	}
	c = core.NewVec3(finite(c.X), finite(c.Y), finite(c.Z)).GammaCorrect(2).Clamp(0, 0.999)
	return uint8(256 * c.X), uint8(256 * c.Y), uint8(256 * c.Z)
}

// Image converts the framebuffer to an RGBA image using ToneMap
func (fb *Framebuffer) Image() *image.RGBA {
	return fb.TileImage(image.Rect(0, 0, fb.Width, fb.Height))
}

// TileImage converts the pixels inside bounds to an RGBA image with its
// origin at (0, 0)
func (fb *Framebuffer) TileImage(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, fb.Width, fb.Height))
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b := ToneMap(fb.Pixels[y][x].GetColor())
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
