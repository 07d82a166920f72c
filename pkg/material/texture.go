package material

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// mustTexture panics when a material or texture is built without a color source
func mustTexture(owner string, texture core.ColorSource) core.ColorSource {
	if texture == nil {
		panic(fmt.Sprintf("%s: nil texture", owner))
	}
	return texture
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two textures in a 3D checker pattern
type CheckerTexture struct {
	Even core.ColorSource
	Odd  core.ColorSource
}

// NewCheckerTexture creates a checker pattern; both textures are required
func NewCheckerTexture(even, odd core.ColorSource) *CheckerTexture {
	return &CheckerTexture{
		Even: mustTexture("checker texture", even),
		Odd:  mustTexture("checker texture", odd),
	}
}

// Evaluate picks Odd where sin(10x)sin(10y)sin(10z) is negative, Even otherwise
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	sines := math.Sin(10*point.X) * math.Sin(10*point.Y) * math.Sin(10*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}

// NoiseTexture is a marble-like pattern driven by Perlin turbulence
type NoiseTexture struct {
	Scale float64
	noise *Perlin
}

// NewNoiseTexture creates a marble texture; random seeds the noise tables
func NewNoiseTexture(scale float64, random *rand.Rand) *NoiseTexture {
	return &NoiseTexture{Scale: scale, noise: NewPerlin(random)}
}

// Evaluate returns gray 0.5*(1 + sin(scale*z + 10*turb(p)))
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	gray := 0.5 * (1 + math.Sin(n.Scale*point.Z+10*n.noise.Turbulence(point, DefaultTurbulenceDepth)))
	return core.NewVec3(gray, gray, gray)
}

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, top row first: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the nearest pixel. UV is clamped to [0, 1], with NaN
// read as 0, and V is flipped so v=1 is the top row. An empty image
// evaluates to cyan so missing data is obvious in renders.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return core.NewVec3(0, 1, 1)
	}

	u := clampUnit(uv.X)
	v := 1 - clampUnit(uv.Y)

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	return t.Pixels[y*t.Width+x]
}

// clampUnit clamps x to [0, 1]; NaN, which survives math.Min and math.Max, becomes 0
func clampUnit(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(1, x))
}
