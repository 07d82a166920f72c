package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// mockScene is a minimal scene over a flat shape list
type mockScene struct {
	world       core.Shape
	topColor    core.Vec3
	bottomColor core.Vec3
	config      core.SamplingConfig
}

func (s *mockScene) GetCamera() core.Camera { return nil }
func (s *mockScene) GetBackgroundColors() (core.Vec3, core.Vec3) {
	return s.topColor, s.bottomColor
}
func (s *mockScene) GetWorld() core.Shape                   { return s.world }
func (s *mockScene) GetSamplingConfig() core.SamplingConfig { return s.config }

func newMockScene(top, bottom core.Vec3, shapes ...core.Shape) *mockScene {
	return &mockScene{
		world:       core.NewShapeList(shapes...),
		topColor:    top,
		bottomColor: bottom,
	}
}

// absorber never scatters and never emits
type absorber struct{}

func (absorber) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

func closeTo(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestPathTracingDepthTermination(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	sc := newMockScene(white, white)
	sampler := core.NewSeededSampler(42)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	integrator := NewPathTracingIntegrator(core.SamplingConfig{MaxDepth: 0})
	if got := integrator.RayColor(ray, sc, sampler); got != (core.Vec3{}) {
		t.Errorf("Expected black color for depth 0, got %v", got)
	}

	integrator = NewPathTracingIntegrator(core.SamplingConfig{MaxDepth: 1})
	if got := integrator.RayColor(ray, sc, sampler); got != white {
		t.Errorf("Expected background for an unobstructed ray, got %v", got)
	}
}

func TestBackgroundGradient(t *testing.T) {
	top := core.NewVec3(0.5, 0.7, 1.0)
	bottom := core.NewVec3(1, 1, 1)
	sc := newMockScene(top, bottom)
	integrator := NewPathTracingIntegrator(core.SamplingConfig{MaxDepth: 5})
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"Straight up", core.NewVec3(0, 3, 0), top},
		{"Straight down", core.NewVec3(0, -2, 0), bottom},
		{"Horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.Vec3{}, tt.direction)
			if got := integrator.RayColor(ray, sc, sampler); !closeTo(got, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPathTracingEmissiveHit(t *testing.T) {
	emission := core.NewVec3(4, 4, 4)
	light := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewDiffuseLight(emission))
	sc := newMockScene(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), light)
	integrator := NewPathTracingIntegrator(core.SamplingConfig{MaxDepth: 10})

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	if got := integrator.RayColor(ray, sc, core.NewSeededSampler(7)); got != emission {
		t.Errorf("Expected emission %v, got %v", emission, got)
	}
}

func TestPathTracingAbsorber(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, absorber{})
	sc := newMockScene(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), sphere)
	integrator := NewPathTracingIntegrator(core.SamplingConfig{MaxDepth: 10})

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	if got := integrator.RayColor(ray, sc, core.NewSeededSampler(7)); got != (core.Vec3{}) {
		t.Errorf("Expected black from a non-emissive absorber, got %v", got)
	}
}

// TestPathTracingMirror follows a deterministic bounce off a perfect mirror
func TestPathTracingMirror(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.8, 0.7)
	top := core.NewVec3(0, 0, 1)
	bottom := core.NewVec3(1, 0, 0)
	floor := geometry.NewXZRect(-10, 10, -10, 10, 0, material.NewMetal(albedo, 0))
	sc := newMockScene(top, bottom, floor)
	integrator := NewPathTracingIntegrator(core.SamplingConfig{MaxDepth: 5})

	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))
	got := integrator.RayColor(ray, sc, core.NewSeededSampler(3))

	// Reflected direction is (1, 1, 0)/sqrt(2)
	blend := 0.5 * (1/math.Sqrt2 + 1)
	expected := albedo.MultiplyVec(bottom.Multiply(1 - blend).Add(top.Multiply(blend)))
	if !closeTo(got, expected, 1e-9) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

// TestPathTracingDiffuseEnergy checks a diffuse surface never reflects more than it receives
func TestPathTracingDiffuseEnergy(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	sc := newMockScene(white, white, sphere)
	integrator := NewPathTracingIntegrator(core.SamplingConfig{MaxDepth: 50})
	sampler := core.NewSeededSampler(11)

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	sum := 0.0
	for i := 0; i < 1000; i++ {
		c := integrator.RayColor(ray, sc, sampler)
		if c.X < 0 || c.X > 1 || c.X != c.Y || c.Y != c.Z {
			t.Fatalf("Sample %d out of range: %v", i, c)
		}
		sum += c.X
	}
	if mean := sum / 1000; mean < 0.2 || mean > 0.6 {
		t.Errorf("Expected mean near one bounce of 0.5 albedo, got %f", mean)
	}
}

// TestPathTracingLitSphere renders a diffuse sphere under a ceiling light on a black background
func TestPathTracingLitSphere(t *testing.T) {
	black := core.Vec3{}
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	light := geometry.NewXZRect(-1, 1, -1, 1, 3, material.NewDiffuseLight(core.NewVec3(4, 4, 4)))
	sc := newMockScene(black, black, sphere, light)
	integrator := NewPathTracingIntegrator(core.SamplingConfig{MaxDepth: 10})
	sampler := core.NewSeededSampler(99)

	// Looking down at the top of the sphere from under the light
	lit := core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0))
	sum := 0.0
	for i := 0; i < 500; i++ {
		c := integrator.RayColor(lit, sc, sampler)
		if math.IsNaN(c.X) || c.X < 0 {
			t.Fatalf("Invalid sample %v", c)
		}
		sum += c.X
	}
	if sum == 0 {
		t.Error("Expected the top of the sphere to receive light")
	}

	// Rays that see neither the sphere nor the light stay exactly black
	dark := []core.Ray{
		core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(1, 0, 0)),
		core.NewRay(core.NewVec3(0, -3, 0), core.NewVec3(0, -1, 0)),
	}
	for _, ray := range dark {
		if got := integrator.RayColor(ray, sc, sampler); got != black {
			t.Errorf("Expected black for %v, got %v", ray.Direction, got)
		}
	}
}
