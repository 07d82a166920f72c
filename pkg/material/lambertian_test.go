package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestLambertian_Scatter(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.4)
	lambertian := NewLambertian(albedo)
	sampler := core.NewSeededSampler(42)

	normal := core.NewVec3(0, 0, 1)
	hit := core.HitRecord{
		Point:  core.NewVec3(1, 2, 3),
		Normal: normal,
	}
	ray := core.NewRayAtTime(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), 0.4)

	var meanCos float64
	const n = 10000
	for i := 0; i < n; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Origin != hit.Point || scatter.Scattered.Time != 0.4 {
			t.Fatalf("Scattered ray should start at the hit point with the incoming time, got %+v", scatter.Scattered)
		}

		dir := scatter.Scattered.Direction.Normalize()
		cosTheta := dir.Dot(normal)
		if cosTheta < -1e-9 {
			t.Fatalf("Scattered direction %v below the surface", dir)
		}
		meanCos += cosTheta
	}

	// Cosine-weighted hemisphere: E[cos] = 2/3
	meanCos /= n
	if meanCos < 0.64 || meanCos > 0.69 {
		t.Errorf("Expected mean cosine near 2/3, got %f", meanCos)
	}
}

func TestLambertian_Textured(t *testing.T) {
	checker := NewCheckerTexture(NewSolidColor(core.NewVec3(1, 1, 1)), NewSolidColor(core.NewVec3(0, 0, 0)))
	lambertian := NewTexturedLambertian(checker)

	hit := core.HitRecord{Point: core.NewVec3(0.1, 0.1, 0.1), Normal: core.NewVec3(0, 1, 0)}
	scatter, _ := lambertian.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), hit, core.NewSeededSampler(1))
	if expected := checker.Evaluate(hit.UV, hit.Point); scatter.Attenuation != expected {
		t.Errorf("Expected textured attenuation %v, got %v", expected, scatter.Attenuation)
	}
}

func TestNilTexturePanics(t *testing.T) {
	constructors := map[string]func(){
		"lambertian":    func() { NewTexturedLambertian(nil) },
		"isotropic":     func() { NewIsotropic(nil) },
		"checker odd":   func() { NewCheckerTexture(NewSolidColor(core.Vec3{}), nil) },
		"checker even":  func() { NewCheckerTexture(nil, NewSolidColor(core.Vec3{})) },
	}

	for name, construct := range constructors {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected %s constructor to panic on nil texture", name)
				}
			}()
			construct()
		})
	}
}

func TestDiffuseLight(t *testing.T) {
	light := NewDiffuseLight(core.NewVec3(4, 4, 4))

	if _, scattered := light.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), core.HitRecord{}, core.NewSeededSampler(1)); scattered {
		t.Error("Diffuse light should never scatter")
	}

	var material core.Material = light
	emitter, ok := material.(core.Emitter)
	if !ok {
		t.Fatal("Diffuse light should implement core.Emitter")
	}
	if e := emitter.Emitted(core.NewVec2(0.3, 0.7), core.NewVec3(1, 2, 3)); e != core.NewVec3(4, 4, 4) {
		t.Errorf("Expected emission (4,4,4), got %v", e)
	}

	hit := &core.HitRecord{Material: light}
	if e := core.EmittedLight(hit); e != core.NewVec3(4, 4, 4) {
		t.Errorf("Expected EmittedLight (4,4,4), got %v", e)
	}
	if e := core.EmittedLight(&core.HitRecord{Material: NewLambertian(core.NewVec3(1, 1, 1))}); e != (core.Vec3{}) {
		t.Errorf("Expected non-emitters to emit black, got %v", e)
	}
}

func TestIsotropic_Scatter(t *testing.T) {
	iso := NewIsotropic(NewSolidColor(core.NewVec3(0.5, 0.5, 0.5)))
	sampler := core.NewSeededSampler(9)
	hit := core.HitRecord{Point: core.NewVec3(1, 1, 1)}

	var mean core.Vec3
	const n = 10000
	for i := 0; i < n; i++ {
		scatter, ok := iso.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), hit, sampler)
		if !ok {
			t.Fatal("Isotropic should always scatter")
		}
		if scatter.Scattered.Direction.Length() >= 1 || scatter.Scattered.Direction.NearZero() {
			t.Fatalf("Direction %v not strictly inside the unit sphere", scatter.Scattered.Direction)
		}
		mean = mean.Add(scatter.Scattered.Direction)
	}

	// No preferred direction
	if mean.Multiply(1.0/n).Length() > 0.03 {
		t.Errorf("Expected mean direction near zero, got %v", mean.Multiply(1.0/n))
	}
}
