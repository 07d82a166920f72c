package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func randomRay(random *rand.Rand, spread float64) core.Ray {
	origin := core.NewVec3(
		(random.Float64()*2-1)*spread,
		(random.Float64()*2-1)*spread,
		(random.Float64()*2-1)*spread,
	)
	dir := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1)
	return core.NewRay(origin, dir)
}

func TestTranslate_RoundTrip(t *testing.T) {
	shapes := []core.Shape{
		NewSphere(core.NewVec3(0.5, -0.25, 1), 1.5, nil),
		NewBox(core.NewVec3(-1, -2, -1), core.NewVec3(1, 0.5, 2), nil),
		NewXZRect(-2, 2, -2, 2, 0.5, nil),
	}
	offset := core.NewVec3(3.5, -7.25, 12)
	random := rand.New(rand.NewSource(42))

	for _, shape := range shapes {
		roundTrip := NewTranslate(NewTranslate(shape, offset), offset.Negate())

		for i := 0; i < 500; i++ {
			ray := randomRay(random, 5)
			want, wantOK := shape.Hit(ray, 0.001, math.Inf(1), nil)
			got, gotOK := roundTrip.Hit(ray, 0.001, math.Inf(1), nil)
			if wantOK != gotOK {
				t.Fatalf("%T: hit mismatch for ray %v: want %v, got %v", shape, ray, wantOK, gotOK)
			}
			if !wantOK {
				continue
			}
			if math.Abs(want.T-got.T) > 1e-9 || want.Point.Subtract(got.Point).Length() > 1e-9 {
				t.Fatalf("%T: expected t=%f p=%v, got t=%f p=%v", shape, want.T, want.Point, got.T, got.Point)
			}
			if want.Normal.Subtract(got.Normal).Length() > 1e-9 || want.FrontFace != got.FrontFace {
				t.Fatalf("%T: normal mismatch %v vs %v", shape, want.Normal, got.Normal)
			}
		}
	}
}

func TestTranslate_Hit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, nil)
	moved := NewTranslate(sphere, core.NewVec3(10, 0, 0))

	ray := core.NewRayAtTime(core.NewVec3(10, 0, 5), core.NewVec3(0, 0, -1), 0.3)
	hit, ok := moved.Hit(ray, 0.001, math.Inf(1), nil)
	if !ok {
		t.Fatal("Expected hit on translated sphere")
	}
	if hit.Point.Subtract(core.NewVec3(10, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected hit point (10,0,1), got %v", hit.Point)
	}

	box, _ := moved.BoundingBox(0, 1)
	if box.Min != core.NewVec3(9, -1, -1) || box.Max != core.NewVec3(11, 1, 1) {
		t.Errorf("Unexpected translated box %v", box)
	}
}

func TestRotateY(t *testing.T) {
	unitBox := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), nil)
	rotated := NewRotateY(unitBox, 90)

	// 90 degrees maps (x, z) to (z, -x)
	box, ok := rotated.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected bounding box")
	}
	expected := core.NewAABB(core.NewVec3(0, 0, -1), core.NewVec3(1, 1, 0))
	if box.Min.Subtract(expected.Min).Length() > 1e-12 || box.Max.Subtract(expected.Max).Length() > 1e-12 {
		t.Errorf("Expected box %v, got %v", expected, box)
	}

	ray := core.NewRay(core.NewVec3(0.5, 0.5, 5), core.NewVec3(0, 0, -1))
	hit, ok := rotated.Hit(ray, 0.001, math.Inf(1), nil)
	if !ok {
		t.Fatal("Expected hit on rotated box")
	}
	if math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("Expected t=5, got %f", hit.T)
	}
	if hit.Point.Subtract(core.NewVec3(0.5, 0.5, 0)).Length() > 1e-9 {
		t.Errorf("Expected hit point (0.5,0.5,0), got %v", hit.Point)
	}
	if hit.Normal.Dot(ray.Direction) >= 0 {
		t.Errorf("Expected normal %v to face against the ray", hit.Normal)
	}

	// Inside the unrotated extent only
	miss := core.NewRay(core.NewVec3(0.5, -1, 0.5), core.NewVec3(0, 1, 0))
	if _, ok := unitBox.Hit(miss, 0.001, math.Inf(1), nil); !ok {
		t.Fatal("Expected the unrotated box to be hit")
	}
	if _, ok := rotated.Hit(miss, 0.001, math.Inf(1), nil); ok {
		t.Error("Expected miss outside the rotated extent")
	}
}

func TestRotateY_FullTurnIsIdentity(t *testing.T) {
	sphere := NewSphere(core.NewVec3(2, 0.5, -1), 0.75, nil)
	rotated := NewRotateY(sphere, 360)
	random := rand.New(rand.NewSource(8))

	for i := 0; i < 500; i++ {
		ray := randomRay(random, 4)
		want, wantOK := sphere.Hit(ray, 0.001, math.Inf(1), nil)
		got, gotOK := rotated.Hit(ray, 0.001, math.Inf(1), nil)
		if wantOK != gotOK {
			// Grazing rays may flip under rounding; skip them
			continue
		}
		if wantOK && math.Abs(want.T-got.T) > 1e-6 {
			t.Fatalf("Expected t=%f, got %f", want.T, got.T)
		}
	}
}
