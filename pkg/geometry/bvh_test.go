package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// tagMaterial identifies which shape produced a hit
type tagMaterial struct {
	id int
}

func (m *tagMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

func randomScene(random *rand.Rand, n int) []core.Shape {
	shapes := make([]core.Shape, 0, n)
	for i := 0; i < n; i++ {
		center := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		mat := &tagMaterial{id: i}
		switch i % 4 {
		case 0, 1:
			shapes = append(shapes, NewSphere(center, 0.2+random.Float64(), mat))
		case 2:
			end := center.Add(core.NewVec3(0, random.Float64(), 0))
			shapes = append(shapes, NewMovingSphere(center, end, 0, 1, 0.2+random.Float64()*0.5, mat))
		default:
			size := core.NewVec3(random.Float64()+0.1, random.Float64()+0.1, random.Float64()+0.1)
			box := NewBox(core.Vec3{}, size, mat)
			shapes = append(shapes, NewTranslate(NewRotateY(box, random.Float64()*360), center))
		}
	}
	return shapes
}

func TestBVH_MatchesLinearScan(t *testing.T) {
	random := rand.New(rand.NewSource(1234))
	shapes := randomScene(random, 300)

	linear := core.NewShapeList(shapes...)
	bvh, err := core.NewBVH(shapes, 0, 1, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("Unexpected error building BVH: %v", err)
	}

	hits := 0
	for i := 0; i < 5000; i++ {
		ray := randomRay(random, 15)
		ray.Time = random.Float64()

		want, wantOK := linear.Hit(ray, 0.001, math.Inf(1), nil)
		got, gotOK := bvh.Hit(ray, 0.001, math.Inf(1), nil)
		if wantOK != gotOK {
			t.Fatalf("Ray %d: linear hit=%v, BVH hit=%v", i, wantOK, gotOK)
		}
		if !wantOK {
			continue
		}
		hits++

		if got.T != want.T || got.Point != want.Point || got.Material != want.Material {
			t.Fatalf("Ray %d: linear (t=%v shape=%d) differs from BVH (t=%v shape=%d)",
				i, want.T, want.Material.(*tagMaterial).id, got.T, got.Material.(*tagMaterial).id)
		}
	}

	// The comparison is only meaningful if rays actually hit things
	if hits < 500 {
		t.Errorf("Expected a substantial number of hits, got %d", hits)
	}
}

func TestBVH_BoxCoversShapesOverShutter(t *testing.T) {
	random := rand.New(rand.NewSource(77))
	shapes := randomScene(random, 64)

	bvh := core.MustNewBVH(shapes, 0, 1, rand.New(rand.NewSource(5)))
	for _, shape := range shapes {
		for _, time := range []float64{0, 1} {
			box, _ := shape.BoundingBox(time, time)
			for _, corner := range box.Corners() {
				if !bvh.Box.Contains(corner) {
					t.Fatalf("Root box %v does not contain %v", bvh.Box, corner)
				}
			}
		}
	}
}
