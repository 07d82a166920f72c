package core

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// MockShape for testing
type MockShape struct {
	boundingBox AABB
	bounded     bool
	hitFn       func(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

func newMockShape(box AABB, hitFn func(ray Ray, tMin, tMax float64) (*HitRecord, bool)) *MockShape {
	return &MockShape{boundingBox: box, bounded: true, hitFn: hitFn}
}

func (m *MockShape) Hit(ray Ray, tMin, tMax float64, sampler Sampler) (*HitRecord, bool) {
	return m.hitFn(ray, tMin, tMax)
}

func (m *MockShape) BoundingBox(time0, time1 float64) (AABB, bool) {
	return m.boundingBox, m.bounded
}

func neverHit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	return nil, false
}

// makeHitFn hits +X rays at a fixed distance
func makeHitFn(tValue float64) func(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	return func(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
		if ray.Direction.X > 0 && tValue > tMin && tValue < tMax {
			return &HitRecord{T: tValue}, true
		}
		return nil, false
	}
}

func unitBoxAt(x float64) AABB {
	return NewAABB(NewVec3(x, 0, 0), NewVec3(x+1, 1, 1))
}

func TestBVH_Errors(t *testing.T) {
	random := rand.New(rand.NewSource(1))

	if _, err := NewBVH(nil, 0, 1, random); !errors.Is(err, ErrEmptyBVH) {
		t.Errorf("Expected ErrEmptyBVH for empty input, got %v", err)
	}

	unbounded := &MockShape{hitFn: neverHit}
	shapes := []Shape{newMockShape(unitBoxAt(0), neverHit), unbounded, newMockShape(unitBoxAt(2), neverHit)}
	if _, err := NewBVH(shapes, 0, 1, random); !errors.Is(err, ErrNoBoundingBox) {
		t.Errorf("Expected ErrNoBoundingBox, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected MustNewBVH to panic on empty input")
		}
	}()
	MustNewBVH([]Shape{}, 0, 1, random)
}

func TestBVH_SingleShape(t *testing.T) {
	shape := newMockShape(unitBoxAt(0), makeHitFn(1.0))

	bvh, err := NewBVH([]Shape{shape}, 0, 1, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if bvh.Left != Shape(shape) || bvh.Right != Shape(shape) {
		t.Error("Expected both children to be the single shape")
	}

	stats := bvh.Stats()
	if stats.InteriorNodes != 1 || stats.Leaves != 1 {
		t.Errorf("Expected 1 node and 1 leaf, got %+v", stats)
	}

	ray := NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(1, 0, 0))
	hit, isHit := bvh.Hit(ray, 0.001, math.Inf(1), nil)
	if !isHit || hit.T != 1.0 {
		t.Errorf("Expected hit at t=1, got %v %v", hit, isHit)
	}
}

func TestBVH_TwoShapesOrdering(t *testing.T) {
	first := newMockShape(unitBoxAt(5), neverHit)
	second := newMockShape(unitBoxAt(0), neverHit)

	// Every axis other than X ties, and ties keep input order; X puts second first.
	for seed := int64(0); seed < 20; seed++ {
		random := rand.New(rand.NewSource(seed))
		axis := rand.New(rand.NewSource(seed)).Intn(3)

		bvh, err := NewBVH([]Shape{first, second}, 0, 1, random)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		wantLeft := Shape(first)
		if axis == 0 {
			wantLeft = second
		}
		if bvh.Left != wantLeft {
			t.Errorf("seed %d axis %d: unexpected left child", seed, axis)
		}
	}
}

func TestBVH_StableTies(t *testing.T) {
	box := unitBoxAt(0)
	a := newMockShape(box, neverHit)
	b := newMockShape(box, neverHit)
	c := newMockShape(box, neverHit)

	bvh, err := NewBVH([]Shape{a, b, c}, 0, 1, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Equal keys keep input order: [a] | [b c]
	left, ok := bvh.Left.(*BVHNode)
	if !ok || left.Left != Shape(a) {
		t.Fatal("Expected left subtree to hold the first shape")
	}
	right, ok := bvh.Right.(*BVHNode)
	if !ok || right.Left != Shape(b) || right.Right != Shape(c) {
		t.Fatal("Expected right subtree to hold the remaining shapes in input order")
	}
}

func TestBVH_SameSeedSameTree(t *testing.T) {
	shapes := make([]Shape, 50)
	random := rand.New(rand.NewSource(3))
	for i := range shapes {
		p := NewVec3(random.Float64()*10, random.Float64()*10, random.Float64()*10)
		shapes[i] = newMockShape(NewAABB(p, p.Add(NewVec3(1, 1, 1))), neverHit)
	}

	a := MustNewBVH(shapes, 0, 1, rand.New(rand.NewSource(11)))
	b := MustNewBVH(shapes, 0, 1, rand.New(rand.NewSource(11)))

	var walk func(x, y Shape) bool
	walk = func(x, y Shape) bool {
		nx, okX := x.(*BVHNode)
		ny, okY := y.(*BVHNode)
		if okX != okY {
			return false
		}
		if !okX {
			return x == y
		}
		return nx.Box == ny.Box && walk(nx.Left, ny.Left) && walk(nx.Right, ny.Right)
	}
	if !walk(a, b) {
		t.Error("Expected identical trees for identical seeds")
	}
}

func TestBVH_DoesNotModifyInput(t *testing.T) {
	shapes := make([]Shape, 10)
	for i := range shapes {
		shapes[i] = newMockShape(unitBoxAt(float64(10-i)), neverHit)
	}
	original := make([]Shape, len(shapes))
	copy(original, shapes)

	MustNewBVH(shapes, 0, 1, rand.New(rand.NewSource(2)))

	for i := range shapes {
		if shapes[i] != original[i] {
			t.Fatalf("Input slice reordered at index %d", i)
		}
	}
}

func TestBVH_BoxCoversChildren(t *testing.T) {
	shapes := make([]Shape, 20)
	for i := range shapes {
		shapes[i] = newMockShape(unitBoxAt(float64(i)), neverHit)
	}

	bvh := MustNewBVH(shapes, 0, 1, rand.New(rand.NewSource(5)))
	expected := NewAABB(NewVec3(0, 0, 0), NewVec3(20, 1, 1))
	if bvh.Box != expected {
		t.Errorf("Expected root box %v, got %v", expected, bvh.Box)
	}

	stats := bvh.Stats()
	if stats.Leaves != 20 {
		t.Errorf("Expected 20 leaves, got %d", stats.Leaves)
	}
	if stats.MaxDepth == 0 {
		t.Error("Expected max depth > 0 for 20 shapes")
	}
}

func TestBVH_MultipleHits(t *testing.T) {
	// Overlapping shapes; the closest must win regardless of tree position
	shapes := []Shape{
		newMockShape(NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1)), makeHitFn(2.0)),
		newMockShape(NewAABB(NewVec3(0.5, 0, 0), NewVec3(1.5, 1, 1)), makeHitFn(1.0)),
		newMockShape(NewAABB(NewVec3(1.0, 0, 0), NewVec3(2.0, 1, 1)), makeHitFn(3.0)),
		newMockShape(NewAABB(NewVec3(1.5, 0, 0), NewVec3(2.5, 1, 1)), makeHitFn(4.0)),
	}

	for seed := int64(0); seed < 10; seed++ {
		bvh := MustNewBVH(shapes, 0, 1, rand.New(rand.NewSource(seed)))
		ray := NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(1, 0, 0))

		hit, isHit := bvh.Hit(ray, 0.001, 1000.0, nil)
		if !isHit {
			t.Fatal("Expected hit")
		}
		if math.Abs(hit.T-1.0) > 1e-9 {
			t.Errorf("seed %d: expected closest hit at t=1.0, got t=%f", seed, hit.T)
		}
	}
}

func TestBVH_PrunesMissedBox(t *testing.T) {
	called := false
	shape := newMockShape(unitBoxAt(0), func(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
		called = true
		return nil, false
	})
	bvh := MustNewBVH([]Shape{shape, newMockShape(unitBoxAt(2), neverHit)}, 0, 1, rand.New(rand.NewSource(1)))

	// Passes well above both boxes
	ray := NewRay(NewVec3(-1, 5, 0.5), NewVec3(1, 0, 0))
	if _, isHit := bvh.Hit(ray, 0.001, math.Inf(1), nil); isHit {
		t.Error("Expected miss")
	}
	if called {
		t.Error("Expected children not to be visited when the node box is missed")
	}
}

func TestShapeList_ClosestHit(t *testing.T) {
	list := NewShapeList(
		newMockShape(unitBoxAt(0), makeHitFn(3.0)),
		newMockShape(unitBoxAt(1), makeHitFn(1.0)),
	)
	list.Add(newMockShape(unitBoxAt(2), makeHitFn(2.0)))

	if list.Len() != 3 {
		t.Fatalf("Expected 3 shapes, got %d", list.Len())
	}

	ray := NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(1, 0, 0))
	hit, isHit := list.Hit(ray, 0.001, math.Inf(1), nil)
	if !isHit || hit.T != 1.0 {
		t.Errorf("Expected closest hit at t=1.0, got %v %v", hit, isHit)
	}

	// Upper bound below every hit
	if _, isHit := list.Hit(ray, 0.001, 0.5, nil); isHit {
		t.Error("Expected no hit below tMax")
	}

	box, ok := list.BoundingBox(0, 1)
	if !ok || box != NewAABB(NewVec3(0, 0, 0), NewVec3(3, 1, 1)) {
		t.Errorf("Unexpected list bounding box %v (ok=%v)", box, ok)
	}

	if _, ok := NewShapeList().BoundingBox(0, 1); ok {
		t.Error("Expected empty list to have no bounding box")
	}
}
