package core

// ShapeList is the linear scene container: every query scans all shapes,
// shrinking the upper bound to the closest hit found so far
type ShapeList struct {
	Shapes []Shape
}

// NewShapeList creates a list over the given shapes
func NewShapeList(shapes ...Shape) *ShapeList {
	return &ShapeList{Shapes: shapes}
}

// Add appends shapes to the list
func (l *ShapeList) Add(shapes ...Shape) {
	l.Shapes = append(l.Shapes, shapes...)
}

// Len returns the number of shapes in the list
func (l *ShapeList) Len() int {
	return len(l.Shapes)
}

// Hit returns the nearest hit among all shapes
func (l *ShapeList) Hit(ray Ray, tMin, tMax float64, sampler Sampler) (*HitRecord, bool) {
	return hitClosest(l.Shapes, ray, tMin, tMax, sampler)
}

// BoundingBox returns the union of all shape boxes; false if empty or any shape is unbounded
func (l *ShapeList) BoundingBox(time0, time1 float64) (AABB, bool) {
	if len(l.Shapes) == 0 {
		return AABB{}, false
	}

	box := emptyAABB()
	for _, shape := range l.Shapes {
		shapeBox, ok := shape.BoundingBox(time0, time1)
		if !ok {
			return AABB{}, false
		}
		box = box.Union(shapeBox)
	}
	return box, true
}

// hitClosest scans shapes in order, keeping the closest hit so far
func hitClosest(shapes []Shape, ray Ray, tMin, tMax float64, sampler Sampler) (*HitRecord, bool) {
	var closestHit *HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, shape := range shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar, sampler); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
