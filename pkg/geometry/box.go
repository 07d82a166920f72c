package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Box is an axis-aligned box made of six rectangles sharing one material
type Box struct {
	Min, Max core.Vec3
	sides    *core.ShapeList
}

// NewBox creates a box spanning the corners p0 and p1
func NewBox(p0, p1 core.Vec3, material core.Material) *Box {
	min, max := p0.Min(p1), p0.Max(p1)

	sides := core.NewShapeList(
		NewXYRect(min.X, max.X, min.Y, max.Y, max.Z, material),
		NewXYRect(min.X, max.X, min.Y, max.Y, min.Z, material),

		NewXZRect(min.X, max.X, min.Z, max.Z, max.Y, material),
		NewXZRect(min.X, max.X, min.Z, max.Z, min.Y, material),

		NewYZRect(min.Y, max.Y, min.Z, max.Z, max.X, material),
		NewYZRect(min.Y, max.Y, min.Z, max.Z, min.X, material),
	)

	return &Box{Min: min, Max: max, sides: sides}
}

// Hit returns the nearest hit among the six sides
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	return b.sides.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the box's own extent
func (b *Box) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}
