package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Translate moves a shape by a fixed offset
type Translate struct {
	Shape  core.Shape
	Offset core.Vec3
}

// NewTranslate wraps shape so it appears displaced by offset
func NewTranslate(shape core.Shape, offset core.Vec3) *Translate {
	return &Translate{Shape: shape, Offset: offset}
}

// Hit moves the ray into the shape's frame, then moves the hit point back
func (t *Translate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	moved := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	hit, ok := t.Shape.Hit(moved, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	return hit, true
}

// BoundingBox returns the wrapped shape's box moved by the offset
func (t *Translate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := t.Shape.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}
	return box.Translate(t.Offset), true
}

// RotateY rotates a shape about the Y axis
type RotateY struct {
	Shape    core.Shape
	sinTheta float64
	cosTheta float64
}

// NewRotateY wraps shape rotated counter-clockwise by angle degrees about +Y
func NewRotateY(shape core.Shape, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	return &RotateY{
		Shape:    shape,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}
}

// toWorld applies the rotation
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toLocal applies the inverse rotation
func (r *RotateY) toLocal(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into the shape's frame and the result back out
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	rotated := core.NewRayAtTime(r.toLocal(ray.Origin), r.toLocal(ray.Direction), ray.Time)

	hit, ok := r.Shape.Hit(rotated, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = r.toWorld(hit.Point)
	// The local normal already faces the local ray; rotation preserves that
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox rotates all 8 corners of the wrapped shape's box and bounds the result
func (r *RotateY) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := r.Shape.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}

	corners := box.Corners()
	rotated := make([]core.Vec3, len(corners))
	for i, corner := range corners {
		rotated[i] = r.toWorld(corner)
	}
	return core.NewAABBFromPoints(rotated...), true
}
