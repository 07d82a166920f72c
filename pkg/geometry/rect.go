package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// rectThickness pads the fixed axis of a rectangle's bounding box so the box has volume
const rectThickness = 1e-4

// AxisRect is a rectangle lying in a plane perpendicular to one coordinate axis.
// It spans [A0, A1] along the first in-plane axis and [B0, B1] along the second,
// at coordinate K on the fixed axis. Use NewXYRect, NewXZRect or NewYZRect.
type AxisRect struct {
	A0, A1, B0, B1 float64
	K              float64
	Material       core.Material

	axis  int // Fixed axis
	aAxis int // First in-plane axis, maps to u
	bAxis int // Second in-plane axis, maps to v
}

// NewXYRect creates a rectangle in the plane z=k
func NewXYRect(x0, x1, y0, y1, k float64, material core.Material) *AxisRect {
	return newAxisRect(2, 0, 1, x0, x1, y0, y1, k, material)
}

// NewXZRect creates a rectangle in the plane y=k
func NewXZRect(x0, x1, z0, z1, k float64, material core.Material) *AxisRect {
	return newAxisRect(1, 0, 2, x0, x1, z0, z1, k, material)
}

// NewYZRect creates a rectangle in the plane x=k
func NewYZRect(y0, y1, z0, z1, k float64, material core.Material) *AxisRect {
	return newAxisRect(0, 1, 2, y0, y1, z0, z1, k, material)
}

func newAxisRect(axis, aAxis, bAxis int, a0, a1, b0, b1, k float64, material core.Material) *AxisRect {
	return &AxisRect{
		A0: a0, A1: a1, B0: b0, B1: b1,
		K:        k,
		Material: material,
		axis:     axis,
		aAxis:    aAxis,
		bAxis:    bAxis,
	}
}

// Axis returns the fixed axis of the rectangle (0=X, 1=Y, 2=Z)
func (r *AxisRect) Axis() int {
	return r.axis
}

// Hit intersects the ray with the rectangle's plane and checks the 2D extent
func (r *AxisRect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	t := (r.K - ray.Origin.Axis(r.axis)) / ray.Direction.Axis(r.axis)
	// Written as a negation so a NaN from a ray lying in the plane is rejected
	if !(t > tMin && t < tMax) {
		return nil, false
	}

	point := ray.At(t)
	a := point.Axis(r.aAxis)
	b := point.Axis(r.bAxis)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        t,
		Point:    point,
		UV:       core.NewVec2((a-r.A0)/(r.A1-r.A0), (b-r.B0)/(r.B1-r.B0)),
		Material: r.Material,
	}
	outwardNormal := core.Vec3{}.WithAxis(r.axis, 1)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// BoundingBox returns the rectangle thickened slightly along its fixed axis
func (r *AxisRect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	min := core.Vec3{}.
		WithAxis(r.aAxis, r.A0).
		WithAxis(r.bAxis, r.B0).
		WithAxis(r.axis, r.K-rectThickness)
	max := core.Vec3{}.
		WithAxis(r.aAxis, r.A1).
		WithAxis(r.bAxis, r.B1).
		WithAxis(r.axis, r.K+rectThickness)
	return core.NewAABB(min, max), true
}
