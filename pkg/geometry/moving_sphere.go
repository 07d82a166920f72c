package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// MovingSphere is a sphere whose center moves linearly from Center0 at Time0
// to Center1 at Time1. Rays pick the position by their own timestamp.
type MovingSphere struct {
	Center0, Center1 core.Vec3
	Time0, Time1     float64
	Radius           float64
	Material         core.Material
}

// NewMovingSphere creates a new moving sphere
func NewMovingSphere(center0, center1 core.Vec3, time0, time1, radius float64, material core.Material) *MovingSphere {
	return &MovingSphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: material,
	}
}

// CenterAt returns the sphere center at the given time.
// A zero-length keyframe window pins the sphere at Center0.
func (s *MovingSphere) CenterAt(time float64) core.Vec3 {
	window := s.Time1 - s.Time0
	if window == 0 {
		return s.Center0
	}
	frac := (time - s.Time0) / window
	return s.Center0.Add(s.Center1.Subtract(s.Center0).Multiply(frac))
}

// Hit tests if a ray intersects with the sphere at the ray's time
func (s *MovingSphere) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	center := s.CenterAt(ray.Time)
	root, ok := hitSphere(center, s.Radius, ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}
	outwardNormal := hitRecord.Point.Subtract(center).Multiply(1.0 / s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// BoundingBox covers the sphere at both ends of the given interval
func (s *MovingSphere) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box0 := sphereBox(s.CenterAt(time0), s.Radius)
	box1 := sphereBox(s.CenterAt(time1), s.Radius)
	return box0.Union(box1), true
}
