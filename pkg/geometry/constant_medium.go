package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// mediumExitOffset is how far past the entry point the exit crossing is searched from
const mediumExitOffset = 1e-4

// ConstantMedium is a homogeneous participating medium filling a closed boundary shape.
// Hits are stochastic: each query draws a free-path length from the sampler.
type ConstantMedium struct {
	Boundary      core.Shape
	PhaseFunction core.Material

	negInvDensity float64
}

// NewConstantMedium fills boundary with a medium of the given density whose
// scattering albedo comes from texture. Negative densities panic.
func NewConstantMedium(boundary core.Shape, density float64, texture core.ColorSource) *ConstantMedium {
	if density < 0 {
		panic(fmt.Sprintf("constant medium: negative density %f", density))
	}
	return &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: material.NewIsotropic(texture),
		negInvDensity: -1 / density,
	}
}

// Hit finds where the ray enters and leaves the boundary, then samples a
// scattering distance inside. The returned normal (+X) and FrontFace are
// placeholders with no geometric meaning.
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	entry, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+mediumExitOffset, math.Inf(1), sampler)
	if !ok {
		return nil, false
	}

	t1 := math.Max(entry.T, tMin)
	t2 := math.Min(exit.T, tMax)
	if t1 >= t2 {
		return nil, false
	}
	t1 = math.Max(t1, 0)

	rayLength := ray.Direction.Length()
	distanceInside := (t2 - t1) * rayLength
	hitDistance := m.negInvDensity * math.Log(sampler.Get1D())
	if hitDistance > distanceInside {
		return nil, false
	}

	t := t1 + hitDistance/rayLength
	return &core.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0),
		FrontFace: true,
		Material:  m.PhaseFunction,
	}, true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(time0, time1)
}
