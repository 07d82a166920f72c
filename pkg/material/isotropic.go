package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Isotropic scatters uniformly in all directions; it is the phase function of volumes
type Isotropic struct {
	Albedo core.ColorSource
}

// NewIsotropic creates an isotropic material; the texture is required
func NewIsotropic(albedo core.ColorSource) *Isotropic {
	return &Isotropic{Albedo: mustTexture("isotropic", albedo)}
}

// Scatter picks a random direction inside the unit sphere
func (i *Isotropic) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	direction := core.RandomInUnitSphere(sampler)
	if direction.NearZero() {
		direction = core.RandomUnitVector(sampler)
	}

	return core.ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: i.Albedo.Evaluate(hit.UV, hit.Point),
	}, true
}
