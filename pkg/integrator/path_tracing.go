package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// shadowAcneEpsilon is the minimum hit distance; it keeps a scattered ray from
// re-hitting the surface it starts on because of floating-point round-off
const shadowAcneEpsilon = 0.001

// PathTracingIntegrator implements recursive unidirectional path tracing with
// fixed-depth truncation
type PathTracingIntegrator struct {
	config core.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config core.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the radiance arriving along a camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene core.Scene, sampler core.Sampler) core.Vec3 {
	return pt.radiance(ray, scene, sampler, pt.config.MaxDepth)
}

// radiance is emitted + attenuation * radiance(scattered) until depth runs out
func (pt *PathTracingIntegrator) radiance(ray core.Ray, scene core.Scene, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := scene.GetWorld().Hit(ray, shadowAcneEpsilon, math.Inf(1), sampler)
	if !isHit {
		return BackgroundColor(ray, scene)
	}

	emitted := core.EmittedLight(hit)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return emitted
	}

	incoming := pt.radiance(scatter.Scattered, scene, sampler, depth-1)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}

// BackgroundColor returns the vertical gradient between the scene's bottom and
// top colors for the ray direction. Equal colors give a flat background.
func BackgroundColor(ray core.Ray, scene core.Scene) core.Vec3 {
	topColor, bottomColor := scene.GetBackgroundColors()
	if topColor == bottomColor {
		return topColor
	}

	unitDirection := ray.Direction.Normalize()
	// Map y from [-1, 1] to [0, 1]
	t := 0.5 * (unitDirection.Y + 1.0)
	return bottomColor.Multiply(1.0 - t).Add(topColor.Multiply(t))
}
