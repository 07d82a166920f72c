package core

// HitRecord contains information about a ray-object intersection.
// It is produced fresh by every successful Hit call and never shared.
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal, always facing against the incoming ray
	T         float64  // Parameter t along the ray
	UV        Vec2     // Texture coordinates
	FrontFace bool     // Whether ray hit the front face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Shape interface for objects that can be hit by rays.
//
// Hit returns the closest intersection with t strictly inside (tMin, tMax).
// The sampler is only consumed by stochastic shapes such as participating media.
// BoundingBox returns false for unbounded shapes.
type Shape interface {
	Hit(ray Ray, tMin, tMax float64, sampler Sampler) (*HitRecord, bool)
	BoundingBox(time0, time1 float64) (AABB, bool)
}

// Material interface for objects that can scatter rays
type Material interface {
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emitted(uv Vec2, point Vec3) Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray
	Attenuation Vec3 // Color attenuation
}

// ColorSource provides a color for a surface location
type ColorSource interface {
	Evaluate(uv Vec2, point Vec3) Vec3
}

// Camera generates primary rays for pixel (i, j), with j=0 the top row
type Camera interface {
	GetRay(i, j int, sampler Sampler) Ray
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width in pixels
	Height          int // Image height in pixels
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Scene is everything the renderer and integrator need from a prepared scene
type Scene interface {
	GetCamera() Camera
	GetBackgroundColors() (topColor, bottomColor Vec3)
	GetWorld() Shape
	GetSamplingConfig() SamplingConfig
}

// Integrator computes the radiance carried back along a camera ray
type Integrator interface {
	RayColor(ray Ray, scene Scene, sampler Sampler) Vec3
}

// EmittedLight returns the light emitted at a hit, or black for non-emissive materials
func EmittedLight(hit *HitRecord) Vec3 {
	if emitter, ok := hit.Material.(Emitter); ok {
		return emitter.Emitted(hit.UV, hit.Point)
	}
	return Vec3{}
}
