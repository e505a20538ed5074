package integrator

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// ShadowAcneEpsilon is the minimum hit distance, suppressing self-intersection
// at a scattered ray's own origin.
const ShadowAcneEpsilon = 0.001

// BackgroundConfig holds the colors of the vertical sky gradient
type BackgroundConfig struct {
	TopColor    core.Vec3 // Color looking straight up
	BottomColor core.Vec3 // Color looking straight down
}

// DefaultBackground returns the white to sky-blue gradient
func DefaultBackground() BackgroundConfig {
	return BackgroundConfig{
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// PathTracingIntegrator implements recursive unidirectional path tracing
type PathTracingIntegrator struct {
	background BackgroundConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background BackgroundConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		background: background,
	}
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return pt.BackgroundGradient(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColor(scatter.Scattered, world, sampler, depth-1))
}

// BackgroundGradient returns the sky color seen along r
func (pt *PathTracingIntegrator) BackgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return pt.background.BottomColor.Multiply(1.0 - t).Add(pt.background.TopColor.Multiply(t))
}
