package integrator

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance carried back along ray, allowing at most
	// depth bounces. Implementations must be safe for concurrent use as long
	// as every caller passes its own sampler.
	RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler, depth int) core.Vec3
}
