package renderer

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width in pixels
	Height          int // Image height in pixels
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// PixelSampler traces all samples for one pixel. It holds no mutable state,
// so one instance is shared by every worker.
type PixelSampler struct {
	camera     *Camera
	world      core.Hittable
	integrator integrator.Integrator
	config     SamplingConfig
}

// NewPixelSampler creates a pixel sampler for the given camera and world
func NewPixelSampler(camera *Camera, world core.Hittable, integratorInst integrator.Integrator, config SamplingConfig) *PixelSampler {
	return &PixelSampler{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		config:     config,
	}
}

// SamplePixel accumulates SamplesPerPixel jittered samples for pixel (x, y),
// where y = 0 is the top row of the image.
func (ps *PixelSampler) SamplePixel(x, y int, sampler core.Sampler) PixelStats {
	var stats PixelStats

	// Camera coordinates grow upwards, image rows grow downwards
	row := ps.config.Height - 1 - y
	uScale := 1.0 / float64(max(ps.config.Width-1, 1))
	vScale := 1.0 / float64(max(ps.config.Height-1, 1))

	for sample := 0; sample < ps.config.SamplesPerPixel; sample++ {
		jitter := sampler.Get2D()
		u := (float64(x) + jitter.X) * uScale
		v := (float64(row) + jitter.Y) * vScale

		ray := ps.camera.GetRay(u, v, sampler)
		stats.AddSample(ps.integrator.RayColor(ray, ps.world, sampler, ps.config.MaxDepth))
	}

	return stats
}
