package renderer

import (
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples taken for every pixel
	Workers         int           // Number of workers that shared the load
	Duration        time.Duration // Wall time from first submission to completion
}

// PixelStats accumulates the samples taken for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics.
// Non-finite samples count as black so one bad path cannot poison the pixel.
func (ps *PixelStats) AddSample(color core.Vec3) {
	if color.IsFinite() {
		ps.ColorAccum = ps.ColorAccum.Add(color)
	}
	ps.SampleCount++
}

// GetColor returns the averaged, gamma-corrected (gamma 2) color of this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount)).GammaCorrect(2.0)
}
