package renderer

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() core.Hittable
	GetBackground() integrator.BackgroundConfig
}

// RenderConfig controls how the work is spread over workers
type RenderConfig struct {
	NumWorkers int       // Number of parallel workers (0 = use CPU count)
	QueueSize  int       // Capacity of the task queue (0 = twice the worker count)
	Seed       int64     // Base seed; worker i uses Seed+i
	Progress   io.Writer // Where to draw the remaining-pixel line (nil = nowhere)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers: 0,
		QueueSize:  0,
		Seed:       42,
	}
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene      Scene
	sampling   SamplingConfig
	config     RenderConfig
	integrator integrator.Integrator
	logger     *slog.Logger
}

// NewRaytracer creates a new raytracer using the path tracing integrator
func NewRaytracer(scene Scene, sampling SamplingConfig, config RenderConfig, logger *slog.Logger) *Raytracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Raytracer{
		scene:      scene,
		sampling:   sampling,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(scene.GetBackground()),
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.sampling = config
}

func (rt *Raytracer) validate() error {
	if rt.sampling.Width <= 0 || rt.sampling.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", rt.sampling.Width, rt.sampling.Height)
	}
	if rt.sampling.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", rt.sampling.SamplesPerPixel)
	}
	return nil
}

func (rt *Raytracer) newPixelSampler() *PixelSampler {
	return NewPixelSampler(rt.scene.GetCamera(), rt.scene.GetWorld(), rt.integrator, rt.sampling)
}

// Render renders every pixel on the worker pool and returns the filled buffer.
// Nothing in the buffer is visible to the caller until all tasks are done.
func (rt *Raytracer) Render() (*ImageBuffer, RenderStats, error) {
	if err := rt.validate(); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := rt.sampling.Width, rt.sampling.Height
	buffer := NewImageBuffer(width, height)
	progress := NewProgress(width*height, rt.config.Progress, rt.logger)
	pool := NewWorkerPool(rt.newPixelSampler(), buffer, progress,
		rt.config.NumWorkers, rt.config.QueueSize, rt.config.Seed)

	rt.logger.Info("rendering",
		"width", width, "height", height,
		"samples", rt.sampling.SamplesPerPixel, "maxDepth", rt.sampling.MaxDepth,
		"workers", pool.NumWorkers())

	startTime := time.Now()
	pool.Start()

	// Canonical traversal: top row first, left to right
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pool.Submit(PixelTask{X: x, Y: y})
		}
	}

	err := pool.Wait()
	progress.Finish()
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render: %w", err)
	}
	if err := buffer.Verify(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("render: %w", err)
	}

	stats := rt.stats(pool.NumWorkers(), time.Since(startTime))
	rt.logger.Info("render complete", "duration", stats.Duration, "pixels", stats.TotalPixels,
		"averageLuminance", buffer.AverageLuminance())
	return buffer, stats, nil
}

// RenderSequential renders every pixel on the calling goroutine with a single
// sampler seeded with the configured seed.
func (rt *Raytracer) RenderSequential() (*ImageBuffer, RenderStats, error) {
	if err := rt.validate(); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := rt.sampling.Width, rt.sampling.Height
	buffer := NewImageBuffer(width, height)
	pixelSampler := rt.newPixelSampler()
	sampler := core.NewSeededSampler(rt.config.Seed)

	startTime := time.Now()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if err := buffer.Set(x, y, pixelSampler.SamplePixel(x, y, sampler)); err != nil {
				return nil, RenderStats{}, fmt.Errorf("render: %w", err)
			}
		}
	}

	return buffer, rt.stats(1, time.Since(startTime)), nil
}

func (rt *Raytracer) stats(workers int, duration time.Duration) RenderStats {
	pixels := rt.sampling.Width * rt.sampling.Height
	return RenderStats{
		TotalPixels:     pixels,
		TotalSamples:    pixels * rt.sampling.SamplesPerPixel,
		SamplesPerPixel: rt.sampling.SamplesPerPixel,
		Workers:         workers,
		Duration:        duration,
	}
}
