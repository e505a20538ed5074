package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestWorkerPool_DefaultsToCPUCount(t *testing.T) {
	pool := NewWorkerPool(nil, nil, nil, 0, 0, 1)
	assert.Greater(t, pool.NumWorkers(), 0)
	assert.Equal(t, 2*pool.NumWorkers(), cap(pool.taskQueue))
}

func TestWorkerPool_EachWorkerOwnsItsSampler(t *testing.T) {
	pool := NewWorkerPool(nil, nil, nil, 4, 1, 10)
	seen := make(map[core.Sampler]bool)
	for _, w := range pool.workers {
		assert.False(t, seen[w.sampler], "worker %d shares a sampler", w.ID)
		seen[w.sampler] = true
	}
}

func TestWorkerPool_WriteOncePerSlot(t *testing.T) {
	scene := createMockScene()
	config := SamplingConfig{Width: 17, Height: 9, SamplesPerPixel: 3, MaxDepth: 4}

	for _, workers := range []int{1, 2, 8} {
		buffer := NewImageBuffer(config.Width, config.Height)
		progress := NewProgress(config.Width*config.Height, nil, nil)
		sampler := NewPixelSampler(scene.GetCamera(), scene.GetWorld(), &MockIntegrator{returnColor: core.NewVec3(1, 1, 1)}, config)

		// Queue of one forces Submit to block while workers catch up
		pool := NewWorkerPool(sampler, buffer, progress, workers, 1, 7)
		pool.Start()
		for y := 0; y < config.Height; y++ {
			for x := 0; x < config.Width; x++ {
				pool.Submit(PixelTask{X: x, Y: y})
			}
		}
		require.NoError(t, pool.Wait(), "workers=%d", workers)
		require.NoError(t, buffer.Verify(), "workers=%d", workers)
		assert.Equal(t, config.Width*config.Height, progress.Completed())
	}
}

func TestWorkerPool_ReportsDuplicateTask(t *testing.T) {
	scene := createMockScene()
	config := SamplingConfig{Width: 2, Height: 2, SamplesPerPixel: 1, MaxDepth: 1}
	buffer := NewImageBuffer(2, 2)
	sampler := NewPixelSampler(scene.GetCamera(), scene.GetWorld(), &MockIntegrator{}, config)

	pool := NewWorkerPool(sampler, buffer, nil, 1, 4, 1)
	pool.Start()
	pool.Submit(PixelTask{X: 0, Y: 0})
	pool.Submit(PixelTask{X: 0, Y: 0})
	pool.Submit(PixelTask{X: 1, Y: 1})

	assert.Error(t, pool.Wait())
	assert.Equal(t, 2, buffer.WriteCount(0, 0))
}
