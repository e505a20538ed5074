package renderer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestRaytracer_RenderFillsEverySlot(t *testing.T) {
	scene := createMockScene()
	sampling := SamplingConfig{Width: 24, Height: 16, SamplesPerPixel: 4, MaxDepth: 8}

	for _, workers := range []int{1, 4} {
		config := RenderConfig{NumWorkers: workers, Seed: 3}
		rt := NewRaytracer(scene, sampling, config, nil)

		buffer, stats, err := rt.Render()
		require.NoError(t, err)
		require.NoError(t, buffer.Verify())

		assert.Equal(t, workers, stats.Workers)
		assert.Equal(t, 24*16, stats.TotalPixels)
		assert.Equal(t, 24*16*4, stats.TotalSamples)

		for y := 0; y < sampling.Height; y++ {
			for x := 0; x < sampling.Width; x++ {
				ps := buffer.At(x, y)
				assert.Equal(t, 4, ps.SampleCount)
				assert.True(t, ps.GetColor().IsFinite())
			}
		}
	}
}

func TestRaytracer_SequentialIsReproducible(t *testing.T) {
	scene := createMockScene()
	sampling := SamplingConfig{Width: 8, Height: 6, SamplesPerPixel: 3, MaxDepth: 8}
	config := RenderConfig{Seed: 11}

	a, _, err := NewRaytracer(scene, sampling, config, nil).RenderSequential()
	require.NoError(t, err)
	b, _, err := NewRaytracer(scene, sampling, config, nil).RenderSequential()
	require.NoError(t, err)

	for y := 0; y < sampling.Height; y++ {
		for x := 0; x < sampling.Width; x++ {
			assert.Equal(t, a.At(x, y), b.At(x, y))
		}
	}
}

func TestRaytracer_ParallelMatchesSequentialWithConstantIntegrator(t *testing.T) {
	// With a deterministic integrator the result cannot depend on thread count
	scene := createMockScene()
	sampling := SamplingConfig{Width: 10, Height: 10, SamplesPerPixel: 2, MaxDepth: 3}
	color := core.NewVec3(0.25, 0.5, 1)

	sequential := NewRaytracer(scene, sampling, RenderConfig{Seed: 1}, nil)
	sequential.SetIntegrator(&MockIntegrator{returnColor: color})
	seqBuffer, _, err := sequential.RenderSequential()
	require.NoError(t, err)

	parallel := NewRaytracer(scene, sampling, RenderConfig{NumWorkers: 6, QueueSize: 3, Seed: 1}, nil)
	mock := &MockIntegrator{returnColor: color}
	parallel.SetIntegrator(mock)
	parBuffer, _, err := parallel.Render()
	require.NoError(t, err)
	assert.Equal(t, int64(10*10*2), mock.callCount.Load())

	for y := 0; y < sampling.Height; y++ {
		for x := 0; x < sampling.Width; x++ {
			assert.True(t, seqBuffer.Color(x, y).Equals(parBuffer.Color(x, y)))
		}
	}
}

func TestRaytracer_InvalidConfig(t *testing.T) {
	scene := createMockScene()
	tests := []SamplingConfig{
		{Width: 0, Height: 10, SamplesPerPixel: 1, MaxDepth: 1},
		{Width: 10, Height: -1, SamplesPerPixel: 1, MaxDepth: 1},
		{Width: 10, Height: 10, SamplesPerPixel: 0, MaxDepth: 1},
	}
	for _, sampling := range tests {
		_, _, err := NewRaytracer(scene, sampling, DefaultRenderConfig(), nil).Render()
		assert.Error(t, err, "%+v", sampling)
	}
}

func TestRaytracer_ProgressLine(t *testing.T) {
	var out bytes.Buffer
	scene := createMockScene()
	sampling := SamplingConfig{Width: 4, Height: 4, SamplesPerPixel: 1, MaxDepth: 2}

	_, _, err := NewRaytracer(scene, sampling, RenderConfig{NumWorkers: 2, Progress: &out}, nil).Render()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "0 pixels remaining")
}
