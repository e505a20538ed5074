package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	World          *geometry.HittableList // Spheres in the scene
	SamplingConfig renderer.SamplingConfig
	Background     integrator.BackgroundConfig
}

// Overrides replaces scene settings from the command line or a config file.
// Zero fields leave the scene's own value in place.
type Overrides struct {
	Width           int
	AspectRatio     float64
	SamplesPerPixel int
	MaxDepth        int
}

// newScene fills in the derived fields shared by every scene constructor
func newScene(name string, cameraConfig renderer.CameraConfig, sampling renderer.SamplingConfig, world *geometry.HittableList) *Scene {
	s := &Scene{
		Name:           name,
		CameraConfig:   cameraConfig,
		World:          world,
		SamplingConfig: sampling,
		Background:     integrator.DefaultBackground(),
	}
	s.ApplyOverrides(Overrides{})
	return s
}

// ApplyOverrides updates sampling and camera settings, recomputing the image
// height from the width and aspect ratio and rebuilding the camera.
func (s *Scene) ApplyOverrides(o Overrides) {
	if o.AspectRatio > 0 {
		s.CameraConfig.AspectRatio = o.AspectRatio
	}
	if s.CameraConfig.AspectRatio <= 0 {
		s.CameraConfig.AspectRatio = 16.0 / 9.0
	}
	if o.Width > 0 {
		s.SamplingConfig.Width = o.Width
	}
	if o.SamplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = o.SamplesPerPixel
	}
	if o.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = o.MaxDepth
	}

	s.SamplingConfig.Height = max(1, int(float64(s.SamplingConfig.Width)/s.CameraConfig.AspectRatio))
	s.Camera = renderer.NewCamera(s.CameraConfig)
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld returns the hittable world
func (s *Scene) GetWorld() core.Hittable {
	return s.World
}

// GetBackground returns the sky gradient
func (s *Scene) GetBackground() integrator.BackgroundConfig {
	return s.Background
}

// GetSphereCount returns the number of spheres in the scene
func (s *Scene) GetSphereCount() int {
	return s.World.Len()
}
