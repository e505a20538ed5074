package scene

import (
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/loaders"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// NewYAMLScene creates a scene from a YAML scene file
func NewYAMLScene(filename string) (*Scene, error) {
	file, err := loaders.LoadYAML(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}
	return NewSceneFromFile(file)
}

// NewSceneFromFile converts a parsed scene description into a renderable scene.
// Spheres naming the same material share one material instance.
func NewSceneFromFile(file *loaders.SceneFile) (*Scene, error) {
	materials := make(map[string]core.Material, len(file.Materials))
	for name, spec := range file.Materials {
		mat, err := convertMaterial(spec)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	world := geometry.NewHittableList()
	for i, spec := range file.Spheres {
		mat, ok := materials[spec.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, spec.Material)
		}
		world.Add(geometry.NewSphere(spec.Center.Vec3(), spec.Radius, mat))
	}

	s := newScene(file.Name, convertCamera(file.Camera), convertSampling(file.Sampling), world)
	if file.Background != nil {
		s.Background = integrator.BackgroundConfig{
			TopColor:    file.Background.Top.Vec3(),
			BottomColor: file.Background.Bottom.Vec3(),
		}
	}
	return s, nil
}

func convertCamera(spec loaders.CameraSpec) renderer.CameraConfig {
	config := renderer.CameraConfig{
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      spec.Aperture,
		FocusDistance: spec.FocusDistance,
	}
	if spec.LookFrom != nil {
		config.LookFrom = spec.LookFrom.Vec3()
	}
	if spec.LookAt != nil {
		config.LookAt = spec.LookAt.Vec3()
	}
	if spec.Up != nil {
		config.Up = spec.Up.Vec3()
	}
	if spec.VFov > 0 {
		config.VFov = spec.VFov
	}
	if spec.AspectRatio > 0 {
		config.AspectRatio = spec.AspectRatio
	}
	return config
}

func convertSampling(spec loaders.SamplingSpec) renderer.SamplingConfig {
	config := renderer.DefaultSamplingConfig()
	if spec.Width > 0 {
		config.Width = spec.Width
	}
	if spec.Samples > 0 {
		config.SamplesPerPixel = spec.Samples
	}
	if spec.MaxDepth > 0 {
		config.MaxDepth = spec.MaxDepth
	}
	return config
}

func convertMaterial(spec loaders.MaterialSpec) (core.Material, error) {
	switch spec.Type {
	case loaders.MaterialLambertian:
		return material.NewLambertian(spec.Albedo.Vec3()), nil
	case loaders.MaterialMetal:
		return material.NewMetal(spec.Albedo.Vec3(), spec.Fuzz), nil
	case loaders.MaterialDielectric:
		return material.NewDielectric(spec.RefractiveIndex), nil
	default:
		return nil, fmt.Errorf("unsupported material type %q", spec.Type)
	}
}
