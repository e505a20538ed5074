package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// NewGlassScene creates a row of dielectric spheres with increasing index of
// refraction in front of a diffuse backdrop, for checking refraction and
// total internal reflection.
func NewGlassScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom:    core.NewVec3(0, 1, 5),
		LookAt:      core.NewVec3(0, 0.4, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        35.0,
		AspectRatio: 2.0,
	}

	samplingConfig := renderer.SamplingConfig{
		Width:           400,
		SamplesPerPixel: 200,
		MaxDepth:        50,
	}

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.45, 0.45, 0.5))),
		// Colored backdrop so refraction is visible through the glass
		geometry.NewSphere(core.NewVec3(-2, 1, -4), 1.2, material.NewLambertian(core.NewVec3(0.8, 0.2, 0.2))),
		geometry.NewSphere(core.NewVec3(0, 1, -4), 1.2, material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.05)),
		geometry.NewSphere(core.NewVec3(2, 1, -4), 1.2, material.NewLambertian(core.NewVec3(0.2, 0.3, 0.8))),
	)

	indices := []float64{1.0, 1.33, 1.5, 2.4}
	for i, index := range indices {
		x := -1.8 + 1.2*float64(i)
		world.Add(geometry.NewSphere(core.NewVec3(x, 0.5, 0), 0.5, material.NewDielectric(index)))
	}
	// Air bubble inside the diamond
	world.Add(geometry.NewSphere(core.NewVec3(1.8, 0.5, 0), -0.3, material.NewDielectric(2.4)))

	return newScene("glass", cameraConfig, samplingConfig, world)
}
