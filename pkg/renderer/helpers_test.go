package renderer

import (
	"sync/atomic"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// MockIntegrator returns a fixed color and counts calls
type MockIntegrator struct {
	returnColor core.Vec3
	callCount   atomic.Int64
}

func (m *MockIntegrator) RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler, depth int) core.Vec3 {
	m.callCount.Add(1)
	return m.returnColor
}

// MockScene implements Scene for testing
type MockScene struct {
	camera     *Camera
	world      *geometry.HittableList
	background integrator.BackgroundConfig
}

func (m *MockScene) GetCamera() *Camera                         { return m.camera }
func (m *MockScene) GetWorld() core.Hittable                    { return m.world }
func (m *MockScene) GetBackground() integrator.BackgroundConfig { return m.background }

func testCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 1.0,
	}
}

// createMockScene creates a simple test scene
func createMockScene() *MockScene {
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
	)
	return &MockScene{
		camera:     NewCamera(testCameraConfig()),
		world:      world,
		background: integrator.DefaultBackground(),
	}
}
