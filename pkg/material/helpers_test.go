package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// scriptedSampler returns fixed values and counts how often it is asked
type scriptedSampler struct {
	value1D float64
	value2D core.Vec2
	value3D core.Vec3
	calls1D int
}

func (s *scriptedSampler) Get1D() float64 {
	s.calls1D++
	return s.value1D
}

func (s *scriptedSampler) Get2D() core.Vec2 { return s.value2D }
func (s *scriptedSampler) Get3D() core.Vec3 { return s.value3D }
