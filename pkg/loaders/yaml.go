package loaders

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Material types understood by the scene file format
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
)

// SceneFile is the parsed content of a YAML scene description
type SceneFile struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Camera      CameraSpec              `yaml:"camera"`
	Sampling    SamplingSpec            `yaml:"sampling"`
	Background  *BackgroundSpec         `yaml:"background"`
	Materials   map[string]MaterialSpec `yaml:"materials"`
	Spheres     []SphereSpec            `yaml:"spheres"`
}

// CameraSpec describes the camera block. Unset fields keep their defaults.
type CameraSpec struct {
	LookFrom      *Vec3Spec `yaml:"look_from"`
	LookAt        *Vec3Spec `yaml:"look_at"`
	Up            *Vec3Spec `yaml:"up"`
	VFov          float64   `yaml:"vfov"`
	AspectRatio   float64   `yaml:"aspect_ratio"`
	Aperture      float64   `yaml:"aperture"`
	FocusDistance float64   `yaml:"focus_distance"`
}

// SamplingSpec describes image size and sampling effort
type SamplingSpec struct {
	Width    int `yaml:"width"`
	Samples  int `yaml:"samples"`
	MaxDepth int `yaml:"max_depth"`
}

// BackgroundSpec describes the sky gradient
type BackgroundSpec struct {
	Top    Vec3Spec `yaml:"top"`
	Bottom Vec3Spec `yaml:"bottom"`
}

// MaterialSpec is a named material that spheres refer to
type MaterialSpec struct {
	Type            string   `yaml:"type"`
	Albedo          Vec3Spec `yaml:"albedo"`
	Fuzz            float64  `yaml:"fuzz"`
	RefractiveIndex float64  `yaml:"refractive_index"`
}

// SphereSpec places one sphere with a reference to a named material
type SphereSpec struct {
	Center   Vec3Spec `yaml:"center"`
	Radius   float64  `yaml:"radius"`
	Material string   `yaml:"material"`
}

// Vec3Spec is a vector written either as [x, y, z] or as a single number
// meaning the same value on all three axes.
type Vec3Spec struct {
	X, Y, Z float64
}

// UnmarshalYAML implements yaml.Unmarshaler
func (v *Vec3Spec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		*v = Vec3Spec{f, f, f}
		return nil
	case yaml.SequenceNode:
		var values []float64
		if err := node.Decode(&values); err != nil {
			return err
		}
		if len(values) != 3 {
			return fmt.Errorf("line %d: expected 3 values, got %d", node.Line, len(values))
		}
		*v = Vec3Spec{values[0], values[1], values[2]}
		return nil
	default:
		return fmt.Errorf("line %d: expected a number or a list of 3 numbers", node.Line)
	}
}

// Vec3 converts the value to a core vector
func (v Vec3Spec) Vec3() core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

// ParseYAML decodes and validates a scene description. Unknown keys are errors.
func ParseYAML(reader io.Reader) (*SceneFile, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var file SceneFile
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty scene file")
		}
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// LoadYAML reads a scene description from disk. A leading ~ is expanded to
// the user's home directory.
func LoadYAML(filename string) (*SceneFile, error) {
	if !IsSceneFile(filename) {
		return nil, fmt.Errorf("invalid file type %q: only .yaml and .yml scene files are allowed", filename)
	}
	path, err := homedir.Expand(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to expand path: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	file, err := ParseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if file.Name == "" {
		file.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return file, nil
}

// IsSceneFile reports whether the name has a scene file extension
func IsSceneFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Validate checks the description for values that cannot be rendered
func (f *SceneFile) Validate() error {
	if err := f.Camera.validate(); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	if err := f.Sampling.validate(); err != nil {
		return fmt.Errorf("sampling: %w", err)
	}
	for name, mat := range f.Materials {
		if err := mat.validate(); err != nil {
			return fmt.Errorf("material %q: %w", name, err)
		}
	}
	if len(f.Spheres) == 0 {
		return fmt.Errorf("scene has no spheres")
	}
	for i, sphere := range f.Spheres {
		if sphere.Radius == 0 || !isFinite(sphere.Radius) {
			return fmt.Errorf("sphere %d: radius must be finite and non-zero, got %v", i, sphere.Radius)
		}
		if !sphere.Center.Vec3().IsFinite() {
			return fmt.Errorf("sphere %d: center must be finite", i)
		}
		if _, ok := f.Materials[sphere.Material]; !ok {
			return fmt.Errorf("sphere %d: unknown material %q", i, sphere.Material)
		}
	}
	return nil
}

func (c CameraSpec) validate() error {
	if c.LookFrom == nil || c.LookAt == nil {
		return fmt.Errorf("look_from and look_at are required")
	}
	if c.LookFrom.Vec3().Equals(c.LookAt.Vec3()) {
		return fmt.Errorf("look_from and look_at must differ")
	}
	if c.VFov < 0 || c.VFov >= 180 {
		return fmt.Errorf("vfov must be below 180 degrees, got %v", c.VFov)
	}
	if c.AspectRatio < 0 {
		return fmt.Errorf("aspect_ratio must be positive, got %v", c.AspectRatio)
	}
	if c.Aperture < 0 || c.FocusDistance < 0 {
		return fmt.Errorf("aperture and focus_distance must not be negative")
	}
	return nil
}

func (s SamplingSpec) validate() error {
	if s.Width < 0 || s.Samples < 0 || s.MaxDepth < 0 {
		return fmt.Errorf("width, samples and max_depth must not be negative")
	}
	return nil
}

func (m MaterialSpec) validate() error {
	switch m.Type {
	case MaterialLambertian, MaterialMetal:
		albedo := m.Albedo.Vec3()
		if !albedo.IsFinite() || albedo.X < 0 || albedo.Y < 0 || albedo.Z < 0 {
			return fmt.Errorf("albedo must be finite and non-negative")
		}
	case MaterialDielectric:
		if m.RefractiveIndex <= 0 || !isFinite(m.RefractiveIndex) {
			return fmt.Errorf("refractive_index must be positive, got %v", m.RefractiveIndex)
		}
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown type %q", m.Type)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
