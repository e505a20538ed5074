package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/df07/go-sphere-pathtracer/pkg/output"
)

// Config holds the settings for one render. Zero image settings mean the
// scene's own values are used.
type Config struct {
	Scene       string  `toml:"scene"`        // Built-in scene name or path to a YAML scene file
	Width       int     `toml:"width"`        // Image width in pixels (0 = scene default)
	AspectRatio float64 `toml:"aspect_ratio"` // Width / height (0 = scene default)
	Samples     int     `toml:"samples"`      // Samples per pixel (0 = scene default)
	MaxDepth    int     `toml:"max_depth"`    // Maximum bounce depth (0 = scene default)
	Workers     int     `toml:"workers"`      // Number of workers (0 = CPU count)
	QueueSize   int     `toml:"queue_size"`   // Task queue capacity (0 = twice the workers)
	Seed        int64   `toml:"seed"`         // Base seed for the per-worker generators
	Output      string  `toml:"output"`       // Output image path; "-" writes PPM to stdout
	Verbose     bool    `toml:"verbose"`      // Debug logging
	Quiet       bool    `toml:"quiet"`        // Errors only, no progress line
}

// Default returns the configuration used when nothing is specified
func Default() Config {
	return Config{
		Scene:  "default",
		Seed:   42,
		Output: "output/render.png",
	}
}

// Load reads a TOML configuration file on top of the defaults. Unknown keys are errors.
func Load(path string) (Config, error) {
	cfg := Default()

	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to expand config path: %w", err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("%s: %s", path, strict.String())
		}
		return cfg, fmt.Errorf("%s: failed to parse config: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings that cannot be rendered
func (c Config) Validate() error {
	if c.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", c.Width)
	}
	if c.AspectRatio < 0 {
		return fmt.Errorf("aspect ratio must not be negative, got %v", c.AspectRatio)
	}
	if c.Samples < 0 {
		return fmt.Errorf("samples must not be negative, got %d", c.Samples)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("queue size must not be negative, got %d", c.QueueSize)
	}
	if c.Verbose && c.Quiet {
		return fmt.Errorf("verbose and quiet are mutually exclusive")
	}
	if c.Output != "-" {
		if _, err := output.FormatFromPath(c.Output); err != nil {
			return err
		}
	}
	return nil
}

// Marshal encodes the configuration as TOML
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
