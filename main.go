package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/df07/go-sphere-pathtracer/pkg/config"
	"github.com/df07/go-sphere-pathtracer/pkg/logging"
	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

func main() {
	if err := newRootCommand(os.Stderr).Execute(); err != nil {
		logging.New(os.Stderr, slog.LevelError).Error("pathtracer failed", "error", err)
		os.Exit(1)
	}
}

// newRootCommand builds the CLI. Progress and logs go to stderr so that
// "-o -" can stream the image to stdout.
func newRootCommand(stderr io.Writer) *cobra.Command {
	var configPath string
	flagValues := config.Default()

	cmd := &cobra.Command{
		Use:           "pathtracer",
		Short:         "Render sphere scenes with a concurrent path tracer",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), configPath, flagValues)
			if err != nil {
				return err
			}
			return render(cfg, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "TOML file with render settings")
	flags.StringVarP(&flagValues.Scene, "scene", "s", flagValues.Scene, "Built-in scene (default, random, glass) or path to a YAML scene file")
	flags.IntVarP(&flagValues.Width, "width", "w", 0, "Image width in pixels (0 = scene default)")
	flags.Float64Var(&flagValues.AspectRatio, "aspect", 0, "Aspect ratio width/height (0 = scene default)")
	flags.IntVarP(&flagValues.Samples, "samples", "n", 0, "Samples per pixel (0 = scene default)")
	flags.IntVarP(&flagValues.MaxDepth, "depth", "d", 0, "Maximum bounce depth (0 = scene default)")
	flags.IntVarP(&flagValues.Workers, "workers", "j", 0, "Number of render workers (0 = CPU count)")
	flags.IntVar(&flagValues.QueueSize, "queue", 0, "Task queue capacity (0 = twice the workers)")
	flags.Int64Var(&flagValues.Seed, "seed", flagValues.Seed, "Base random seed")
	flags.StringVarP(&flagValues.Output, "output", "o", flagValues.Output, "Output image (.ppm, .png, .bmp, .tif); - writes PPM to stdout")
	flags.BoolVarP(&flagValues.Verbose, "verbose", "v", false, "Debug logging")
	flags.BoolVarP(&flagValues.Quiet, "quiet", "q", false, "Only log errors and hide the progress line")

	cmd.AddCommand(newScenesCommand())
	return cmd
}

// newScenesCommand lists the scenes that --scene accepts
func newScenesCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes and scene files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenes, err := scene.ListScenes(dir, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, info := range scenes {
				fmt.Fprintf(out, "%-28s %s\n", info.ID, info.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", scene.DefaultScenesDir, "Directory to search for scene files")
	return cmd
}

// resolveConfig layers the configuration: defaults, then the TOML file, then
// only the flags that were set explicitly on the command line.
func resolveConfig(flags *pflag.FlagSet, configPath string, flagValues config.Config) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = flagValues.Scene
		case "width":
			cfg.Width = flagValues.Width
		case "aspect":
			cfg.AspectRatio = flagValues.AspectRatio
		case "samples":
			cfg.Samples = flagValues.Samples
		case "depth":
			cfg.MaxDepth = flagValues.MaxDepth
		case "workers":
			cfg.Workers = flagValues.Workers
		case "queue":
			cfg.QueueSize = flagValues.QueueSize
		case "seed":
			cfg.Seed = flagValues.Seed
		case "output":
			cfg.Output = flagValues.Output
		case "verbose":
			cfg.Verbose = flagValues.Verbose
		case "quiet":
			cfg.Quiet = flagValues.Quiet
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// render builds the scene, renders it on the worker pool and saves the image
func render(cfg config.Config, stderr io.Writer) error {
	logger := logging.New(stderr, logging.LevelFromFlags(cfg.Verbose, cfg.Quiet))

	selectedScene, err := scene.Create(cfg.Scene, cfg.Seed)
	if err != nil {
		return err
	}
	selectedScene.ApplyOverrides(scene.Overrides{
		Width:           cfg.Width,
		AspectRatio:     cfg.AspectRatio,
		SamplesPerPixel: cfg.Samples,
		MaxDepth:        cfg.MaxDepth,
	})
	logger.Info("scene loaded", "scene", selectedScene.Name, "spheres", selectedScene.GetSphereCount())

	renderConfig := renderer.RenderConfig{
		NumWorkers: cfg.Workers,
		QueueSize:  cfg.QueueSize,
		Seed:       cfg.Seed,
	}
	if !cfg.Quiet {
		renderConfig.Progress = stderr
	}

	raytracer := renderer.NewRaytracer(selectedScene, selectedScene.SamplingConfig, renderConfig, logger)
	buffer, stats, err := raytracer.Render()
	if err != nil {
		return err
	}

	if err := output.Save(cfg.Output, buffer); err != nil {
		return err
	}
	logger.Info("render saved",
		"path", cfg.Output,
		"duration", stats.Duration,
		"samples", stats.TotalSamples,
		"workers", stats.Workers)
	return nil
}
