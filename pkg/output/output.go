package output

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// Quantize maps a gamma-corrected channel value to a byte. Values are clamped
// to [0, 0.999] before scaling by 256, so 1.0 maps to 255 and NaN maps to 0.
func Quantize(c float64) uint8 {
	if math.IsNaN(c) {
		return 0
	}
	return uint8(256 * core.Clamp(c, 0.0, 0.999))
}

// QuantizeColor quantizes all three channels of a color
func QuantizeColor(c core.Vec3) (r, g, b uint8) {
	return Quantize(c.X), Quantize(c.Y), Quantize(c.Z)
}

// WritePPM writes the buffer as a plain-text (P3) PPM image, top row first
func WritePPM(w io.Writer, buf *renderer.ImageBuffer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", buf.Width(), buf.Height())
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			r, g, b := QuantizeColor(buf.Color(x, y))
			fmt.Fprintf(bw, "%d %d %d\n", r, g, b)
		}
	}
	return bw.Flush()
}

// ToImage converts the buffer to an RGBA image
func ToImage(buf *renderer.ImageBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.Width(), buf.Height()))
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			r, g, b := QuantizeColor(buf.Color(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// Encode writes the buffer in the given format: "ppm", "png", "bmp" or "tiff"
func Encode(w io.Writer, buf *renderer.ImageBuffer, format string) error {
	switch format {
	case "ppm":
		return WritePPM(w, buf)
	case "png":
		return png.Encode(w, ToImage(buf))
	case "bmp":
		return bmp.Encode(w, ToImage(buf))
	case "tiff":
		return tiff.Encode(w, ToImage(buf), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// FormatFromPath returns the image format implied by a file extension
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		return "ppm", nil
	case ".png":
		return "png", nil
	case ".bmp":
		return "bmp", nil
	case ".tif", ".tiff":
		return "tiff", nil
	default:
		return "", fmt.Errorf("unsupported output extension %q (want .ppm, .png, .bmp, .tif or .tiff)", ext)
	}
}

// Save writes the buffer to path, choosing the encoder from the extension.
// Missing parent directories are created; "-" writes PPM to stdout.
func Save(path string, buf *renderer.ImageBuffer) error {
	if path == "-" {
		return WritePPM(os.Stdout, buf)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	path, err = homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(file, buf, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
