package renderer

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// ImageBuffer holds one PixelStats slot per pixel in row-major order, top row first.
//
// Every slot is written by exactly one task, so writers never contend. Each
// write is counted so that Verify can prove the write-once property after a
// render.
type ImageBuffer struct {
	width, height int
	pixels        []PixelStats
	writes        []atomic.Int32
}

// NewImageBuffer pre-allocates a width×height buffer
func NewImageBuffer(width, height int) *ImageBuffer {
	return &ImageBuffer{
		width:  width,
		height: height,
		pixels: make([]PixelStats, width*height),
		writes: make([]atomic.Int32, width*height),
	}
}

// Width returns the buffer width in pixels
func (b *ImageBuffer) Width() int { return b.width }

// Height returns the buffer height in pixels
func (b *ImageBuffer) Height() int { return b.height }

func (b *ImageBuffer) index(x, y int) int {
	return y*b.width + x
}

// Set stores the result for pixel (x, y). It returns an error if the slot had
// already been written; the new value is stored regardless.
func (b *ImageBuffer) Set(x, y int, ps PixelStats) error {
	i := b.index(x, y)
	b.pixels[i] = ps
	if n := b.writes[i].Add(1); n != 1 {
		return fmt.Errorf("pixel (%d, %d) written %d times", x, y, n)
	}
	return nil
}

// At returns the stored statistics for pixel (x, y)
func (b *ImageBuffer) At(x, y int) PixelStats {
	return b.pixels[b.index(x, y)]
}

// Color returns the final gamma-corrected color for pixel (x, y)
func (b *ImageBuffer) Color(x, y int) core.Vec3 {
	ps := b.At(x, y)
	return ps.GetColor()
}

// WriteCount returns how many times pixel (x, y) has been written
func (b *ImageBuffer) WriteCount(x, y int) int {
	return int(b.writes[b.index(x, y)].Load())
}

// Verify checks that every slot was written exactly once
func (b *ImageBuffer) Verify() error {
	var bad []string
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if n := b.WriteCount(x, y); n != 1 {
				bad = append(bad, fmt.Sprintf("(%d,%d)=%d", x, y, n))
			}
		}
	}
	if len(bad) == 0 {
		return nil
	}
	const maxListed = 10
	listed := bad
	if len(listed) > maxListed {
		listed = listed[:maxListed]
	}
	return fmt.Errorf("image buffer: %d of %d slots not written exactly once: %s",
		len(bad), len(b.pixels), strings.Join(listed, " "))
}

// AverageLuminance returns the mean luminance of the final pixel colors
func (b *ImageBuffer) AverageLuminance() float64 {
	if len(b.pixels) == 0 {
		return 0
	}
	total := 0.0
	for i := range b.pixels {
		total += b.pixels[i].GetColor().Luminance()
	}
	return total / float64(len(b.pixels))
}
