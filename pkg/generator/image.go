// Package generator implements frame sources for the detection pipeline:
// static images, display capture and V4L2 cameras.
package generator

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/ftcvision/vision/pkg/detect"
	"github.com/ftcvision/vision/pkg/imageutil"
)

// Image cycles through a fixed set of stills at a configurable interval,
// handing each out as a fresh frame. Useful for tests and for running the
// pipeline against recorded data.
type Image struct {
	interval time.Duration

	mu     sync.Mutex
	frames [][]uint32
	sizes  []image.Point
	next   int
	last   time.Time
}

// NewImage converts the given images up front. Images with odd dimensions
// are cropped by one pixel so frames stay convertible to YUV 4:2:0.
func NewImage(images []image.Image, interval time.Duration) (*Image, error) {
	if len(images) == 0 {
		return nil, errors.New("generator: at least one image is required")
	}

	g := &Image{interval: interval}
	for _, img := range images {
		argb, width, height := imageutil.ARGBFromImage(img)
		width, height, argb = cropEven(width, height, argb)
		g.frames = append(g.frames, argb)
		g.sizes = append(g.sizes, image.Pt(width, height))
	}
	return g, nil
}

// Frame returns the next image in the cycle, pacing calls to the configured
// interval.
func (g *Image) Frame(ctx context.Context) (*detect.Frame, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if wait := g.interval - time.Since(g.last); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	g.last = time.Now()

	i := g.next
	g.next = (g.next + 1) % len(g.frames)

	// Copy so the caller owns its buffer; frames hand out shared slices.
	pixels := make([]uint32, len(g.frames[i]))
	copy(pixels, g.frames[i])
	return detect.NewARGBFrame(pixels, g.sizes[i].X, g.sizes[i].Y)
}

// cropEven trims a packed raster to even dimensions.
func cropEven(width, height int, argb []uint32) (int, int, []uint32) {
	evenWidth := width &^ 1
	evenHeight := height &^ 1
	if evenWidth == width && evenHeight == height {
		return width, height, argb
	}

	cropped := make([]uint32, evenWidth*evenHeight)
	for y := 0; y < evenHeight; y++ {
		copy(cropped[y*evenWidth:(y+1)*evenWidth], argb[y*width:y*width+evenWidth])
	}
	return evenWidth, evenHeight, cropped
}
