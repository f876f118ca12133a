package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/kbinani/screenshot"

	"github.com/ftcvision/vision/pkg/detect"
	"github.com/ftcvision/vision/pkg/imageutil"
)

// Screen captures one display as a frame source.
type Screen struct {
	display  int
	interval time.Duration
	last     time.Time
}

// NewScreen captures the given display at most once per interval.
func NewScreen(display int, interval time.Duration) (*Screen, error) {
	if active := screenshot.NumActiveDisplays(); display < 0 || display >= active {
		return nil, fmt.Errorf("display %d out of range, %d active", display, active)
	}

	return &Screen{
		display:  display,
		interval: interval,
	}, nil
}

func (s *Screen) Frame(ctx context.Context) (*detect.Frame, error) {
	if wait := s.interval - time.Since(s.last); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	s.last = time.Now()

	img, err := screenshot.CaptureDisplay(s.display)
	if err != nil {
		return nil, fmt.Errorf("capturing display %d: %w", s.display, err)
	}

	argb, width, height := imageutil.ARGBFromImage(img)
	width, height, argb = cropEven(width, height, argb)
	return detect.NewARGBFrame(argb, width, height)
}
