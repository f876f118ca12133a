package detect

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ftcvision/vision/internal/logging"
	"github.com/ftcvision/vision/pkg/imageutil"
)

var frameLog = logging.NewLogger("frame")

// Frame holds one camera frame in either YUV 4:2:0 semi-planar or packed
// ARGB form and converts between the two on demand. Conversion happens at
// most once per direction; the result is cached and shared, so callers must
// treat returned buffers as read-only.
//
// A Frame is safe for concurrent use. The caller must not mutate the buffer
// it constructed the Frame from afterwards.
type Frame struct {
	id         uuid.UUID
	width      int
	height     int
	uvFlipped  bool
	capturedAt time.Time

	mu   sync.Mutex
	yuv  []byte // luma plane followed by interleaved chroma
	argb []uint32
}

// NewYUVFrame wraps a YUV 4:2:0 semi-planar buffer. uvFlipped indicates the
// chroma pair order is swapped relative to this build's native order.
func NewYUVFrame(yuv []byte, width, height int, uvFlipped bool) (*Frame, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if need := width * height * 3 / 2; len(yuv) < need {
		return nil, fmt.Errorf("yuv buffer holds %d bytes, %dx%d needs %d", len(yuv), width, height, need)
	}

	return &Frame{
		id:         uuid.New(),
		width:      width,
		height:     height,
		uvFlipped:  uvFlipped,
		capturedAt: time.Now(),
		yuv:        yuv,
	}, nil
}

// NewARGBFrame wraps a packed ARGB pixel buffer in row-major order.
func NewARGBFrame(argb []uint32, width, height int) (*Frame, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if need := width * height; len(argb) < need {
		return nil, fmt.Errorf("argb buffer holds %d pixels, %dx%d needs %d", len(argb), width, height, need)
	}

	return &Frame{
		id:         uuid.New(),
		width:      width,
		height:     height,
		capturedAt: time.Now(),
		argb:       argb,
	}, nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("dimensions %dx%d must be positive", width, height)
	}
	if width%2 != 0 || height%2 != 0 {
		return fmt.Errorf("dimensions %dx%d must be even", width, height)
	}
	return nil
}

func (f *Frame) ID() uuid.UUID         { return f.id }
func (f *Frame) Width() int            { return f.width }
func (f *Frame) Height() int           { return f.height }
func (f *Frame) CapturedAt() time.Time { return f.capturedAt }

// ARGB returns the frame as packed ARGB pixels, converting from YUV on the
// first call. The returned slice is shared; do not modify it.
func (f *Frame) ARGB() []uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.argb == nil {
		timer := NewTimer(frameLog)
		timer.Start("converting YUV to ARGB")
		f.argb = make([]uint32, f.width*f.height)
		imageutil.YUV420SPToARGB8888(f.argb, f.yuv[:f.width*f.height], f.yuv[f.width*f.height:], f.width, f.height, f.uvFlipped)
		timer.End()
	}
	return f.argb
}

// YUV returns the frame in YUV 4:2:0 semi-planar form, converting from ARGB
// on the first call. A frame converted from ARGB always uses the native
// chroma order; a frame constructed from YUV keeps its original order and
// flip flag. The returned slice is shared; do not modify it.
func (f *Frame) YUV() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.yuv == nil {
		timer := NewTimer(frameLog)
		timer.Start("converting ARGB to YUV")
		f.yuv = make([]byte, f.width*f.height*3/2)
		imageutil.ARGB8888ToYUV420SP(f.yuv[:f.width*f.height], f.yuv[f.width*f.height:], f.argb, f.width, f.height, false)
		timer.End()
	}
	return f.yuv
}

// Luminance returns the full-resolution luma plane. Luma-only analyzers can
// use this without paying for a chroma conversion of ARGB-origin frames
// beyond the one-time YUV conversion.
func (f *Frame) Luminance() []byte {
	return f.YUV()[:f.width*f.height]
}

// RGBA copies the frame into a freshly allocated stdlib image that is safe
// to draw on.
func (f *Frame) RGBA() *image.RGBA {
	return imageutil.RGBAFromARGB(f.ARGB(), f.width, f.height)
}
