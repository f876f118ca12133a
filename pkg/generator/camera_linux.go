//go:build linux

package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/blackjack/webcam"

	"github.com/ftcvision/vision/internal/logging"
	"github.com/ftcvision/vision/pkg/detect"
	"github.com/ftcvision/vision/pkg/frame"
	"github.com/ftcvision/vision/pkg/imageutil"
)

var cameraLog = logging.NewLogger("camera")

const (
	waitTimeoutSec     = 5
	maxEmptyFrameCount = 5
)

// V4L2 fourcc codes for the formats the pipeline can ingest.
var (
	pixelFormatNV21  = fourcc('N', 'V', '2', '1')
	pixelFormatNV12  = fourcc('N', 'V', '1', '2')
	pixelFormatYUYV  = fourcc('Y', 'U', 'Y', 'V')
	pixelFormatUYVY  = fourcc('U', 'Y', 'V', 'Y')
	pixelFormatMJPEG = fourcc('M', 'J', 'P', 'G')
)

func fourcc(a, b, c, d byte) webcam.PixelFormat {
	return webcam.PixelFormat(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

// Semi-planar formats are preferred: their payload wraps straight into a
// YUV frame with no per-pixel work. Packed 4:2:2 and MJPEG fall back
// through the frame decoders.
var preferredFormats = []struct {
	pixelFormat webcam.PixelFormat
	format      frame.Format
}{
	{pixelFormatNV21, frame.FormatNV21},
	{pixelFormatNV12, frame.FormatNV12},
	{pixelFormatYUYV, frame.FormatYUY2},
	{pixelFormatUYVY, frame.FormatUYVY},
	{pixelFormatMJPEG, frame.FormatMJPEG},
}

// Camera reads frames from a V4L2 device.
type Camera struct {
	cam     *webcam.Webcam
	format  frame.Format
	decoder frame.Decoder // nil for semi-planar formats
	width   int
	height  int

	// uvFlipped records whether the device's chroma pair order differs
	// from this build's native order.
	uvFlipped bool
}

// OpenCamera opens the device at path and negotiates the first supported
// format in preference order at the requested resolution. width and height
// must be even.
func OpenCamera(path string, width, height int) (*Camera, error) {
	if width <= 0 || height <= 0 || width%2 != 0 || height%2 != 0 {
		return nil, fmt.Errorf("resolution %dx%d must be positive and even", width, height)
	}

	cam, err := webcam.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	supported := cam.GetSupportedFormats()
	c := &Camera{cam: cam}
	for _, candidate := range preferredFormats {
		if _, ok := supported[candidate.pixelFormat]; !ok {
			continue
		}

		_, w, h, err := cam.SetImageFormat(candidate.pixelFormat, uint32(width), uint32(height))
		if err != nil {
			continue
		}

		c.format = candidate.format
		c.width = int(w)
		c.height = int(h)
		break
	}
	if c.format == "" {
		cam.Close()
		return nil, fmt.Errorf("%s supports none of the usable formats", path)
	}

	switch c.format {
	case frame.FormatNV12:
		c.uvFlipped = !imageutil.NativeUVOrderIsUFirst()
	case frame.FormatNV21:
		c.uvFlipped = imageutil.NativeUVOrderIsUFirst()
	default:
		decoder, err := frame.NewDecoder(c.format)
		if err != nil {
			cam.Close()
			return nil, err
		}
		c.decoder = decoder
	}

	if err := cam.StartStreaming(); err != nil {
		cam.Close()
		return nil, fmt.Errorf("starting stream on %s: %w", path, err)
	}

	cameraLog.Infof("%s streaming %s at %dx%d", path, c.format, c.width, c.height)
	return c, nil
}

// Format reports the negotiated pixel format.
func (c *Camera) Format() frame.Format { return c.format }

// Frame blocks for the next camera frame.
func (c *Camera) Frame(ctx context.Context) (*detect.Frame, error) {
	emptyFrames := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		err := c.cam.WaitForFrame(waitTimeoutSec)
		switch err.(type) {
		case nil:
		case *webcam.Timeout:
			continue
		default:
			return nil, fmt.Errorf("waiting for frame: %w", err)
		}

		buf, err := c.cam.ReadFrame()
		if err != nil {
			return nil, fmt.Errorf("reading frame: %w", err)
		}
		if len(buf) == 0 {
			emptyFrames++
			if emptyFrames > maxEmptyFrameCount {
				return nil, errors.New("camera produced only empty frames")
			}
			continue
		}

		// ReadFrame reuses its buffer across calls; the frame needs its
		// own copy.
		payload := make([]byte, len(buf))
		copy(payload, buf)

		if c.decoder == nil {
			return detect.NewYUVFrame(payload, c.width, c.height, c.uvFlipped)
		}

		img, _, err := c.decoder.Decode(payload, c.width, c.height)
		if err != nil {
			return nil, fmt.Errorf("decoding %s frame: %w", c.format, err)
		}
		argb, width, height := imageutil.ARGBFromImage(img)
		width, height, argb = cropEven(width, height, argb)
		return detect.NewARGBFrame(argb, width, height)
	}
}

// Close stops streaming and releases the device.
func (c *Camera) Close() error {
	c.cam.StopStreaming()
	return c.cam.Close()
}
