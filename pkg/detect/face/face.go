// Package face provides a luma-plane face Analyzer backed by the pigo
// cascade classifier.
package face

import (
	"fmt"
	"image"

	pigo "github.com/esimov/pigo/core"

	"github.com/ftcvision/vision/pkg/detect"
)

const (
	defaultMinSize     = 20
	defaultShiftFactor = 0.15
	defaultScaleFactor = 1.1
	defaultIoU         = 0.2
)

// Analyzer detects faces in a frame's luma plane. It is stateless after
// construction and safe for concurrent Analyze calls.
type Analyzer struct {
	classifier *pigo.Pigo
	minQuality float32
}

// NewAnalyzer unpacks a binary pigo cascade. Detections scoring below
// minQuality are discarded; around 5.0 is a reasonable floor.
func NewAnalyzer(cascade []byte, minQuality float32) (*Analyzer, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpacking cascade: %w", err)
	}

	return &Analyzer{
		classifier: classifier,
		minQuality: minQuality,
	}, nil
}

// Analyze runs the cascade over the frame. The luma plane alone is enough
// for the classifier, so ARGB-origin frames pay one YUV conversion and
// YUV-origin frames pay nothing.
func (a *Analyzer) Analyze(frame *detect.Frame) ([]detect.Recognition, error) {
	width, height := frame.Width(), frame.Height()

	maxSize := width
	if height < maxSize {
		maxSize = height
	}

	params := pigo.CascadeParams{
		MinSize:     defaultMinSize,
		MaxSize:     maxSize,
		ShiftFactor: defaultShiftFactor,
		ScaleFactor: defaultScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: frame.Luminance(),
			Rows:   height,
			Cols:   width,
			Dim:    width,
		},
	}

	detections := a.classifier.RunCascade(params, 0.0)
	detections = a.classifier.ClusterDetections(detections, defaultIoU)

	var recognitions []detect.Recognition
	for _, d := range detections {
		if d.Q < a.minQuality {
			continue
		}

		half := d.Scale / 2
		recognitions = append(recognitions, detect.Recognition{
			Label:      "face",
			Confidence: float64(d.Q),
			Location:   image.Rect(d.Col-half, d.Row-half, d.Col+half, d.Row+half),
		})
	}
	return recognitions, nil
}
