// Package detect runs analyzers over a stream of camera frames and reports
// annotated results.
package detect

import (
	"fmt"
	"image"
)

// Recognition is a single detected object: its label, the analyzer's
// confidence and the bounding box in frame pixel coordinates.
type Recognition struct {
	Label      string
	Confidence float64
	Location   image.Rectangle
}

func (r Recognition) String() string {
	return fmt.Sprintf("%s (%.2f) at %v", r.Label, r.Confidence, r.Location)
}
