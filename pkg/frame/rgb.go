package frame

import (
	"fmt"
	"image"
)

func decodeARGB(frame []byte, width, height int) (image.Image, func(), error) {
	size := 4 * width * height
	if size > len(frame) {
		return nil, func() {}, fmt.Errorf("frame length (%d) less than expected (%d)", len(frame), size)
	}

	r := image.Rect(0, 0, width, height)
	img := image.NewRGBA(r)
	for i := 0; i < size; i += 4 {
		img.Pix[i] = frame[i+1]
		img.Pix[i+1] = frame[i+2]
		img.Pix[i+2] = frame[i+3]
		img.Pix[i+3] = frame[i]
	}
	return img, func() {}, nil
}

func decodeBGRA(frame []byte, width, height int) (image.Image, func(), error) {
	size := 4 * width * height
	if size > len(frame) {
		return nil, func() {}, fmt.Errorf("frame length (%d) less than expected (%d)", len(frame), size)
	}

	r := image.Rect(0, 0, width, height)
	img := image.NewRGBA(r)
	for i := 0; i < size; i += 4 {
		img.Pix[i] = frame[i+2]
		img.Pix[i+1] = frame[i+1]
		img.Pix[i+2] = frame[i]
		img.Pix[i+3] = frame[i+3]
	}
	return img, func() {}, nil
}
