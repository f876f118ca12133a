package imageutil

import (
	"image"
	"image/draw"
)

// ARGBFromImage flattens any stdlib image into packed ARGB words plus its
// pixel dimensions. Fast path for *image.RGBA; everything else goes through
// a draw.Draw conversion first.
func ARGBFromImage(img image.Image) ([]uint32, int, int) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	out := make([]uint32, width*height)
	i := 0
	for y := 0; y < height; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+4*width]
		for x := 0; x < 4*width; x += 4 {
			out[i] = uint32(row[x+3])<<24 | uint32(row[x])<<16 | uint32(row[x+1])<<8 | uint32(row[x+2])
			i++
		}
	}
	return out, width, height
}

// RGBAFromARGB expands packed ARGB words into a freshly allocated
// *image.RGBA of the given dimensions. The copy is safe to draw on.
func RGBAFromARGB(argb []uint32, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	i := 0
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+4*width]
		for x := 0; x < 4*width; x += 4 {
			v := argb[i]
			i++
			row[x] = uint8(v >> 16)
			row[x+1] = uint8(v >> 8)
			row[x+2] = uint8(v)
			row[x+3] = uint8(v >> 24)
		}
	}
	return img
}
