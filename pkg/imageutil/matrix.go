package imageutil

import "fmt"

// Raster manipulations for packed pixel matrices in row-major order. All of
// them require dst and src to be distinct slices of at least width*height
// elements; in-place operation is not supported and panics.

// Transpose writes the transpose of the width x height matrix src into dst.
func Transpose(dst, src []uint32, width, height int) {
	if &dst[0] == &src[0] {
		panic("imageutil: Transpose dst must not alias src")
	}

	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			dst[j*height+i] = src[i*width+j]
		}
	}
}

// FlipLeftRight mirrors src horizontally into dst.
func FlipLeftRight(dst, src []uint32, width, height int) {
	if &dst[0] == &src[0] {
		panic("imageutil: FlipLeftRight dst must not alias src")
	}

	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			dst[i*width+(width-j-1)] = src[i*width+j]
		}
	}
}

// FlipUpDown mirrors src vertically into dst.
func FlipUpDown(dst, src []uint32, width, height int) {
	if &dst[0] == &src[0] {
		panic("imageutil: FlipUpDown dst must not alias src")
	}

	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			dst[(height-i-1)*width+j] = src[i*width+j]
		}
	}
}

// Rotate rotates the raster in place by the given clockwise angle, which
// must be 0, 90, 180 or 270. It returns the rotated raster's width and
// height, which are swapped for quarter turns.
func Rotate(pix []uint32, width, height, rotation int) (int, int, error) {
	if rotation%90 != 0 || rotation < 0 || rotation >= 360 {
		return width, height, fmt.Errorf("rotation %d is not one of 0, 90, 180, 270", rotation)
	}

	tmp := make([]uint32, width*height)
	switch rotation {
	case 90:
		Transpose(tmp, pix, width, height)
		FlipLeftRight(pix, tmp, height, width)
	case 180:
		FlipLeftRight(tmp, pix, width, height)
		FlipUpDown(pix, tmp, width, height)
	case 270:
		Transpose(tmp, pix, width, height)
		FlipUpDown(pix, tmp, height, width)
	}

	if rotation == 90 || rotation == 270 {
		return height, width, nil
	}
	return width, height, nil
}
