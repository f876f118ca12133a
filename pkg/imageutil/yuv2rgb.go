// Package imageutil implements pixel-format conversion between YUV 4:2:0
// semi-planar camera frames and packed 32-bit ARGB rasters, plus a few
// whole-raster manipulations (transpose, flip, rotate).
//
// The conversions use fixed-point integer approximations of the BT.601
// matrices. The coefficients are load-bearing: outputs are expected to be
// bit-exact across platforms, so none of the math here may be replaced with
// floating point.
package imageutil

// maxChannelValue is 2^18 - 1. Channel intermediates are clamped to this
// range before being normalized down to eight bits.
const maxChannelValue = 262143

// yuv2rgb converts a single YUV pixel to a packed ARGB word. Luma is offset
// by -16 and clamped at zero, chroma by -128, then the fixed-point BT.601
// matrix is applied with a 10-bit normalizing shift. Alpha is forced opaque.
func yuv2rgb(nY, nU, nV int) uint32 {
	nY -= 16
	nU -= 128
	nV -= 128
	if nY < 0 {
		nY = 0
	}

	nR := 1192*nY + 1634*nV
	nG := 1192*nY - 833*nV - 400*nU
	nB := 1192*nY + 2066*nU

	nR = clamp(nR, 0, maxChannelValue)
	nG = clamp(nG, 0, maxChannelValue)
	nB = clamp(nB, 0, maxChannelValue)

	nR = (nR >> 10) & 0xFF
	nG = (nG >> 10) & 0xFF
	nB = (nB >> 10) & 0xFF

	return 0xFF000000 | uint32(nR)<<16 | uint32(nG)<<8 | uint32(nB)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// YUV420SPToARGB8888 converts a YUV 4:2:0 semi-planar frame to packed ARGB
// pixels in dst, row-major, matching the raster order of the luma plane.
//
// yPlane holds width*height full-resolution luma samples. uvPlane holds
// width*height/2 bytes of interleaved 2x2-subsampled chroma, in the
// platform's native pair order (see nativeUVOrder). uvFlipped indicates that
// the U and V samples in uvPlane are swapped relative to that order; the
// swap is applied by exchanging arguments into the color math, never by
// rewriting the samples.
//
// Preconditions, not checked: width and height are positive and even,
// len(yPlane) >= width*height, len(uvPlane) >= width*height/2 and
// len(dst) >= width*height. Violations are out-of-bounds accesses, not
// errors; this is a hot loop and stays free of per-pixel validation.
func YUV420SPToARGB8888(dst []uint32, yPlane, uvPlane []byte, width, height int, uvFlipped bool) {
	di := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			nY := int(yPlane[y*width+x])

			// One chroma pair is shared by each 2x2 luma block.
			off := (y>>1)*width + 2*(x>>1)
			var nU, nV int
			if nativeUVOrder == orderUFirst {
				nU = int(uvPlane[off])
				nV = int(uvPlane[off+1])
			} else {
				nV = int(uvPlane[off])
				nU = int(uvPlane[off+1])
			}

			if uvFlipped {
				dst[di] = yuv2rgb(nY, nV, nU)
			} else {
				dst[di] = yuv2rgb(nY, nU, nV)
			}
			di++
		}
	}
}
