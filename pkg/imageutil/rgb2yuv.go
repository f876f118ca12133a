package imageutil

// writeYUV writes the luma sample for pixel (x, y) and, once per 2x2 block
// (at the block's top-left pixel), the shared chroma pair. The integer
// coefficients are the BT.601 forward matrix in 8-bit fixed point with
// round-to-nearest, the inverse of the matrix in yuv2rgb.
func writeYUV(x, y, width, nR, nG, nB int, yPlane, uvPlane []byte, uvFlipped bool) {
	yPlane[y*width+x] = uint8(clamp((66*nR+129*nG+25*nB+128)>>8+16, 0, 255))

	if x&1 != 0 || y&1 != 0 {
		return
	}

	off := (y>>1)*width + x
	nV := uint8(clamp((112*nR-94*nG-18*nB+128)>>8+128, 0, 255))
	nU := uint8(clamp((-38*nR-74*nG+112*nB+128)>>8+128, 0, 255))

	vFirst := nativeUVOrder == orderVFirst
	if uvFlipped {
		vFirst = !vFirst
	}
	if vFirst {
		uvPlane[off] = nV
		uvPlane[off+1] = nU
	} else {
		uvPlane[off] = nU
		uvPlane[off+1] = nV
	}
}

// ARGB8888ToYUV420SP converts packed ARGB pixels to a YUV 4:2:0 semi-planar
// frame, the inverse of YUV420SPToARGB8888. Chroma is taken from the
// top-left pixel of each 2x2 block. The alpha channel is ignored. The pair
// order in uvPlane follows the platform's native order unless uvFlipped is
// set, which swaps it; round-tripping through both functions with matching
// flags is stable up to chroma subsampling loss.
//
// Preconditions, not checked: width and height are positive and even,
// len(src) >= width*height, len(yPlane) >= width*height and
// len(uvPlane) >= width*height/2.
func ARGB8888ToYUV420SP(yPlane, uvPlane []byte, src []uint32, width, height int, uvFlipped bool) {
	si := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			argb := src[si]
			si++

			nR := int(argb >> 16 & 0xFF)
			nG := int(argb >> 8 & 0xFF)
			nB := int(argb & 0xFF)
			writeYUV(x, y, width, nR, nG, nB, yPlane, uvPlane, uvFlipped)
		}
	}
}
