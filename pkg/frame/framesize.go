package frame

// FrameSizeMap returns a function to get the number of bytes a frame will
// occupy in the given format.
var FrameSizeMap = map[Format]frameSizeFunc{
	FormatI420: frameSizeI420,
	FormatNV12: frameSizeNV21, // NV12 and NV21 have the same frame size
	FormatNV21: frameSizeNV21,
	FormatYUY2: frameSizeYUY2,
	FormatUYVY: frameSizeYUY2, // UYVY and YUY2 have the same frame size
	FormatARGB: frameSizeARGB,
	FormatBGRA: frameSizeARGB, // BGRA and ARGB have the same frame size
}

type frameSizeFunc func(width, height int) uint

func frameSizeI420(width, height int) uint {
	yi := width * height
	cbi := yi + width*height/4
	cri := cbi + width*height/4
	return uint(cri)
}

func frameSizeNV21(width, height int) uint {
	yi := width * height
	ci := yi + width*height/2
	return uint(ci)
}

func frameSizeYUY2(width, height int) uint {
	yi := width * height
	fi := 2 * yi
	return uint(fi)
}

func frameSizeARGB(width, height int) uint {
	return uint(4 * width * height)
}
