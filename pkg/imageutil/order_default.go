//go:build !darwin

package imageutil

// Interleaved chroma reads V first on every platform except darwin, where
// the capture stack hands the pair over in the opposite byte order.
const nativeUVOrder = orderVFirst
