package imageutil

// uvOrder is the in-memory order of an interleaved chroma sample pair.
type uvOrder int

const (
	orderVFirst uvOrder = iota
	orderUFirst
)

// NativeUVOrderIsUFirst reports the compile-time chroma pair order this
// build reads and writes. Exposed so callers adapting foreign buffers (for
// example NV12 vs NV21 camera payloads) can decide whether they need the
// uvFlipped flag.
func NativeUVOrderIsUFirst() bool {
	return nativeUVOrder == orderUFirst
}
