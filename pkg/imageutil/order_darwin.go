//go:build darwin

package imageutil

const nativeUVOrder = orderUFirst
