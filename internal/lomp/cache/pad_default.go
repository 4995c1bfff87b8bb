//go:build !ppc64 && !ppc64le

package cache

// LineSize is the assumed cache line size in bytes, 64 on every target
// except POWER (see pad_ppc64x.go).
const LineSize = 64
