//go:build !sp

package precision

// Real is the floating point type shared by host code and device kernels.
// Build with -tags sp for single precision.
type Real = float64

const compiled = "dp"
