//go:build sp

package precision

// Real is the floating point type shared by host code and device kernels.
type Real = float32

const compiled = "sp"
