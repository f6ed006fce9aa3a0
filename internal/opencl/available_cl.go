//go:build opencl

package opencl

const available = true
