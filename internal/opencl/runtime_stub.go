//go:build !opencl

package opencl

import (
	"unsafe"

	"github.com/nekoflow/nekodev/internal/accel"
)

// Runtime is a placeholder when OpenCL support is not compiled.
type Runtime struct{}

// Open returns ErrNotBuilt when OpenCL support is not compiled in.
func Open(accel.Selection) (*Runtime, error) {
	return nil, ErrNotBuilt
}

// Enumerate returns ErrNotBuilt when OpenCL support is not compiled in.
func Enumerate() ([]accel.PlatformInfo, error) {
	return nil, ErrNotBuilt
}

func (r *Runtime) Context() unsafe.Pointer  { return nil }
func (r *Runtime) Queue() unsafe.Pointer    { return nil }
func (r *Runtime) DeviceID() unsafe.Pointer { return nil }

// Info returns zero values without OpenCL support.
func (r *Runtime) Info() (accel.PlatformInfo, accel.DeviceInfo) {
	return accel.PlatformInfo{}, accel.DeviceInfo{}
}

// Finish returns ErrNotBuilt.
func (r *Runtime) Finish() error { return ErrNotBuilt }

// Close is a no-op without OpenCL support.
func (r *Runtime) Close() {}
