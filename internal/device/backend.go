// Package device owns the lifecycle of a compute device context: the
// execution context, command queue and device identifier that kernels run
// against.
//
// A Context is created explicitly with Open and released with Close. There is
// no process-wide device state; callers pass the *Context to whatever needs it.
package device

import (
	"strings"

	"github.com/pkg/errors"
)

// Backend identifies a device runtime implementation.
type Backend string

const (
	BackendCPU    Backend = "cpu"
	BackendOpenCL Backend = "opencl"
)

var (
	// ErrUnknownBackend is returned when the name does not match a known backend.
	ErrUnknownBackend = errors.New("unknown device backend")
	// ErrBackendUnavailable indicates the backend is not available in this build or on this host.
	ErrBackendUnavailable = errors.New("device backend unavailable")
	// ErrPrecisionMismatch is returned when a config asks for a precision other than the compiled one.
	ErrPrecisionMismatch = errors.New("precision does not match build")
	// ErrPrecisionUnsupported is returned when the selected device cannot run kernels at the build precision.
	ErrPrecisionUnsupported = errors.New("precision unsupported by device")
	// ErrClosed is returned when a closed Context is used.
	ErrClosed = errors.New("device context closed")
)

// NormalizeBackend maps arbitrary user input to a canonical backend identifier.
func NormalizeBackend(name string) Backend {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cpu", "host":
		return BackendCPU
	case "gpu", "opencl", "cl":
		return BackendOpenCL
	default:
		return Backend(name)
	}
}

// SupportedBackends returns the list of backends understood by Open.
func SupportedBackends() []Backend {
	return []Backend{BackendCPU, BackendOpenCL}
}

func (b Backend) known() bool {
	for _, s := range SupportedBackends() {
		if b == s {
			return true
		}
	}
	return false
}
