package device

import (
	"runtime"
	"unsafe"

	"github.com/nekoflow/nekodev/internal/accel"
	"github.com/nekoflow/nekodev/internal/opencl"
)

// Runtime is a native device runtime holding the three device handles.
type Runtime interface {
	Context() unsafe.Pointer
	Queue() unsafe.Pointer
	DeviceID() unsafe.Pointer
	Finish() error
	Close()
}

// Opener discovers devices and opens a Runtime on one of them.
type Opener interface {
	Enumerate() ([]accel.PlatformInfo, error)
	Open(sel accel.Selection) (Runtime, error)
}

type openclOpener struct{}

func (openclOpener) Enumerate() ([]accel.PlatformInfo, error) {
	return opencl.Enumerate()
}

func (openclOpener) Open(sel accel.Selection) (Runtime, error) {
	rt, err := opencl.Open(sel)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// hostOpener runs kernels on the calling goroutine; it has no native handles.
type hostOpener struct{}

func (hostOpener) Enumerate() ([]accel.PlatformInfo, error) {
	return []accel.PlatformInfo{hostPlatform()}, nil
}

func (hostOpener) Open(accel.Selection) (Runtime, error) {
	return hostRuntime{}, nil
}

func hostPlatform() accel.PlatformInfo {
	return accel.PlatformInfo{
		Name:    "host",
		Vendor:  "Go " + runtime.Version(),
		Version: runtime.GOOS + "/" + runtime.GOARCH,
		Devices: []accel.DeviceInfo{{
			Name:            runtime.GOARCH,
			Vendor:          runtime.GOOS,
			Version:         runtime.Version(),
			Type:            accel.DeviceTypeCPU,
			MaxComputeUnits: uint32(runtime.NumCPU()),
			FP64:            true,
		}},
	}
}

type hostRuntime struct{}

func (hostRuntime) Context() unsafe.Pointer  { return nil }
func (hostRuntime) Queue() unsafe.Pointer    { return nil }
func (hostRuntime) DeviceID() unsafe.Pointer { return nil }
func (hostRuntime) Finish() error            { return nil }
func (hostRuntime) Close()                   {}
