//go:build opencl

package opencl

import (
	"errors"
	"testing"

	"github.com/nekoflow/nekodev/internal/accel"
)

func TestOpenSelectedDevice(t *testing.T) {
	platforms, err := Enumerate()
	if err != nil {
		t.Skipf("OpenCL unavailable: %v", err)
	}
	sel, err := accel.Select(platforms, accel.AnyPreference())
	if errors.Is(err, accel.ErrNoDevices) {
		t.Skip("no OpenCL devices")
	}
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	rt, err := Open(sel)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rt.Close()

	if rt.Context() == nil || rt.Queue() == nil || rt.DeviceID() == nil {
		t.Fatal("expected non-nil handles")
	}
	if rt.Device.Name != platforms[sel.Platform].Devices[sel.Device].Name {
		t.Fatalf("opened %q, selected %q", rt.Device.Name, platforms[sel.Platform].Devices[sel.Device].Name)
	}
	if platform, dev := rt.Info(); platform.Name != rt.Platform.Name || dev.Name == "" {
		t.Fatalf("Info() = %q/%q, want platform %q and a device name", platform.Name, dev.Name, rt.Platform.Name)
	}
	if err := rt.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	rt.Close()
	rt.Close()
	if rt.Queue() != nil || rt.Context() != nil {
		t.Fatal("handles not cleared after Close")
	}
}

func TestOpenRejectsBadSelection(t *testing.T) {
	platforms, err := Enumerate()
	if err != nil || len(platforms) == 0 {
		t.Skip("OpenCL unavailable")
	}
	if _, err := Open(accel.Selection{Platform: len(platforms), Device: 0}); !errors.Is(err, accel.ErrNoSuchPlatform) {
		t.Fatalf("expected ErrNoSuchPlatform, got %v", err)
	}
	if _, err := Open(accel.Selection{Platform: 0, Device: 1 << 20}); !errors.Is(err, accel.ErrNoSuchDevice) {
		t.Fatalf("expected ErrNoSuchDevice, got %v", err)
	}
}
