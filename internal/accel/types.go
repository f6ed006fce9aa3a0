// Package accel describes compute platforms and devices independent of the
// runtime that discovered them, and implements device selection.
package accel

import (
	"fmt"
	"strings"
)

// DeviceType describes the class of a compute device.
type DeviceType string

const (
	DeviceTypeGPU         DeviceType = "GPU"
	DeviceTypeCPU         DeviceType = "CPU"
	DeviceTypeAccelerator DeviceType = "Accelerator"
	DeviceTypeDefault     DeviceType = "Default"
	DeviceTypeUnknown     DeviceType = "Unknown"
)

// ParseDeviceType maps user input to a DeviceType. An empty string or "any"
// yields the empty DeviceType, meaning no preference.
func ParseDeviceType(s string) (DeviceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return "", nil
	case "gpu":
		return DeviceTypeGPU, nil
	case "cpu":
		return DeviceTypeCPU, nil
	case "accelerator", "acc":
		return DeviceTypeAccelerator, nil
	default:
		return "", fmt.Errorf("unknown device type %q", s)
	}
}

// DeviceInfo captures metadata about a compute device.
type DeviceInfo struct {
	Name            string     `json:"name"`
	Vendor          string     `json:"vendor"`
	Version         string     `json:"version"`
	Type            DeviceType `json:"type"`
	MaxComputeUnits uint32     `json:"maxComputeUnits"`
	GlobalMemBytes  uint64     `json:"globalMemBytes"`
	FP64            bool       `json:"fp64"`
	Extensions      []string   `json:"extensions,omitempty"`
}

// HasExtension reports whether the device advertises the named extension.
func (d DeviceInfo) HasExtension(name string) bool {
	for _, ext := range d.Extensions {
		if ext == name {
			return true
		}
	}
	return false
}

// PlatformInfo captures metadata about a platform and its devices.
type PlatformInfo struct {
	Name    string       `json:"name"`
	Vendor  string       `json:"vendor"`
	Version string       `json:"version"`
	Devices []DeviceInfo `json:"devices"`
}
