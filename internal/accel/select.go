package accel

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDevices indicates that no usable device was found.
	ErrNoDevices = errors.New("no compute devices found")
	// ErrNoSuchPlatform is returned for an out of range platform index.
	ErrNoSuchPlatform = errors.New("no such platform")
	// ErrNoSuchDevice is returned for an out of range device index.
	ErrNoSuchDevice = errors.New("no such device")
	// ErrTypeMismatch is returned when an explicitly indexed device has the wrong type.
	ErrTypeMismatch = errors.New("device type mismatch")
)

// Preference constrains device selection. Negative indexes and an empty
// Type mean "any".
type Preference struct {
	Type     DeviceType
	Platform int
	Device   int
}

// AnyPreference returns a Preference with no constraints.
func AnyPreference() Preference {
	return Preference{Platform: -1, Device: -1}
}

// Selection indexes a device within an enumerated platform list.
type Selection struct {
	Platform int `json:"platform"`
	Device   int `json:"device"`
}

// Select picks a device from platforms.
//
// Without constraints a GPU is preferred, then a CPU, then the first device
// of any kind.
func Select(platforms []PlatformInfo, pref Preference) (Selection, error) {
	candidates := make([]int, 0, len(platforms))
	if pref.Platform >= 0 {
		if pref.Platform >= len(platforms) {
			return Selection{}, fmt.Errorf("%w: index %d of %d", ErrNoSuchPlatform, pref.Platform, len(platforms))
		}
		candidates = append(candidates, pref.Platform)
	} else {
		for i := range platforms {
			candidates = append(candidates, i)
		}
	}

	if pref.Device >= 0 {
		var mismatch error
		for _, p := range candidates {
			devices := platforms[p].Devices
			if pref.Device >= len(devices) {
				continue
			}
			if pref.Type != "" && devices[pref.Device].Type != pref.Type {
				// Keep looking on later platforms unless the platform is pinned.
				if mismatch == nil {
					mismatch = fmt.Errorf("%w: device %d on platform %d is %s, want %s",
						ErrTypeMismatch, pref.Device, p, devices[pref.Device].Type, pref.Type)
				}
				continue
			}
			return Selection{Platform: p, Device: pref.Device}, nil
		}
		if mismatch != nil {
			return Selection{}, mismatch
		}
		return Selection{}, fmt.Errorf("%w: index %d", ErrNoSuchDevice, pref.Device)
	}

	if pref.Type != "" {
		if sel, ok := firstOfType(platforms, candidates, pref.Type); ok {
			return sel, nil
		}
		return Selection{}, fmt.Errorf("%w: no %s device", ErrNoDevices, pref.Type)
	}

	// Prefer GPU
	if sel, ok := firstOfType(platforms, candidates, DeviceTypeGPU); ok {
		return sel, nil
	}
	// Fallback to CPU
	if sel, ok := firstOfType(platforms, candidates, DeviceTypeCPU); ok {
		return sel, nil
	}
	// Fallback to first available
	for _, p := range candidates {
		if len(platforms[p].Devices) > 0 {
			return Selection{Platform: p, Device: 0}, nil
		}
	}

	return Selection{}, ErrNoDevices
}

func firstOfType(platforms []PlatformInfo, candidates []int, dt DeviceType) (Selection, bool) {
	for _, p := range candidates {
		for d, device := range platforms[p].Devices {
			if device.Type == dt {
				return Selection{Platform: p, Device: d}, true
			}
		}
	}
	return Selection{}, false
}
