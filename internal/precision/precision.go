// Package precision fixes the floating point width used by device kernels.
//
// The width is chosen at build time. Kernel sources must be prefixed with
// KernelPreamble so that their "real" type matches Real on the host.
package precision

import (
	"errors"
	"fmt"
	"strings"
)

// Precision describes a floating point width as seen by both host and kernels.
// It marshals as its short name ("dp" or "sp").
type Precision struct {
	Name       string
	Bits       int
	Size       uintptr
	KernelType string
}

var (
	Double = Precision{Name: "dp", Bits: 64, Size: 8, KernelType: "double"}
	Single = Precision{Name: "sp", Bits: 32, Size: 4, KernelType: "float"}
)

// ErrUnknownPrecision is returned when a precision name is not recognized.
var ErrUnknownPrecision = errors.New("unknown precision")

// CurrentPrecision returns the precision Real was compiled with.
func CurrentPrecision() Precision {
	if compiled == Single.Name {
		return Single
	}
	return Double
}

// ParsePrecision maps user input to a Precision.
func ParsePrecision(name string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dp", "double", "float64":
		return Double, nil
	case "sp", "single", "float", "float32":
		return Single, nil
	default:
		return Precision{}, fmt.Errorf("%w: %q", ErrUnknownPrecision, name)
	}
}

// RequiresFP64 reports whether kernels need double precision support on the device.
func (p Precision) RequiresFP64() bool {
	return p.Bits == 64
}

// KernelPreamble returns the declarations to prepend to kernel sources.
func (p Precision) KernelPreamble() string {
	var b strings.Builder
	if p.RequiresFP64() {
		b.WriteString("#pragma OPENCL EXTENSION cl_khr_fp64 : enable\n")
	}
	fmt.Fprintf(&b, "typedef %s real;\n", p.KernelType)
	return b.String()
}

func (p Precision) String() string {
	return p.Name
}

// MarshalText implements encoding.TextMarshaler.
func (p Precision) MarshalText() ([]byte, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: empty", ErrUnknownPrecision)
	}
	return []byte(p.Name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Precision) UnmarshalText(text []byte) error {
	parsed, err := ParsePrecision(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
