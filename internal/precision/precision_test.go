package precision

import (
	"errors"
	"strings"
	"testing"
	"unsafe"
)

func TestRealMatchesCurrentPrecision(t *testing.T) {
	var r Real
	p := CurrentPrecision()
	if got := unsafe.Sizeof(r); got != p.Size {
		t.Fatalf("sizeof(Real) = %d, precision %s says %d", got, p, p.Size)
	}
	if p.Bits != int(p.Size)*8 {
		t.Fatalf("bits %d inconsistent with size %d", p.Bits, p.Size)
	}
}

func TestParsePrecision(t *testing.T) {
	tests := []struct {
		in   string
		want Precision
	}{
		{"dp", Double},
		{"DOUBLE", Double},
		{" float64 ", Double},
		{"sp", Single},
		{"single", Single},
		{"float", Single},
		{"float32", Single},
	}
	for _, tt := range tests {
		got, err := ParsePrecision(tt.in)
		if err != nil {
			t.Fatalf("ParsePrecision(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePrecision(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParsePrecision("qp"); !errors.Is(err, ErrUnknownPrecision) {
		t.Fatalf("expected ErrUnknownPrecision, got %v", err)
	}
}

func TestKernelPreamble(t *testing.T) {
	dp := Double.KernelPreamble()
	if !strings.Contains(dp, "cl_khr_fp64 : enable") {
		t.Errorf("double preamble missing fp64 pragma:\n%s", dp)
	}
	if !strings.HasSuffix(dp, "typedef double real;\n") {
		t.Errorf("double preamble missing typedef:\n%s", dp)
	}

	sp := Single.KernelPreamble()
	if sp != "typedef float real;\n" {
		t.Errorf("single preamble = %q", sp)
	}
}

func TestKernelTypeMatchesHost(t *testing.T) {
	p := CurrentPrecision()
	want := "typedef " + p.KernelType + " real;"
	if !strings.Contains(p.KernelPreamble(), want) {
		t.Fatalf("preamble for %s does not declare %q", p, want)
	}
}

func TestPrecisionText(t *testing.T) {
	text, err := Single.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var p Precision
	if err := p.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if p != Single {
		t.Fatalf("got %v, want %v", p, Single)
	}

	if _, err := (Precision{}).MarshalText(); !errors.Is(err, ErrUnknownPrecision) {
		t.Fatalf("expected ErrUnknownPrecision for zero value, got %v", err)
	}
	if err := p.UnmarshalText([]byte("half")); !errors.Is(err, ErrUnknownPrecision) {
		t.Fatalf("expected ErrUnknownPrecision, got %v", err)
	}
}
