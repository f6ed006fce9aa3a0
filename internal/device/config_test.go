package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekoflow/nekodev/internal/accel"
	"github.com/nekoflow/nekodev/internal/precision"
)

func TestNormalizeBackend(t *testing.T) {
	tests := map[string]Backend{
		"":        BackendCPU,
		"CPU":     BackendCPU,
		"host":    BackendCPU,
		"gpu":     BackendOpenCL,
		" OpenCL": BackendOpenCL,
		"cl":      BackendOpenCL,
		"hip":     Backend("hip"),
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeBackend(in), in)
	}
}

func TestParseConfig(t *testing.T) {
	built := precision.CurrentPrecision()

	tests := []struct {
		in   string
		want Config
	}{
		{"", DefaultConfig()},
		{"cpu", DefaultConfig()},
		{"opencl", Config{Backend: BackendOpenCL, Precision: built, Platform: -1, Device: -1}},
		{"gpu:platform=1,device=0", Config{Backend: BackendOpenCL, Precision: built, Platform: 1, Device: 0}},
		{"opencl: type=gpu , platform=any", Config{Backend: BackendOpenCL, Precision: built, DeviceType: accel.DeviceTypeGPU, Platform: -1, Device: -1}},
		{"cl:precision=sp", Config{Backend: BackendOpenCL, Precision: precision.Single, Platform: -1, Device: -1}},
		{"opencl:", Config{Backend: BackendOpenCL, Precision: built, Platform: -1, Device: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseConfig(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseConfigErrors(t *testing.T) {
	for _, in := range []string{
		"vulkan",
		"opencl:platform",
		"opencl:platform=-2",
		"opencl:device=x",
		"opencl:type=fpga",
		"opencl:precision=qp",
		"opencl:queue=2",
	} {
		_, err := ParseConfig(in)
		assert.Error(t, err, in)
	}

	_, err := ParseConfig("vulkan:device=0")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestConfigStringRoundTrip(t *testing.T) {
	configs := []Config{
		DefaultConfig(),
		{Backend: BackendOpenCL, Precision: precision.Single, Platform: 2, Device: 1},
		{Backend: BackendOpenCL, Precision: precision.Double, DeviceType: accel.DeviceTypeAccelerator, Platform: -1, Device: -1},
	}
	for _, cfg := range configs {
		s := cfg.String()
		got, err := ParseConfig(s)
		require.NoError(t, err, s)
		assert.Equal(t, cfg, got, s)
	}

	assert.Equal(t, "opencl:platform=0,type=gpu,precision=dp",
		Config{Backend: BackendOpenCL, Precision: precision.Double, DeviceType: accel.DeviceTypeGPU, Platform: 0, Device: -1}.String())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvDevice, "")
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	t.Setenv(EnvDevice, "opencl:device=3")
	cfg, err = ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, BackendOpenCL, cfg.Backend)
	assert.Equal(t, 3, cfg.Device)

	t.Setenv(EnvDevice, "opencl:bogus")
	_, err = ConfigFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvDevice)
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Backend = "metal"
	assert.ErrorIs(t, cfg.Validate(), ErrUnknownBackend)
}

func TestPreference(t *testing.T) {
	cfg := Config{DeviceType: accel.DeviceTypeCPU, Platform: 1, Device: -1}
	assert.Equal(t, accel.Preference{Type: accel.DeviceTypeCPU, Platform: 1, Device: -1}, cfg.Preference())
}
