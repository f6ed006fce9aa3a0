package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekoflow/nekodev/internal/accel"
	"github.com/nekoflow/nekodev/internal/device"
	"github.com/nekoflow/nekodev/internal/precision"
	"github.com/nekoflow/nekodev/internal/store"
)

// execute runs the root command with fresh flag state and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	logLevel, deviceConfig, dataDir = "error", "", t.TempDir()
	devicesBackend, devicesJSON = "", false
	infoProfile, infoFinish = "", false
	preambleOut, profileNote = "", ""
	t.Setenv(device.EnvDevice, "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "nekodev version "+version)
	assert.Contains(t, out, "precision "+precision.CurrentPrecision().Name)
}

func TestPreambleCommand(t *testing.T) {
	out, err := execute(t, "preamble")
	require.NoError(t, err)
	assert.Equal(t, precision.CurrentPrecision().KernelPreamble(), out)
}

func TestDevicesCommandJSON(t *testing.T) {
	out, err := execute(t, "devices", "--backend", "cpu", "--json")
	require.NoError(t, err)

	var platforms []accel.PlatformInfo
	require.NoError(t, json.Unmarshal([]byte(out), &platforms))
	require.Len(t, platforms, 1)
	assert.Equal(t, "host", platforms[0].Name)
}

func TestDevicesCommandUnknownBackend(t *testing.T) {
	_, err := execute(t, "devices", "--backend", "vulkan")
	assert.ErrorIs(t, err, device.ErrUnknownBackend)
}

func TestInfoCommandCPU(t *testing.T) {
	out, err := execute(t, "info", "--device", "cpu", "--finish")
	require.NoError(t, err)
	assert.Contains(t, out, "host")
	assert.Contains(t, out, precision.CurrentPrecision().KernelType)
}

func TestInfoCommandBadConfig(t *testing.T) {
	_, err := execute(t, "info", "--device", "cpu:type=fpga")
	assert.Error(t, err)
}

func TestProfileLifecycle(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "--data", dir, "--device", "cpu:type=cpu", "profile", "save", "laptop", "--note", "dev box")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved profile laptop")

	out, err = execute(t, "--data", dir, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "laptop")
	assert.Contains(t, out, "dev box")
	assert.Contains(t, out, "Total profiles: 1")

	out, err = execute(t, "--data", dir, "profile", "show", "laptop")
	require.NoError(t, err)
	var p store.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, accel.DeviceTypeCPU, p.Config.DeviceType)

	out, err = execute(t, "--data", dir, "info", "--profile", "laptop")
	require.NoError(t, err)
	assert.Contains(t, out, "host")

	_, err = execute(t, "--data", dir, "profile", "delete", "laptop")
	require.NoError(t, err)

	_, err = execute(t, "--data", dir, "profile", "show", "laptop")
	assert.ErrorIs(t, err, store.ErrNotFound)

	out, err = execute(t, "--data", dir, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No profiles found.")
}

func TestDevicesTable(t *testing.T) {
	table := devicesTable([]accel.PlatformInfo{
		{Name: "empty"},
		{Name: "cuda", Devices: []accel.DeviceInfo{
			{Name: "A100", Type: accel.DeviceTypeGPU, MaxComputeUnits: 108, GlobalMemBytes: 40 << 30, FP64: true},
		}},
	})

	assert.Contains(t, table, "empty (no devices)")
	assert.Contains(t, table, "A100")
	assert.Contains(t, table, "40 GiB")
	assert.Equal(t, 1, strings.Count(table, "yes"))
}

func TestFormatMemory(t *testing.T) {
	assert.Equal(t, "-", formatMemory(0))
	assert.Equal(t, "1.0 KiB", formatMemory(1024))
}
