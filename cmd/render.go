package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/nekoflow/nekodev/internal/accel"
	"github.com/nekoflow/nekodev/internal/device"
)

func newTable(headers ...string) *lgtable.Table {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	headerStyle := lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)
	return lgtable.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// devicesTable lists one row per device, platforms with no devices get a placeholder row.
func devicesTable(platforms []accel.PlatformInfo) string {
	table := newTable("Platform", "Device", "Name", "Type", "Units", "Memory", "FP64")
	for p, platform := range platforms {
		if len(platform.Devices) == 0 {
			table.Row(strconv.Itoa(p), "-", platform.Name+" (no devices)", "", "", "", "")
			continue
		}
		for d, dev := range platform.Devices {
			table.Row(
				strconv.Itoa(p),
				strconv.Itoa(d),
				dev.Name,
				string(dev.Type),
				strconv.FormatUint(uint64(dev.MaxComputeUnits), 10),
				formatMemory(dev.GlobalMemBytes),
				yesNo(dev.FP64),
			)
		}
	}
	return table.String()
}

// contextTable summarizes an open device context.
func contextTable(ctx *device.Context) string {
	platform := ctx.Platform()
	dev := ctx.Device()
	sel := ctx.Selection()

	table := newTable("Property", "Value")
	table.Row("Context", ctx.ID())
	table.Row("Backend", string(ctx.Backend()))
	table.Row("Platform", fmt.Sprintf("[%d] %s %s", sel.Platform, platform.Name, platform.Version))
	table.Row("Device", fmt.Sprintf("[%d] %s (%s)", sel.Device, dev.Name, dev.Type))
	table.Row("Vendor", dev.Vendor)
	table.Row("Compute units", strconv.FormatUint(uint64(dev.MaxComputeUnits), 10))
	table.Row("Global memory", formatMemory(dev.GlobalMemBytes))
	table.Row("Precision", fmt.Sprintf("%s (%s, %d-bit)", ctx.Precision().Name, ctx.Precision().KernelType, ctx.Precision().Bits))
	if len(dev.Extensions) > 0 {
		table.Row("Extensions", strings.Join(dev.Extensions, " "))
	}
	return table.String()
}

func formatMemory(bytes uint64) string {
	if bytes == 0 {
		return "-"
	}
	return humanize.IBytes(bytes)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
