package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nekoflow/nekodev/internal/device"
)

var (
	devicesBackend string
	devicesJSON    bool
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List platforms and devices",
	Long: `Lists every platform and device the backend can see, with the indexes
used by the platform= and device= options of --device.`,
	RunE: runDevices,
}

func init() {
	devicesCmd.Flags().StringVar(&devicesBackend, "backend", "", "Backend to enumerate (default: backend of --device)")
	devicesCmd.Flags().BoolVar(&devicesJSON, "json", false, "Print JSON instead of a table")
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	backend := device.NormalizeBackend(devicesBackend)
	if devicesBackend == "" {
		cfg, err := flagConfig()
		if err != nil {
			return err
		}
		backend = cfg.Backend
	}

	platforms, err := device.Enumerate(backend)
	if err != nil {
		return fmt.Errorf("failed to enumerate %s devices: %w", backend, err)
	}

	out := cmd.OutOrStdout()
	if devicesJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(platforms)
	}

	if len(platforms) == 0 {
		fmt.Fprintln(out, "No platforms found.")
		return nil
	}
	fmt.Fprintln(out, devicesTable(platforms))
	return nil
}
