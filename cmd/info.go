package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nekoflow/nekodev/internal/device"
	"github.com/nekoflow/nekodev/internal/store"
)

var (
	infoProfile string
	infoFinish  bool
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Open a device context and describe it",
	Long: `Opens the device selected by --device (or --profile), prints the
selected platform, device and precision, and releases the context.`,
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVar(&infoProfile, "profile", "", "Use a saved profile instead of --device")
	infoCmd.Flags().BoolVar(&infoFinish, "finish", false, "Drain the command queue before closing")
	rootCmd.AddCommand(infoCmd)
}

// resolveConfig returns the device config from the named profile, or from
// the --device flag when profile is empty.
func resolveConfig(profile string) (device.Config, error) {
	if profile == "" {
		return flagConfig()
	}

	profileStore, err := store.NewFSStore(dataDir)
	if err != nil {
		return device.Config{}, fmt.Errorf("failed to create profile store: %w", err)
	}
	p, err := profileStore.LoadProfile(profile)
	if err != nil {
		return device.Config{}, err
	}
	return p.Config, nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(infoProfile)
	if err != nil {
		return err
	}

	ctx, err := device.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open device %s: %w", cfg, err)
	}
	defer ctx.Close()

	if infoFinish {
		if err := ctx.Finish(); err != nil {
			return err
		}
		slog.Debug("Queue drained", "id", ctx.ID())
	}

	fmt.Fprintln(cmd.OutOrStdout(), contextTable(ctx))
	return nil
}
