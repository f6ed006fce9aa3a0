package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nekoflow/nekodev/internal/device"
)

var (
	logLevel     string
	deviceConfig string
	dataDir      string
	logger       *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "nekodev",
	Short: "Inspect and configure compute device backends",
	Long: `nekodev discovers compute devices, opens device contexts and manages
named device profiles for CPU and OpenCL backends.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logger
		opts := &slog.HandlerOptions{Level: parseLogLevel(logLevel)}
		handler := slog.NewJSONHandler(os.Stdout, opts)
		logger = slog.New(handler)
		slog.SetDefault(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&deviceConfig, "device", "",
		"Device config \"<backend>[:platform=N,device=N,type=gpu|cpu|accelerator,precision=dp|sp]\" (default $"+device.EnvDevice+")")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "./data", "Base directory for profile storage")
}

// flagConfig parses --device, falling back to $NEKO_DEVICE.
func flagConfig() (device.Config, error) {
	if deviceConfig == "" {
		return device.ConfigFromEnv()
	}
	return device.ParseConfig(deviceConfig)
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
