package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nekoflow/nekodev/internal/opencl"
	"github.com/nekoflow/nekodev/internal/precision"
)

var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "nekodev version %s (precision %s, opencl %t)\n",
			version, precision.CurrentPrecision(), opencl.Available)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
