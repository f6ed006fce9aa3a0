package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nekoflow/nekodev/internal/precision"
)

var preambleOut string

var preambleCmd = &cobra.Command{
	Use:   "preamble",
	Short: "Print the kernel precision preamble",
	Long: `Prints the declarations device kernels must include so that their
"real" type matches the precision this binary was built with.`,
	RunE: runPreamble,
}

func init() {
	preambleCmd.Flags().StringVarP(&preambleOut, "out", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(preambleCmd)
}

func runPreamble(cmd *cobra.Command, args []string) error {
	p := precision.CurrentPrecision()
	text := p.KernelPreamble()

	if preambleOut == "" {
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}

	if err := os.WriteFile(preambleOut, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write preamble: %w", err)
	}
	slog.Info("Wrote kernel preamble", "path", preambleOut, "precision", p.Name)
	return nil
}
