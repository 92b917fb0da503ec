package main

import (
	"fmt"
	"log/slog"

	"github.com/exodash/exodash/internal/mockserver"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func mockdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mockd",
		Short: "Run the local mock backend",
		Long: `Serve the backend HTTP contract with synthetic light curves and a
toy scoring model, for developing against without the real service:

  GET  /health
  GET  /api/plot-test, /api/plot/{target}
  GET  /api/lc-test,   /api/lc/{target}
  POST /api/predict`,
		RunE: runMockd,
	}

	// Flags
	cmd.Flags().String("addr", ":8000", "Listen address")

	// Bind to viper
	_ = viper.BindPFlag("mockd.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runMockd(cmd *cobra.Command, _ []string) error {
	addr := viper.GetString("mockd.addr")
	slog.Info("Starting mock backend", "addr", addr)

	if err := mockserver.New(addr).Run(cmd.Context()); err != nil {
		return fmt.Errorf("mock backend exited with error: %w", err)
	}
	return nil
}
