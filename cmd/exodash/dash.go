package main

import (
	"fmt"
	"log/slog"

	"github.com/exodash/exodash/internal/exoplanet"
	"github.com/exodash/exodash/internal/tui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dash",
		Short: "Open the interactive transit dashboard",
		Long: `Launch the full-screen dashboard for exploring transit light curves.

The dashboard has three tabs: a server-rendered plot, an interactive
chart built from light-curve JSON, and a prediction panel with an
adjustable decision threshold.`,
		RunE: runDash,
	}

	// Flags
	cmd.Flags().StringP("target", "t", "Kepler-10", "Target star to load on startup")
	cmd.Flags().StringP("mission", "m", string(exoplanet.MissionKepler), "Mission (Kepler, K2, TESS)")
	cmd.Flags().String("author", "", "Pipeline author (TESS only, e.g. SPOC)")
	cmd.Flags().IntP("window-length", "w", exoplanet.DefaultWindowLength, "Flatten window length in cadences")
	cmd.Flags().Bool("mock", false, "Score locally instead of calling the backend")

	// Bind to viper
	_ = viper.BindPFlag("dash.target", cmd.Flags().Lookup("target"))
	_ = viper.BindPFlag("dash.mission", cmd.Flags().Lookup("mission"))
	_ = viper.BindPFlag("dash.author", cmd.Flags().Lookup("author"))
	_ = viper.BindPFlag("dash.window_length", cmd.Flags().Lookup("window-length"))

	return cmd
}

func runDash(cmd *cobra.Command, _ []string) error {
	q, err := queryFromFlags(
		viper.GetString("dash.target"),
		viper.GetString("dash.mission"),
		viper.GetString("dash.author"),
		viper.GetInt("dash.window_length"),
	)
	if err != nil {
		return err
	}

	opts := []tui.Option{
		tui.WithBackend(newBackendClient()),
		tui.WithQuery(q),
		tui.WithThreshold(viper.GetFloat64("predict.threshold")),
		tui.WithMockMode(mockMode(cmd)),
	}

	store, err := openHistory()
	if err != nil {
		slog.Warn("Continuing without prediction history", "error", err)
	} else {
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				slog.Warn("Failed to close history store", "error", closeErr)
			}
		}()
		opts = append(opts, tui.WithHistory(store))
	}

	if err := tui.Run(cmd.Context(), opts...); err != nil {
		return fmt.Errorf("dashboard exited with error: %w", err)
	}
	return nil
}
