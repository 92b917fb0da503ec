package main

import (
	"context"
	"fmt"
	"time"

	"github.com/exodash/exodash/internal/backend"
	"github.com/exodash/exodash/internal/config"
	"github.com/exodash/exodash/internal/exoplanet"
	"github.com/exodash/exodash/internal/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mockMode resolves the --mock flag against the predict.mock config key.
// The flag is declared per command, so it cannot be viper-bound globally.
func mockMode(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("mock") {
		mock, _ := cmd.Flags().GetBool("mock")
		return mock
	}
	return viper.GetBool("predict.mock")
}

// thresholdValue resolves the --threshold flag against predict.threshold.
func thresholdValue(cmd *cobra.Command) float64 {
	if cmd.Flags().Changed("threshold") {
		t, _ := cmd.Flags().GetFloat64("threshold")
		return t
	}
	return viper.GetFloat64("predict.threshold")
}

// newBackendClient builds a client from the resolved configuration.
func newBackendClient() *backend.Client {
	opts := []backend.Option{
		backend.WithTestRoutes(viper.GetBool("backend.test_routes")),
	}
	if timeout := viper.GetDuration("backend.timeout"); timeout > 0 {
		opts = append(opts, backend.WithTimeout(timeout))
	}
	return backend.NewClient(viper.GetString("backend.url"), opts...)
}

// openHistory opens the prediction ledger at the configured path.
func openHistory() (*storage.SQLiteStorage, error) {
	path := config.ExpandPath(viper.GetString("history.path"))
	if err := config.EnsureParentDir(path); err != nil {
		return nil, err
	}
	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history at %s: %w", path, err)
	}
	return store, nil
}

// queryFromFlags assembles a query from command flags plus config defaults.
func queryFromFlags(target, mission, author string, windowLength int) (exoplanet.Query, error) {
	m, err := exoplanet.ParseMission(mission)
	if err != nil {
		return exoplanet.Query{}, err
	}
	q := exoplanet.Query{
		Target:       target,
		Mission:      m,
		Author:       author,
		WindowLength: exoplanet.ClampWindowLength(windowLength),
	}
	if err := q.Validate(); err != nil {
		return exoplanet.Query{}, err
	}
	return q, nil
}

var (
	planetLikeColor    = color.New(color.FgGreen, color.Bold)
	notPlanetLikeColor = color.New(color.FgRed, color.Bold)
)

// colorDecision renders a decision label with its conventional color.
func colorDecision(d exoplanet.Decision) string {
	if d == exoplanet.DecisionPlanetLike {
		return planetLikeColor.Sprint(string(d))
	}
	return notPlanetLikeColor.Sprint(string(d))
}

// recordHistory appends a scored result to the ledger, best effort.
func recordHistory(store *storage.SQLiteStorage, q exoplanet.Query, result exoplanet.PredictionResult, threshold float64, source string) error {
	if store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := store.SavePrediction(ctx, storage.HistoryEntry{
		Target:     result.Target,
		Mission:    result.Mission,
		Author:     q.EffectiveAuthor(),
		ProbPlanet: result.ProbPlanet,
		Threshold:  threshold,
		Decision:   exoplanet.ComputeDecision(result.ProbPlanet, threshold),
		Source:     source,
	})
	return err
}
