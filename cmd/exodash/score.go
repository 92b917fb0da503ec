package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/exodash/exodash/internal/backend"
	"github.com/exodash/exodash/internal/cli"
	"github.com/exodash/exodash/internal/exoplanet"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <target>",
		Short: "Score a single target against the transit model",
		Long: `Request a prediction for one target and print the probability,
decision, feature impacts, and vetting diagnostics.

With --mock the score is fabricated locally and no backend is needed.`,
		Args: cobra.ExactArgs(1),
		RunE: runScore,
	}

	// Flags
	cmd.Flags().StringP("mission", "m", string(exoplanet.MissionKepler), "Mission (Kepler, K2, TESS)")
	cmd.Flags().String("author", "", "Pipeline author (TESS only, e.g. SPOC)")
	cmd.Flags().Float64("threshold", exoplanet.DefaultThreshold, "Decision threshold for prob_planet")
	cmd.Flags().Bool("mock", false, "Score locally instead of calling the backend")
	cmd.Flags().Bool("no-history", false, "Do not record the result in the history ledger")

	// Bind to viper
	_ = viper.BindPFlag("score.mission", cmd.Flags().Lookup("mission"))
	_ = viper.BindPFlag("score.author", cmd.Flags().Lookup("author"))
	_ = viper.BindPFlag("score.no_history", cmd.Flags().Lookup("no-history"))

	return cmd
}

func runScore(cmd *cobra.Command, args []string) error {
	q, err := queryFromFlags(
		args[0],
		viper.GetString("score.mission"),
		viper.GetString("score.author"),
		exoplanet.DefaultWindowLength,
	)
	if err != nil {
		return err
	}

	threshold := thresholdValue(cmd)
	mock := mockMode(cmd)

	var result exoplanet.PredictionResult
	var source string
	if mock {
		result = backend.MockPrediction(q, threshold)
		source = "mock"
	} else {
		result, err = newBackendClient().Predict(cmd.Context(), q, &threshold)
		if err != nil {
			return fmt.Errorf("failed to score %s: %w", q.Target, err)
		}
		source = "backend"
	}

	printPrediction(result, threshold)

	if !viper.GetBool("score.no_history") {
		store, err := openHistory()
		if err != nil {
			slog.Warn("Result not recorded in history", "error", err)
			return nil
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				slog.Warn("Failed to close history store", "error", closeErr)
			}
		}()
		if err := recordHistory(store, q, result, threshold, source); err != nil {
			slog.Warn("Result not recorded in history", "error", err)
		}
	}
	return nil
}

func printPrediction(result exoplanet.PredictionResult, threshold float64) {
	decision := exoplanet.ComputeDecision(result.ProbPlanet, threshold)

	fmt.Println(cli.FormatTitle(fmt.Sprintf("%s (%s)", result.Target, result.Mission)))
	fmt.Printf("prob_planet: %.3f  threshold: %.2f  decision: %s\n\n",
		result.ProbPlanet, threshold, colorDecision(decision))

	if len(result.TopFeatures) > 0 {
		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Feature", "Value", "Impact"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		for _, f := range result.TopFeatures {
			value := "-"
			if f.Value != nil {
				value = strconv.FormatFloat(*f.Value, 'g', 4, 64)
			}
			if err := table.Append([]string{f.Name, value, fmt.Sprintf("%+.2f", f.Impact)}); err != nil {
				slog.Warn("Failed to append feature row", "error", err)
			}
		}
		if err := table.Render(); err != nil {
			slog.Warn("Failed to render feature table", "error", err)
		}
		fmt.Println()
	}

	if len(result.Diagnostics) > 0 {
		names := make([]string, 0, len(result.Diagnostics))
		for name := range result.Diagnostics {
			names = append(names, name)
		}
		sort.Strings(names)

		content := ""
		for i, name := range names {
			if i > 0 {
				content += "\n"
			}
			content += fmt.Sprintf("%-16s %g", name, result.Diagnostics[name])
		}
		fmt.Println(cli.RenderBox("Diagnostics", content))
	}

	for _, note := range result.Notes {
		fmt.Println(cli.FormatInfo(note))
	}
}
