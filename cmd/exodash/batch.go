package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/exodash/exodash/internal/backend"
	"github.com/exodash/exodash/internal/cli"
	"github.com/exodash/exodash/internal/common"
	"github.com/exodash/exodash/internal/exoplanet"
	"github.com/exodash/exodash/internal/storage"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <targets-file>",
		Short: "Score every target listed in a file",
		Long: `Read target names from a file (one per line, # starts a comment)
and score each one, printing a summary table at the end.

Every result is recorded in the history ledger. Interrupting with
Ctrl-C keeps the targets scored so far.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	// Flags
	cmd.Flags().StringP("mission", "m", string(exoplanet.MissionKepler), "Mission (Kepler, K2, TESS)")
	cmd.Flags().String("author", "", "Pipeline author (TESS only, e.g. SPOC)")
	cmd.Flags().Float64("threshold", exoplanet.DefaultThreshold, "Decision threshold for prob_planet")
	cmd.Flags().Bool("mock", false, "Score locally instead of calling the backend")

	// Bind to viper
	_ = viper.BindPFlag("batch.mission", cmd.Flags().Lookup("mission"))
	_ = viper.BindPFlag("batch.author", cmd.Flags().Lookup("author"))

	return cmd
}

type batchRow struct {
	target string
	err    error
	prob   float64
}

func runBatch(cmd *cobra.Command, args []string) error {
	targets, err := readTargets(args[0])
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no targets found in %s", args[0])
	}

	mission := viper.GetString("batch.mission")
	author := viper.GetString("batch.author")
	threshold := thresholdValue(cmd)
	mock := mockMode(cmd)

	handler := cli.NewInterruptHandler(os.Stdout)
	ctx := handler.HandleInterrupts(cmd.Context())

	store, err := openHistory()
	if err != nil {
		slog.Warn("Continuing without prediction history", "error", err)
		store = nil
	} else {
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				slog.Warn("Failed to close history store", "error", closeErr)
			}
		}()
	}

	client := newBackendClient()
	bar := newBatchProgressBar(len(targets))

	rows := make([]batchRow, 0, len(targets))
	for _, target := range targets {
		if ctx.Err() != nil {
			break
		}
		rows = append(rows, scoreOne(ctx, client, store, target, mission, author, threshold, mock))
		_ = bar.Add(1)
	}

	printBatchSummary(rows, threshold)
	if handler.WasInterrupted() {
		return fmt.Errorf("interrupted after %d of %d targets", len(rows), len(targets))
	}
	return nil
}

func scoreOne(ctx context.Context, client *backend.Client, store *storage.SQLiteStorage, target, mission, author string, threshold float64, mock bool) batchRow {
	q, err := queryFromFlags(target, mission, author, exoplanet.DefaultWindowLength)
	if err != nil {
		return batchRow{target: target, err: err}
	}

	var result exoplanet.PredictionResult
	var source string
	if mock {
		result = backend.MockPrediction(q, threshold)
		source = "mock"
	} else {
		// Network hiccups are retried; scoring errors from the backend are not.
		err = common.WithRetry(ctx, func() error {
			r, perr := client.Predict(ctx, q, &threshold)
			if perr != nil {
				var netErr net.Error
				return &common.RetryableError{Err: perr, Retryable: errors.As(perr, &netErr)}
			}
			result = r
			return nil
		}, common.RetryOptions{MaxAttempts: 3, InitialDelay: 500 * time.Millisecond})
		if err != nil {
			return batchRow{target: target, err: err}
		}
		source = "backend"
	}

	if err := recordHistory(store, q, result, threshold, source); err != nil {
		slog.Warn("Result not recorded in history", "target", target, "error", err)
	}
	return batchRow{target: target, prob: result.ProbPlanet}
}

func newBatchProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stdout),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Scoring targets...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

// readTargets parses a targets file: one name per line, blank lines and
// comments starting with # skipped.
func readTargets(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // user-supplied input path
	if err != nil {
		return nil, fmt.Errorf("failed to open targets file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var targets []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}
	return targets, nil
}

func printBatchSummary(rows []batchRow, threshold float64) {
	if len(rows) == 0 {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Target", "Prob", "Decision"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	planetLike := 0
	failed := 0
	for _, row := range rows {
		if row.err != nil {
			failed++
			if err := table.Append([]string{row.target, "-", cli.FormatError(row.err.Error())}); err != nil {
				slog.Warn("Failed to append summary row", "error", err)
			}
			continue
		}
		decision := exoplanet.ComputeDecision(row.prob, threshold)
		if decision == exoplanet.DecisionPlanetLike {
			planetLike++
		}
		if err := table.Append([]string{row.target, fmt.Sprintf("%.3f", row.prob), colorDecision(decision)}); err != nil {
			slog.Warn("Failed to append summary row", "error", err)
		}
	}
	if err := table.Render(); err != nil {
		slog.Warn("Failed to render summary table", "error", err)
	}

	fmt.Printf("%d scored, %d planet_like, %d failed (threshold %.2f)\n",
		len(rows)-failed, planetLike, failed, threshold)
}
