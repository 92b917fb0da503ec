package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/exodash/exodash/internal/cli"
	"github.com/exodash/exodash/internal/storage"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previously scored targets",
		Long: `List predictions recorded by the dashboard and the score and batch
commands, most recent first.`,
		RunE: runHistory,
	}

	// Flags
	cmd.Flags().IntP("limit", "n", 20, "Maximum number of entries to show")
	cmd.Flags().StringP("target", "t", "", "Only show entries for this target")

	// Bind to viper
	_ = viper.BindPFlag("history.limit", cmd.Flags().Lookup("limit"))
	_ = viper.BindPFlag("history.target", cmd.Flags().Lookup("target"))

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close history store", "error", closeErr)
		}
	}()

	var entries []storage.HistoryEntry
	if target := viper.GetString("history.target"); target != "" {
		entries, err = store.ListByTarget(cmd.Context(), target)
	} else {
		entries, err = store.ListRecent(cmd.Context(), viper.GetInt("history.limit"))
	}
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println(cli.FormatInfo("No predictions recorded yet. Run 'exodash score' or open the dashboard."))
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"When", "Target", "Mission", "Prob", "Threshold", "Decision", "Source"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	for _, e := range entries {
		row := []string{
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Target,
			string(e.Mission),
			fmt.Sprintf("%.3f", e.ProbPlanet),
			fmt.Sprintf("%.2f", e.Threshold),
			colorDecision(e.Decision),
			e.Source,
		}
		if err := table.Append(row); err != nil {
			slog.Warn("Failed to append history row", "error", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render history table: %w", err)
	}
	return nil
}
