package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/exodash/exodash/internal/cli"
	"github.com/exodash/exodash/internal/exoplanet"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func lcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lc <target>",
		Short: "Fetch a light curve and summarize it",
		Long: `Download the raw and flattened light curve for a target and print
summary statistics, or export the samples as JSON or CSV.`,
		Args: cobra.ExactArgs(1),
		RunE: runLC,
	}

	// Flags
	cmd.Flags().StringP("mission", "m", string(exoplanet.MissionKepler), "Mission (Kepler, K2, TESS)")
	cmd.Flags().String("author", "", "Pipeline author (TESS only, e.g. SPOC)")
	cmd.Flags().IntP("window-length", "w", exoplanet.DefaultWindowLength, "Flatten window length in cadences")
	cmd.Flags().String("format", "summary", "Output format (summary, json, csv)")
	cmd.Flags().StringP("output", "o", "", "Write output to a file instead of stdout")

	// Bind to viper
	_ = viper.BindPFlag("lc.mission", cmd.Flags().Lookup("mission"))
	_ = viper.BindPFlag("lc.author", cmd.Flags().Lookup("author"))
	_ = viper.BindPFlag("lc.window_length", cmd.Flags().Lookup("window-length"))
	_ = viper.BindPFlag("lc.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("lc.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runLC(cmd *cobra.Command, args []string) error {
	q, err := queryFromFlags(
		args[0],
		viper.GetString("lc.mission"),
		viper.GetString("lc.author"),
		viper.GetInt("lc.window_length"),
	)
	if err != nil {
		return err
	}

	curve, err := newBackendClient().FetchLightCurve(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("failed to fetch light curve for %s: %w", q.Target, err)
	}

	format := viper.GetString("lc.format")
	switch format {
	case "json":
		return writeLC(viper.GetString("lc.output"), func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(curve)
		})
	case "csv":
		return writeLC(viper.GetString("lc.output"), func(w io.Writer) error {
			return writeLightCurveCSV(w, curve)
		})
	case "summary":
		return printLightCurveSummary(q, curve)
	default:
		return fmt.Errorf("unknown output format %q (want summary, json, or csv)", format)
	}
}

// writeLC runs the writer against stdout or the requested output file.
func writeLC(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path) //nolint:gosec // user-supplied output path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := write(f); err != nil {
		return err
	}
	fmt.Println(cli.FormatSuccess("Wrote " + path))
	return nil
}

func writeLightCurveCSV(w io.Writer, curve exoplanet.LightCurve) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"time", "flux", "flat_time", "flat_flux"}); err != nil {
		return err
	}
	// Raw and flattened series can differ in length; pad the short one.
	n := len(curve.Time)
	if len(curve.FlatTime) > n {
		n = len(curve.FlatTime)
	}
	for i := 0; i < n; i++ {
		rec := make([]string, 4)
		if i < len(curve.Time) {
			rec[0] = strconv.FormatFloat(curve.Time[i], 'g', -1, 64)
			rec[1] = strconv.FormatFloat(curve.Flux[i], 'g', -1, 64)
		}
		if i < len(curve.FlatTime) {
			rec[2] = strconv.FormatFloat(curve.FlatTime[i], 'g', -1, 64)
			rec[3] = strconv.FormatFloat(curve.FlatFlux[i], 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return cw.Error()
}

func printLightCurveSummary(q exoplanet.Query, curve exoplanet.LightCurve) error {
	summary, err := curve.Summarize()
	if err != nil {
		return fmt.Errorf("failed to summarize light curve: %w", err)
	}

	content := fmt.Sprintf("Samples:    %d\n", summary.Samples) +
		fmt.Sprintf("Span:       %.1f days\n", summary.SpanDays) +
		fmt.Sprintf("Median:     %.6f\n", summary.Median) +
		fmt.Sprintf("Std dev:    %.6f\n", summary.StdDev) +
		fmt.Sprintf("Min flux:   %.6f\n", summary.MinFlux) +
		fmt.Sprintf("Max depth:  %.0f ppm", summary.MaxDepth)

	title := fmt.Sprintf("%s (%s, window %d)", q.Target, q.Mission, q.WindowLength)
	fmt.Println(cli.RenderBox(title, content))
	return nil
}
