package exoplanet

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
)

// ErrEmptyTarget is returned when a request is attempted without a target.
var ErrEmptyTarget = errors.New("target must not be empty")

// LightCurve holds a raw and detrended brightness time series for one target.
// The producer guarantees Time/Flux and FlatTime/FlatFlux are paired.
type LightCurve struct {
	Time     []float64 `json:"time"`
	Flux     []float64 `json:"flux"`
	FlatTime []float64 `json:"flat_time"`
	FlatFlux []float64 `json:"flat_flux"`
}

// Empty reports whether the curve carries no samples.
func (lc LightCurve) Empty() bool {
	return len(lc.Time) == 0
}

// LightCurveSummary describes a flattened light curve in a few numbers.
type LightCurveSummary struct {
	Samples  int
	SpanDays float64
	Median   float64
	StdDev   float64
	MinFlux  float64
	MaxDepth float64 // deepest dip below the median, in ppm
}

// Summarize computes summary statistics over the flattened series.
func (lc LightCurve) Summarize() (LightCurveSummary, error) {
	if len(lc.FlatFlux) == 0 {
		return LightCurveSummary{}, errors.New("light curve has no flattened samples")
	}

	median, err := stats.Median(lc.FlatFlux)
	if err != nil {
		return LightCurveSummary{}, fmt.Errorf("failed to compute median: %w", err)
	}
	sd, err := stats.StandardDeviation(lc.FlatFlux)
	if err != nil {
		return LightCurveSummary{}, fmt.Errorf("failed to compute stddev: %w", err)
	}
	minFlux, err := stats.Min(lc.FlatFlux)
	if err != nil {
		return LightCurveSummary{}, fmt.Errorf("failed to compute min: %w", err)
	}

	summary := LightCurveSummary{
		Samples:  len(lc.FlatFlux),
		Median:   median,
		StdDev:   sd,
		MinFlux:  minFlux,
		MaxDepth: (median - minFlux) * 1e6,
	}
	if n := len(lc.FlatTime); n > 1 {
		summary.SpanDays = lc.FlatTime[n-1] - lc.FlatTime[0]
	}
	return summary, nil
}
