package tui

import "github.com/exodash/exodash/internal/exoplanet"

// Tab identifies one of the three dashboard views.
type Tab int

// Dashboard tabs.
const (
	TabPlot Tab = iota
	TabInteractive
	TabPredict
)

func (t Tab) String() string {
	switch t {
	case TabPlot:
		return "Plot"
	case TabInteractive:
		return "Interactive"
	case TabPredict:
		return "Predict"
	default:
		return "Unknown"
	}
}

// Async operation results. Each carries the sequence number of the request
// that produced it so stale responses can be discarded.

type lightCurveLoadedMsg struct {
	err   error
	curve exoplanet.LightCurve
	seq   uint64
}

type predictionLoadedMsg struct {
	err    error
	result exoplanet.PredictionResult
	seq    uint64
}

type plotSavedMsg struct {
	err  error
	path string
}

type historySavedMsg struct {
	err error
}
