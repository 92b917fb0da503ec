package components

import (
	"testing"

	"github.com/exodash/exodash/internal/exoplanet"
	"github.com/exodash/exodash/internal/tui/themes"
	"github.com/stretchr/testify/assert"
)

func sampleResult() exoplanet.PredictionResult {
	v := 520.0
	return exoplanet.PredictionResult{
		Target:     "K2-18",
		Mission:    exoplanet.MissionK2,
		ProbPlanet: 0.84,
		Diagnostics: map[string]float64{
			"snr":      18.3,
			"cdpp_ppm": 65,
		},
		TopFeatures: []exoplanet.TopFeature{
			{Name: "depth_ppm", Value: &v, Impact: 0.23},
			{Name: "cdpp_ppm", Impact: -0.12},
		},
		Notes: []string{"Mock scoring; enable the backend for real results"},
	}
}

func TestPredictPanelEmptyState(t *testing.T) {
	m := NewPredictPanelModel(themes.Default, 0.5)
	assert.False(t, m.HasResult())
	assert.Contains(t, m.View(), "No prediction yet")
}

func TestPredictPanelDecisionTracksThreshold(t *testing.T) {
	m := NewPredictPanelModel(themes.Default, 0.5)
	m.SetResult(sampleResult())

	assert.Equal(t, exoplanet.DecisionPlanetLike, m.Decision())

	m.AdjustThreshold(0.4) // 0.9 > 0.84
	assert.Equal(t, exoplanet.DecisionNotPlanetLike, m.Decision())

	m.AdjustThreshold(-0.06) // back to 0.84: boundary is inclusive
	assert.InDelta(t, 0.84, m.Threshold(), 1e-9)
	assert.Equal(t, exoplanet.DecisionPlanetLike, m.Decision())
}

func TestPredictPanelThresholdBounds(t *testing.T) {
	m := NewPredictPanelModel(themes.Default, 0.5)

	m.AdjustThreshold(10)
	assert.InDelta(t, 1.0, m.Threshold(), 1e-9)

	m.AdjustThreshold(-10)
	assert.InDelta(t, 0.0, m.Threshold(), 1e-9)
}

func TestPredictPanelViewContent(t *testing.T) {
	m := NewPredictPanelModel(themes.Default, 0.5)
	m.SetResult(sampleResult())

	view := m.View()
	assert.Contains(t, view, "K2-18")
	assert.Contains(t, view, "prob_planet 0.840")
	assert.Contains(t, view, "planet_like")
	assert.Contains(t, view, "depth_ppm")
	assert.Contains(t, view, "snr=18.3")
	assert.Contains(t, view, "note:")
}

func TestPredictPanelClear(t *testing.T) {
	m := NewPredictPanelModel(themes.Default, 0.5)
	m.SetResult(sampleResult())
	m.Clear()

	assert.False(t, m.HasResult())
	assert.Empty(t, string(m.Decision()))
}

func TestPredictPanelMockModeHeader(t *testing.T) {
	m := NewPredictPanelModel(themes.Default, 0.5)
	assert.Contains(t, m.View(), "backend")

	m.SetMockMode(true)
	assert.Contains(t, m.View(), "mock")
}
