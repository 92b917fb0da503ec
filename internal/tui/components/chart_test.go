package components

import (
	"strings"
	"testing"

	"github.com/exodash/exodash/internal/exoplanet"
	"github.com/exodash/exodash/internal/tui/themes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartEmptyState(t *testing.T) {
	m := NewChartModel(themes.Default)
	assert.Contains(t, m.View(), "No light curve loaded")
}

func TestChartRendersBothPanels(t *testing.T) {
	m := NewChartModel(themes.Default)
	m.Resize(80, 24)
	m.SetCurve(exoplanet.LightCurve{
		Time:     []float64{0, 1, 2, 3},
		Flux:     []float64{1.0, 0.996, 1.0, 1.001},
		FlatTime: []float64{0, 1, 2, 3},
		FlatFlux: []float64{1.0, 0.997, 1.0, 1.0},
	})

	view := m.View()
	assert.Contains(t, view, "Raw flux")
	assert.Contains(t, view, "Flattened flux")
	assert.Contains(t, view, "samples")
	assert.Contains(t, view, "•")
}

func TestChartClear(t *testing.T) {
	m := NewChartModel(themes.Default)
	m.SetCurve(exoplanet.LightCurve{
		Time: []float64{0}, Flux: []float64{1},
		FlatTime: []float64{0}, FlatFlux: []float64{1},
	})
	m.Clear()
	assert.Contains(t, m.View(), "No light curve loaded")
}

func TestRenderSeriesGrid(t *testing.T) {
	out := renderSeries([]float64{0, 1, 2}, []float64{0, 1, 0}, 20, 5)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)

	// Extremes label the top and bottom rows
	assert.Contains(t, lines[0], "1.0000")
	assert.Contains(t, lines[4], "0.0000")
	assert.Contains(t, out, "•")
}

func TestRenderSeriesDegenerateInput(t *testing.T) {
	assert.Empty(t, renderSeries(nil, nil, 20, 5))
	assert.Empty(t, renderSeries([]float64{1}, []float64{1, 2}, 20, 5))
	assert.Empty(t, renderSeries([]float64{1}, []float64{1}, 1, 1))

	// Constant series must not divide by zero
	out := renderSeries([]float64{0, 1}, []float64{1, 1}, 10, 4)
	assert.NotEmpty(t, out)
}
