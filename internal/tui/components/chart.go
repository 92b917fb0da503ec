package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/exodash/exodash/internal/exoplanet"
	"github.com/exodash/exodash/internal/tui/themes"
)

// ChartModel renders a light curve as a terminal scatter chart: the raw
// series stacked above the flattened one.
type ChartModel struct {
	theme  themes.Theme
	curve  exoplanet.LightCurve
	width  int
	height int
}

// NewChartModel creates an empty chart.
func NewChartModel(theme themes.Theme) ChartModel {
	return ChartModel{theme: theme, width: 80, height: 20}
}

// SetCurve replaces the displayed light curve.
func (m *ChartModel) SetCurve(lc exoplanet.LightCurve) {
	m.curve = lc
}

// Clear discards the displayed light curve.
func (m *ChartModel) Clear() {
	m.curve = exoplanet.LightCurve{}
}

// Resize updates the component size.
func (m *ChartModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// View renders both panels with a summary footer.
func (m ChartModel) View() string {
	if m.curve.Empty() {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).
			Render("No light curve loaded. Press Enter to fetch.")
	}

	panelHeight := max(4, (m.height-4)/2)
	chartWidth := max(20, m.width-10)

	sections := []string{
		m.theme.Subtitle.Render("Raw flux"),
		m.theme.ChartRaw.Render(renderSeries(m.curve.Time, m.curve.Flux, chartWidth, panelHeight)),
		m.theme.Subtitle.Render("Flattened flux"),
		m.theme.ChartFlat.Render(renderSeries(m.curve.FlatTime, m.curve.FlatFlux, chartWidth, panelHeight)),
	}

	if summary, err := m.curve.Summarize(); err == nil {
		sections = append(sections, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(
			fmt.Sprintf("%d samples over %.1f d   median %.4f   σ %.5f   max depth %.0f ppm",
				summary.Samples, summary.SpanDays, summary.Median, summary.StdDev, summary.MaxDepth)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSeries rasterizes one series onto a rune grid with min/max y labels.
func renderSeries(xs, ys []float64, width, height int) string {
	if len(xs) == 0 || len(xs) != len(ys) || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX = min(minX, xs[i])
		maxX = max(maxX, xs[i])
		minY = min(minY, ys[i])
		maxY = max(maxY, ys[i])
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}

	for i := range xs {
		col := int(float64(width-1) * (xs[i] - minX) / (maxX - minX))
		row := height - 1 - int(float64(height-1)*(ys[i]-minY)/(maxY-minY))
		grid[row][col] = '•'
	}

	lines := make([]string, height)
	for r := range grid {
		label := "        "
		if r == 0 {
			label = fmt.Sprintf("%8.4f", maxY)
		} else if r == height-1 {
			label = fmt.Sprintf("%8.4f", minY)
		}
		lines[r] = label + " ┤" + string(grid[r])
	}
	return strings.Join(lines, "\n")
}
