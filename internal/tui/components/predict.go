package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/exodash/exodash/internal/exoplanet"
	"github.com/exodash/exodash/internal/tui/themes"
)

// PredictPanelModel displays a prediction result against a locally held
// threshold. The decision label is always recomputed from the current
// threshold, never taken from the backend response.
type PredictPanelModel struct {
	theme     themes.Theme
	result    *exoplanet.PredictionResult
	threshold float64
	mockMode  bool
	width     int
}

// NewPredictPanelModel creates an empty panel.
func NewPredictPanelModel(theme themes.Theme, threshold float64) PredictPanelModel {
	return PredictPanelModel{theme: theme, threshold: threshold, width: 80}
}

// SetResult replaces the displayed result.
func (m *PredictPanelModel) SetResult(result exoplanet.PredictionResult) {
	m.result = &result
}

// Clear discards the displayed result.
func (m *PredictPanelModel) Clear() {
	m.result = nil
}

// HasResult reports whether a result is displayed.
func (m PredictPanelModel) HasResult() bool {
	return m.result != nil
}

// Threshold returns the local decision threshold.
func (m PredictPanelModel) Threshold() float64 {
	return m.threshold
}

// AdjustThreshold moves the local threshold by delta, bounded to [0, 1].
// The displayed decision updates immediately; no request is issued.
func (m *PredictPanelModel) AdjustThreshold(delta float64) {
	m.threshold += delta
	if m.threshold < 0 {
		m.threshold = 0
	}
	if m.threshold > 1 {
		m.threshold = 1
	}
}

// SetMockMode records whether results come from the local fixture.
func (m *PredictPanelModel) SetMockMode(enabled bool) {
	m.mockMode = enabled
}

// MockMode reports whether the local fixture path is active.
func (m PredictPanelModel) MockMode() bool {
	return m.mockMode
}

// Decision labels the displayed result against the local threshold.
func (m PredictPanelModel) Decision() exoplanet.Decision {
	if m.result == nil {
		return ""
	}
	return exoplanet.ComputeDecision(m.result.ProbPlanet, m.threshold)
}

// Resize updates the component size.
func (m *PredictPanelModel) Resize(width, _ int) {
	m.width = width
}

// View renders the panel.
func (m PredictPanelModel) View() string {
	mode := "backend"
	if m.mockMode {
		mode = "mock"
	}
	header := m.theme.Subtitle.Render(fmt.Sprintf("Scoring source: %s   threshold: %.2f  (←/→ to adjust, x to toggle mock, r to re-score)", mode, m.threshold))

	if m.result == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No prediction yet. Press r to score the current target."),
		)
	}

	r := *m.result
	decision := m.Decision()

	decisionStyle := m.theme.StatusSuccess
	if decision == exoplanet.DecisionNotPlanetLike {
		decisionStyle = m.theme.StatusError
	}

	sections := []string{
		header,
		"",
		m.theme.Title.Render(fmt.Sprintf("%s (%s)", r.Target, r.Mission)),
		fmt.Sprintf("%s %s   %s",
			m.theme.Bold.Render(fmt.Sprintf("prob_planet %.3f", r.ProbPlanet)),
			m.renderProbBar(r.ProbPlanet),
			decisionStyle.Render(string(decision))),
	}

	if len(r.TopFeatures) > 0 {
		sections = append(sections, "", m.theme.Subtitle.Render("Top features"))
		for _, f := range r.TopFeatures {
			sections = append(sections, m.renderFeature(f))
		}
	}

	if len(r.Diagnostics) > 0 {
		sections = append(sections, "", m.theme.Subtitle.Render("Diagnostics"))
		sections = append(sections, m.renderDiagnostics(r.Diagnostics))
	}

	for _, note := range r.Notes {
		sections = append(sections, m.theme.Italic.Render("note: "+note))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderProbBar draws the probability as a filled bar with the threshold
// position marked.
func (m PredictPanelModel) renderProbBar(prob float64) string {
	width := 30
	filled := int(float64(width) * prob)
	marker := int(float64(width-1) * m.threshold)

	cells := make([]rune, width)
	for i := range cells {
		if i < filled {
			cells[i] = '█'
		} else {
			cells[i] = '░'
		}
	}
	cells[marker] = '┃'

	style := m.theme.StatusSuccess
	if prob < m.threshold {
		style = m.theme.StatusWarning
	}
	return style.Render(string(cells))
}

func (m PredictPanelModel) renderFeature(f exoplanet.TopFeature) string {
	barWidth := 12
	filled := int(min(1.0, abs(f.Impact)) * float64(barWidth))
	bar := strings.Repeat("▪", filled)

	sign := "+"
	style := m.theme.StatusSuccess
	if f.Impact < 0 {
		sign = "-"
		style = m.theme.StatusError
	}

	value := ""
	if f.Value != nil {
		value = fmt.Sprintf(" (%.4g)", *f.Value)
	}

	return fmt.Sprintf("  %-16s%s %s%.2f %s",
		f.Name, value, sign, abs(f.Impact), style.Render(bar))
}

func (m PredictPanelModel) renderDiagnostics(diagnostics map[string]float64) string {
	names := make([]string, 0, len(diagnostics))
	for name := range diagnostics {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%.4g", name, diagnostics[name]))
	}
	return "  " + lipgloss.NewStyle().Foreground(m.theme.Muted).Render(strings.Join(parts, "   "))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
