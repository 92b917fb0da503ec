package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.config.Theme.BorderedBox.Render(m.form.View()),
	}

	if m.errMsg != "" {
		sections = append(sections, m.config.Theme.StatusError.Render("✗ "+m.errMsg))
	} else if m.statusMsg != "" {
		sections = append(sections, m.config.Theme.StatusInfo.Render(m.statusMsg))
	}

	sections = append(sections, m.renderActiveTab())

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, m.renderFooter())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.config.Theme.Title.Render("exodash ✦ transit light-curve dashboard")

	tabs := make([]string, 0, 3)
	for _, tab := range []Tab{TabPlot, TabInteractive, TabPredict} {
		label := fmt.Sprintf("%d:%s", int(tab)+1, tab)
		if m.Loading(tab) {
			label += " " + m.spinner.View()
		}
		if tab == m.activeTab {
			tabs = append(tabs, m.config.Theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.config.Theme.TabInactive.Render(label))
		}
	}

	mode := m.config.Theme.Subtitle.Render("browsing · press e to edit query")
	if m.state == StateEditing {
		mode = m.config.Theme.StatusInfo.Render("editing · Enter applies, Esc returns")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Left, tabs...)+"  "+mode,
	)
}

func (m Model) renderActiveTab() string {
	switch m.activeTab {
	case TabPlot:
		return m.renderPlotTab()
	case TabInteractive:
		return m.renderInteractiveTab()
	case TabPredict:
		return m.renderPredictTab()
	default:
		return ""
	}
}

// renderPlotTab shows the derived plot URL. The URL is recomputed from the
// applied query on every render; no request happens until the user saves.
func (m Model) renderPlotTab() string {
	url := ""
	if m.backend != nil {
		url = m.backend.PlotURL(m.query)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.config.Theme.Subtitle.Render("Backend-rendered plot"),
		m.config.Theme.Code.Render(url),
		lipgloss.NewStyle().Foreground(m.config.Theme.Muted).
			Render("Press s to download the PNG, e to edit the query."),
	)
}

func (m Model) renderInteractiveTab() string {
	if m.loadingLC {
		return m.config.Theme.StatusPending.Render(m.spinner.View() + " Fetching light curve...")
	}
	return m.chart.View()
}

func (m Model) renderPredictTab() string {
	if m.loadingScore {
		return m.config.Theme.StatusPending.Render(m.spinner.View() + " Scoring target...")
	}
	return m.predictPanel.View()
}

func (m Model) renderFooter() string {
	hints := []string{
		"[Tab] switch view",
		"[e] edit query",
		"[r] refresh",
		"[?] help",
		"[q] quit",
	}
	if m.activeTab == TabPredict {
		hints = append(hints[:3], "[←→] threshold", "[x] mock", "[?] help", "[q] quit")
	}
	return lipgloss.NewStyle().Foreground(m.config.Theme.Muted).Render(strings.Join(hints, "  "))
}

func (m Model) renderHelp() string {
	rows := []string{
		"Tab / Shift+Tab   cycle tabs        1/2/3  jump to tab",
		"e or /            edit the query    Enter  apply and refetch",
		"r                 re-issue the active tab's request",
		"s                 save the rendered plot PNG (plot tab)",
		"←/→               move the decision threshold (predict tab)",
		"x                 toggle mock scoring",
		"q / Ctrl+C        quit",
	}
	return m.config.Theme.BorderedBox.Render(strings.Join(rows, "\n"))
}
