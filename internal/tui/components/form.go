// Package components holds the dashboard's focusable sub-models.
package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/exodash/exodash/internal/exoplanet"
	"github.com/exodash/exodash/internal/tui/themes"
)

// FormField identifies one row of the query form.
type FormField int

// Form fields in focus order.
const (
	FieldTarget FormField = iota
	FieldMission
	FieldAuthor
	FieldWindow
	fieldCount
)

// QueryAppliedMsg is emitted when the user confirms the form.
type QueryAppliedMsg struct {
	Query exoplanet.Query
}

// QueryFormModel manages the target/mission/author/window inputs.
type QueryFormModel struct {
	theme        themes.Theme
	targetInput  textinput.Model
	authorInput  textinput.Model
	windowInput  textinput.Model
	missionIndex int
	focused      FormField
	width        int
}

// NewQueryFormModel creates a form pre-filled from a query.
func NewQueryFormModel(q exoplanet.Query, theme themes.Theme) QueryFormModel {
	target := textinput.New()
	target.Placeholder = "e.g. Kepler-10"
	target.CharLimit = 40
	target.SetValue(q.Target)
	target.Focus()

	author := textinput.New()
	author.Placeholder = "e.g. SPOC (TESS only)"
	author.CharLimit = 20
	author.SetValue(q.Author)

	window := textinput.New()
	window.Placeholder = strconv.Itoa(exoplanet.DefaultWindowLength)
	window.CharLimit = 5
	window.SetValue(strconv.Itoa(q.WindowLength))

	missionIndex := 0
	for i, m := range exoplanet.Missions {
		if m == q.Mission {
			missionIndex = i
		}
	}

	return QueryFormModel{
		theme:        theme,
		targetInput:  target,
		authorInput:  author,
		windowInput:  window,
		missionIndex: missionIndex,
	}
}

// Query assembles the current form contents into a Query, clamping the
// window length and defaulting it when the input is not numeric.
func (m QueryFormModel) Query() exoplanet.Query {
	return exoplanet.Query{
		Target:       strings.TrimSpace(m.targetInput.Value()),
		Mission:      exoplanet.Missions[m.missionIndex],
		Author:       strings.TrimSpace(m.authorInput.Value()),
		WindowLength: exoplanet.ParseWindowLength(strings.TrimSpace(m.windowInput.Value())),
	}
}

// Focused returns the currently focused field.
func (m QueryFormModel) Focused() FormField {
	return m.focused
}

// Update handles messages.
func (m QueryFormModel) Update(msg tea.Msg) (QueryFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "down":
		m.setFocus((m.focused + 1) % fieldCount)
		return m, nil

	case "up":
		m.setFocus((m.focused + fieldCount - 1) % fieldCount)
		return m, nil

	case "enter":
		return m, m.apply()

	case "left", "right":
		if m.focused == FieldMission {
			step := 1
			if keyMsg.String() == "left" {
				step = len(exoplanet.Missions) - 1
			}
			m.missionIndex = (m.missionIndex + step) % len(exoplanet.Missions)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focused {
	case FieldTarget:
		m.targetInput, cmd = m.targetInput.Update(msg)
	case FieldAuthor:
		m.authorInput, cmd = m.authorInput.Update(msg)
	case FieldWindow:
		m.windowInput, cmd = m.windowInput.Update(msg)
	}
	return m, cmd
}

func (m *QueryFormModel) setFocus(f FormField) {
	m.focused = f
	m.targetInput.Blur()
	m.authorInput.Blur()
	m.windowInput.Blur()

	switch f {
	case FieldTarget:
		m.targetInput.Focus()
	case FieldAuthor:
		m.authorInput.Focus()
	case FieldWindow:
		m.windowInput.Focus()
	}
}

// apply normalizes the window input and emits the assembled query.
func (m *QueryFormModel) apply() tea.Cmd {
	q := m.Query()
	m.windowInput.SetValue(strconv.Itoa(q.WindowLength))
	return func() tea.Msg {
		return QueryAppliedMsg{Query: q}
	}
}

// View renders the form.
func (m QueryFormModel) View() string {
	mission := exoplanet.Missions[m.missionIndex]

	rows := []string{
		m.renderRow(FieldTarget, "Target", m.targetInput.View()),
		m.renderRow(FieldMission, "Mission", m.renderMissionSelector()),
		m.renderRow(FieldAuthor, "Author", m.authorInput.View()),
		m.renderRow(FieldWindow, "Window", m.windowInput.View()),
	}

	if !mission.HasAuthor() && strings.TrimSpace(m.authorInput.Value()) != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(m.theme.Muted).
			Render(fmt.Sprintf("  author is ignored for %s", mission)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m QueryFormModel) renderRow(f FormField, label, value string) string {
	prefix := "  "
	labelStyle := m.theme.Subtitle
	if f == m.focused {
		prefix = lipgloss.NewStyle().Foreground(m.theme.Primary).Render("> ")
		labelStyle = m.theme.Bold
	}
	return prefix + labelStyle.Render(fmt.Sprintf("%-8s", label)) + value
}

func (m QueryFormModel) renderMissionSelector() string {
	var parts []string
	for i, mission := range exoplanet.Missions {
		label := fmt.Sprintf(" %s ", mission)
		if i == m.missionIndex {
			parts = append(parts, m.theme.Selected.Render(label))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(label))
		}
	}
	hint := ""
	if m.focused == FieldMission {
		hint = lipgloss.NewStyle().Foreground(m.theme.Muted).Render("  ←/→ to change")
	}
	return strings.Join(parts, " ") + hint
}
