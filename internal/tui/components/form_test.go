package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/exodash/exodash/internal/exoplanet"
	"github.com/exodash/exodash/internal/tui/themes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestForm() QueryFormModel {
	return NewQueryFormModel(exoplanet.DefaultQuery(), themes.Default)
}

func press(m QueryFormModel, key tea.KeyMsg) (QueryFormModel, tea.Cmd) {
	next, cmd := m.Update(key)
	return next, cmd
}

func TestFormDefaults(t *testing.T) {
	m := newTestForm()
	q := m.Query()

	assert.Equal(t, "Kepler-10", q.Target)
	assert.Equal(t, exoplanet.MissionKepler, q.Mission)
	assert.Equal(t, exoplanet.DefaultWindowLength, q.WindowLength)
	assert.Equal(t, FieldTarget, m.Focused())
}

func TestFormFocusCycles(t *testing.T) {
	m := newTestForm()

	down := tea.KeyMsg{Type: tea.KeyDown}
	for _, want := range []FormField{FieldMission, FieldAuthor, FieldWindow, FieldTarget} {
		m, _ = press(m, down)
		assert.Equal(t, want, m.Focused())
	}

	up := tea.KeyMsg{Type: tea.KeyUp}
	m, _ = press(m, up)
	assert.Equal(t, FieldWindow, m.Focused())
}

func TestFormMissionCycling(t *testing.T) {
	m := newTestForm()
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown}) // focus mission

	right := tea.KeyMsg{Type: tea.KeyRight}
	m, _ = press(m, right)
	assert.Equal(t, exoplanet.MissionK2, m.Query().Mission)
	m, _ = press(m, right)
	assert.Equal(t, exoplanet.MissionTESS, m.Query().Mission)
	m, _ = press(m, right)
	assert.Equal(t, exoplanet.MissionKepler, m.Query().Mission)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, exoplanet.MissionTESS, m.Query().Mission)
}

func TestFormTypingReachesFocusedInput(t *testing.T) {
	m := NewQueryFormModel(exoplanet.Query{Mission: exoplanet.MissionKepler, WindowLength: 401}, themes.Default)

	for _, r := range "K2-18" {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "K2-18", m.Query().Target)
}

func TestFormApplyEmitsClampedQuery(t *testing.T) {
	m := newTestForm()

	// Focus the window field and replace its value with an oversized one
	for i := 0; i < 3; i++ {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(t, FieldWindow, m.Focused())
	for i := 0; i < 5; i++ {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	for _, r := range "9999" {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	applied, ok := msg.(QueryAppliedMsg)
	require.True(t, ok)
	assert.Equal(t, exoplanet.MaxWindowLength, applied.Query.WindowLength)
}

func TestFormApplyDefaultsNonNumericWindow(t *testing.T) {
	m := newTestForm()

	for i := 0; i < 3; i++ {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	for i := 0; i < 5; i++ {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	for _, r := range "oops" {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	applied, ok := cmd().(QueryAppliedMsg)
	require.True(t, ok)
	assert.Equal(t, exoplanet.DefaultWindowLength, applied.Query.WindowLength)
}

func TestFormViewMentionsIgnoredAuthor(t *testing.T) {
	m := NewQueryFormModel(exoplanet.Query{
		Target:       "Kepler-10",
		Mission:      exoplanet.MissionKepler,
		Author:       "SPOC",
		WindowLength: 401,
	}, themes.Default)

	assert.Contains(t, m.View(), "ignored")
}
