package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	NextTab        key.Binding
	PrevTab        key.Binding
	PlotTab        key.Binding
	InteractiveTab key.Binding
	PredictTab     key.Binding

	EditQuery key.Binding
	NextField key.Binding
	Apply     key.Binding
	Mission   key.Binding

	ThresholdUp   key.Binding
	ThresholdDown key.Binding
	ToggleMock    key.Binding
	Rescore       key.Binding
	SavePlot      key.Binding

	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "previous tab"),
		),
		PlotTab: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "plot tab"),
		),
		InteractiveTab: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "interactive tab"),
		),
		PredictTab: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "predict tab"),
		),

		EditQuery: key.NewBinding(
			key.WithKeys("e", "/"),
			key.WithHelp("e", "edit query"),
		),
		NextField: key.NewBinding(
			key.WithKeys("down", "up"),
			key.WithHelp("↑/↓", "switch field"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "apply / refetch"),
		),
		Mission: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "cycle mission"),
		),

		ThresholdUp: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "raise threshold"),
		),
		ThresholdDown: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "lower threshold"),
		),
		ToggleMock: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "toggle mock mode"),
		),
		Rescore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "re-score"),
		),
		SavePlot: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save plot PNG"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Apply, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.PlotTab, k.InteractiveTab, k.PredictTab},
		{k.EditQuery, k.NextField, k.Apply, k.Mission},
		{k.ThresholdUp, k.ThresholdDown, k.ToggleMock, k.Rescore, k.SavePlot},
		{k.Help, k.Quit},
	}
}
