// Package tui implements the dashboard's view/request controller: a
// bubbletea model owning all UI state, translating user intent into backend
// requests and responses into renderable state.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/exodash/exodash/internal/exoplanet"
	"github.com/exodash/exodash/internal/storage"
	"github.com/exodash/exodash/internal/tui/components"
)

// Backend is the slice of the HTTP client the controller needs.
type Backend interface {
	PlotURL(q exoplanet.Query) string
	FetchLightCurve(ctx context.Context, q exoplanet.Query) (exoplanet.LightCurve, error)
	Predict(ctx context.Context, q exoplanet.Query, threshold *float64) (exoplanet.PredictionResult, error)
	FetchPlot(ctx context.Context, q exoplanet.Query) ([]byte, error)
}

// HistoryStore records scored results. Optional.
type HistoryStore interface {
	SavePrediction(ctx context.Context, entry storage.HistoryEntry) (int64, error)
}

// State distinguishes whether keys edit the form or drive the dashboard.
type State int

// Controller states.
const (
	StateBrowsing State = iota
	StateEditing
)

// Model holds the main TUI state.
type Model struct {
	backend      Backend
	history      HistoryStore
	config       Config
	keymap       KeyMap
	form         components.QueryFormModel
	chart        components.ChartModel
	predictPanel components.PredictPanelModel
	spinner      spinner.Model
	query        exoplanet.Query
	lightCurve   exoplanet.LightCurve
	errMsg       string
	statusMsg    string
	lcSeq        uint64
	predictSeq   uint64
	width        int
	height       int
	activeTab    Tab
	state        State
	loadingLC    bool
	loadingScore bool
	showHelp     bool
	quitting     bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	predictPanel := components.NewPredictPanelModel(cfg.Theme, cfg.Threshold)
	predictPanel.SetMockMode(cfg.MockMode)

	return Model{
		backend:      cfg.Backend,
		history:      cfg.History,
		config:       cfg,
		keymap:       DefaultKeyMap(),
		form:         components.NewQueryFormModel(cfg.Query, cfg.Theme),
		chart:        components.NewChartModel(cfg.Theme),
		predictPanel: predictPanel,
		spinner:      s,
		query:        cfg.Query,
		width:        cfg.Width,
		height:       cfg.Height,
		activeTab:    TabPlot,
		state:        StateEditing,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.spinner.Tick)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chart.Resize(m.width-4, m.height-14)
		m.predictPanel.Resize(m.width-4, m.height-14)
		return m, nil

	case components.QueryAppliedMsg:
		m.query = msg.Query
		m.state = StateBrowsing
		return m, m.refreshActiveTab()

	case lightCurveLoadedMsg:
		if msg.seq != m.lcSeq {
			// Stale response from a superseded request
			return m, nil
		}
		m.loadingLC = false
		if msg.err != nil {
			m.lightCurve = exoplanet.LightCurve{}
			m.chart.Clear()
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.lightCurve = msg.curve
		m.chart.SetCurve(msg.curve)
		m.errMsg = ""
		return m, nil

	case predictionLoadedMsg:
		if msg.seq != m.predictSeq {
			return m, nil
		}
		m.loadingScore = false
		if msg.err != nil {
			m.predictPanel.Clear()
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.predictPanel.SetResult(msg.result)
		m.errMsg = ""
		return m, m.saveHistory(msg.result)

	case plotSavedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.statusMsg = "Saved plot to " + msg.path
		m.errMsg = ""
		return m, nil

	case historySavedMsg:
		// Ledger failures are logged by the command, never shown as a banner
		return m, nil

	case spinner.TickMsg:
		if m.loadingLC || m.loadingScore {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// handleKey routes key presses by state: the form captures everything while
// editing, global shortcuts apply while browsing.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Force quit works everywhere
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.state == StateEditing {
		if msg.String() == "esc" {
			m.state = StateBrowsing
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.EditQuery):
		m.state = StateEditing
		return m, nil

	case key.Matches(msg, m.keymap.NextTab):
		return m.selectTab((m.activeTab + 1) % 3)

	case key.Matches(msg, m.keymap.PrevTab):
		return m.selectTab((m.activeTab + 2) % 3)

	case key.Matches(msg, m.keymap.PlotTab):
		return m.selectTab(TabPlot)

	case key.Matches(msg, m.keymap.InteractiveTab):
		return m.selectTab(TabInteractive)

	case key.Matches(msg, m.keymap.PredictTab):
		return m.selectTab(TabPredict)

	case key.Matches(msg, m.keymap.ToggleMock):
		m.predictPanel.SetMockMode(!m.predictPanel.MockMode())
		return m, nil

	case key.Matches(msg, m.keymap.Rescore):
		return m, m.refreshActiveTab()

	case key.Matches(msg, m.keymap.SavePlot):
		if m.activeTab == TabPlot {
			return m, m.savePlot()
		}
		return m, nil

	case key.Matches(msg, m.keymap.ThresholdDown):
		if m.activeTab == TabPredict {
			m.predictPanel.AdjustThreshold(-0.05)
		}
		return m, nil

	case key.Matches(msg, m.keymap.ThresholdUp):
		if m.activeTab == TabPredict {
			m.predictPanel.AdjustThreshold(0.05)
		}
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	return m, nil
}

// selectTab activates a tab. Selecting the interactive or predict tab
// triggers the corresponding fetch; the plot tab only re-derives its URL.
func (m Model) selectTab(tab Tab) (tea.Model, tea.Cmd) {
	m.activeTab = tab
	switch tab {
	case TabInteractive:
		return m, m.startLightCurveFetch()
	case TabPredict:
		return m, m.startPrediction()
	default:
		return m, nil
	}
}

// refreshActiveTab re-issues the active tab's request.
func (m *Model) refreshActiveTab() tea.Cmd {
	switch m.activeTab {
	case TabInteractive:
		return m.startLightCurveFetch()
	case TabPredict:
		return m.startPrediction()
	default:
		return nil
	}
}

// ActiveTab returns the currently selected tab.
func (m Model) ActiveTab() Tab {
	return m.activeTab
}

// Loading reports whether the given tab has an outstanding request.
func (m Model) Loading(tab Tab) bool {
	switch tab {
	case TabInteractive:
		return m.loadingLC
	case TabPredict:
		return m.loadingScore
	default:
		return false
	}
}

// ErrorMessage returns the current error banner text, empty when clear.
func (m Model) ErrorMessage() string {
	return m.errMsg
}

// LightCurve returns the loaded light curve, empty when absent or cleared.
func (m Model) LightCurve() exoplanet.LightCurve {
	return m.lightCurve
}

// Query returns the last applied query.
func (m Model) Query() exoplanet.Query {
	return m.query
}

// Decision returns the locally computed decision for the displayed result.
func (m Model) Decision() exoplanet.Decision {
	return m.predictPanel.Decision()
}

// Threshold returns the local decision threshold.
func (m Model) Threshold() float64 {
	return m.predictPanel.Threshold()
}

// MockMode reports whether predictions use the local fixture.
func (m Model) MockMode() bool {
	return m.predictPanel.MockMode()
}

// HasPrediction reports whether a prediction result is displayed.
func (m Model) HasPrediction() bool {
	return m.predictPanel.HasResult()
}
