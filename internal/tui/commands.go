package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/exodash/exodash/internal/backend"
	"github.com/exodash/exodash/internal/exoplanet"
	"github.com/exodash/exodash/internal/storage"
)

const requestTimeout = 30 * time.Second

// startLightCurveFetch marks the interactive tab loading and issues a fetch
// tagged with a fresh sequence number. Responses from earlier fetches are
// discarded in Update, so the latest issued request always wins.
func (m *Model) startLightCurveFetch() tea.Cmd {
	if m.backend == nil {
		return nil
	}

	m.lcSeq++
	m.loadingLC = true
	seq := m.lcSeq
	query := m.query

	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		curve, err := m.backend.FetchLightCurve(ctx, query)
		return lightCurveLoadedMsg{seq: seq, curve: curve, err: err}
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

// startPrediction marks the predict tab loading and either fabricates the
// local fixture or submits the query for scoring. Both paths resolve through
// predictionLoadedMsg so the loading flag can never stay stuck.
func (m *Model) startPrediction() tea.Cmd {
	m.predictSeq++
	m.loadingScore = true
	seq := m.predictSeq
	query := m.query
	threshold := m.predictPanel.Threshold()

	if m.predictPanel.MockMode() {
		return tea.Batch(func() tea.Msg {
			return predictionLoadedMsg{seq: seq, result: backend.MockPrediction(query, threshold)}
		}, m.spinner.Tick)
	}

	if m.backend == nil {
		m.loadingScore = false
		return nil
	}

	client := m.backend
	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := client.Predict(ctx, query, &threshold)
		return predictionLoadedMsg{seq: seq, result: result, err: err}
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

// savePlot downloads the rendered plot and writes it next to the binary.
func (m *Model) savePlot() tea.Cmd {
	if m.backend == nil {
		return nil
	}

	client := m.backend
	query := m.query

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		data, err := client.FetchPlot(ctx, query)
		if err != nil {
			return plotSavedMsg{err: err}
		}

		name := fmt.Sprintf("%s_wl%d.png",
			strings.ReplaceAll(query.Target, " ", "_"), query.WindowLength)
		if err := os.WriteFile(name, data, 0600); err != nil {
			return plotSavedMsg{err: fmt.Errorf("failed to write %s: %w", name, err)}
		}
		return plotSavedMsg{path: name}
	}
}

// saveHistory appends a scored result to the ledger, if one is configured.
func (m *Model) saveHistory(result exoplanet.PredictionResult) tea.Cmd {
	if m.history == nil {
		return nil
	}

	store := m.history
	threshold := m.predictPanel.Threshold()
	source := "backend"
	if m.predictPanel.MockMode() {
		source = "mock"
	}
	entry := storage.HistoryEntry{
		Target:     result.Target,
		Mission:    result.Mission,
		Author:     m.query.EffectiveAuthor(),
		ProbPlanet: result.ProbPlanet,
		Threshold:  threshold,
		Decision:   exoplanet.ComputeDecision(result.ProbPlanet, threshold),
		Source:     source,
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := store.SavePrediction(ctx, entry); err != nil {
			slog.Warn("Failed to record prediction history", "target", entry.Target, "error", err)
			return historySavedMsg{err: err}
		}
		return historySavedMsg{}
	}
}
