package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/exodash/exodash/internal/exoplanet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndListPredictions(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	entries := []HistoryEntry{
		{Target: "Kepler-10", Mission: exoplanet.MissionKepler, ProbPlanet: 0.72, Threshold: 0.5, Decision: exoplanet.DecisionPlanetLike, Source: "backend"},
		{Target: "K2-18", Mission: exoplanet.MissionK2, ProbPlanet: 0.84, Threshold: 0.5, Decision: exoplanet.DecisionPlanetLike, Source: "mock"},
		{Target: "TOI-700", Mission: exoplanet.MissionTESS, Author: "SPOC", ProbPlanet: 0.31, Threshold: 0.5, Decision: exoplanet.DecisionNotPlanetLike, Source: "backend"},
	}
	for _, e := range entries {
		id, err := s.SavePrediction(ctx, e)
		require.NoError(t, err)
		assert.Positive(t, id)
	}

	recent, err := s.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	// Newest first
	assert.Equal(t, "TOI-700", recent[0].Target)
	assert.Equal(t, "SPOC", recent[0].Author)
	assert.Equal(t, exoplanet.DecisionNotPlanetLike, recent[0].Decision)
	assert.Equal(t, "Kepler-10", recent[2].Target)
	assert.False(t, recent[0].CreatedAt.IsZero())
}

func TestListRecent_Limit(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.SavePrediction(ctx, HistoryEntry{
			Target: "Kepler-10", Mission: exoplanet.MissionKepler,
			ProbPlanet: 0.5, Threshold: 0.5, Decision: exoplanet.DecisionPlanetLike, Source: "mock",
		})
		require.NoError(t, err)
	}

	recent, err := s.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestListByTarget(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for _, target := range []string{"Kepler-10", "K2-18", "Kepler-10"} {
		_, err := s.SavePrediction(ctx, HistoryEntry{
			Target: target, Mission: exoplanet.MissionKepler,
			ProbPlanet: 0.6, Threshold: 0.5, Decision: exoplanet.DecisionPlanetLike, Source: "backend",
		})
		require.NoError(t, err)
	}

	entries, err := s.ListByTarget(ctx, "Kepler-10")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSavePrediction_RejectsEmptyTarget(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.SavePrediction(context.Background(), HistoryEntry{Mission: exoplanet.MissionKepler})
	require.ErrorIs(t, err, exoplanet.ErrEmptyTarget)
}
