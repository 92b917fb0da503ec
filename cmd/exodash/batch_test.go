package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/exodash/exodash/internal/exoplanet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTargets(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "one target per line",
			content:  "Kepler-10\nKepler-22\nTOI-700\n",
			expected: []string{"Kepler-10", "Kepler-22", "TOI-700"},
		},
		{
			name:     "skips blanks and comments",
			content:  "# confirmed planets\nKepler-10\n\n  \n# candidates\nKIC 8462852\n",
			expected: []string{"Kepler-10", "KIC 8462852"},
		},
		{
			name:     "trims whitespace",
			content:  "  Kepler-10  \n\tTOI-700\n",
			expected: []string{"Kepler-10", "TOI-700"},
		},
		{
			name:     "empty file",
			content:  "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "targets.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			targets, err := readTargets(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, targets)
		})
	}
}

func TestReadTargets_MissingFile(t *testing.T) {
	_, err := readTargets(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestQueryFromFlags(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		mission      string
		author       string
		windowLength int
		wantErr      bool
		wantWindow   int
		wantMission  exoplanet.Mission
	}{
		{
			name:         "valid kepler query",
			target:       "Kepler-10",
			mission:      "Kepler",
			windowLength: 401,
			wantWindow:   401,
			wantMission:  exoplanet.MissionKepler,
		},
		{
			name:         "window clamped to minimum",
			target:       "Kepler-10",
			mission:      "Kepler",
			windowLength: 3,
			wantWindow:   exoplanet.MinWindowLength,
			wantMission:  exoplanet.MissionKepler,
		},
		{
			name:         "window clamped to maximum",
			target:       "TOI-700",
			mission:      "TESS",
			author:       "SPOC",
			windowLength: 99999,
			wantWindow:   exoplanet.MaxWindowLength,
			wantMission:  exoplanet.MissionTESS,
		},
		{
			name:         "unknown mission rejected",
			target:       "Kepler-10",
			mission:      "Hubble",
			windowLength: 401,
			wantErr:      true,
		},
		{
			name:         "empty target rejected",
			target:       "",
			mission:      "Kepler",
			windowLength: 401,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := queryFromFlags(tt.target, tt.mission, tt.author, tt.windowLength)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, q.Target)
			assert.Equal(t, tt.wantMission, q.Mission)
			assert.Equal(t, tt.wantWindow, q.WindowLength)
		})
	}
}
