package exoplanet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDecision(t *testing.T) {
	tests := []struct {
		name      string
		want      Decision
		prob      float64
		threshold float64
	}{
		{name: "clearly above", prob: 0.9, threshold: 0.5, want: DecisionPlanetLike},
		{name: "clearly below", prob: 0.1, threshold: 0.5, want: DecisionNotPlanetLike},
		{name: "boundary is inclusive", prob: 0.5, threshold: 0.5, want: DecisionPlanetLike},
		{name: "zero threshold accepts zero", prob: 0, threshold: 0, want: DecisionPlanetLike},
		{name: "unit threshold accepts unit probability", prob: 1, threshold: 1, want: DecisionPlanetLike},
		{name: "just below boundary", prob: 0.4999, threshold: 0.5, want: DecisionNotPlanetLike},
		{name: "spec example at default threshold", prob: 0.84, threshold: 0.5, want: DecisionPlanetLike},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDecision(tt.prob, tt.threshold))
		})
	}
}

func TestParseWindowLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "in range passes through", input: "401", want: 401},
		{name: "below minimum clamps up", input: "10", want: MinWindowLength},
		{name: "above maximum clamps down", input: "10000", want: MaxWindowLength},
		{name: "non-numeric falls back to default", input: "abc", want: DefaultWindowLength},
		{name: "empty falls back to default", input: "", want: DefaultWindowLength},
		{name: "minimum boundary", input: "51", want: 51},
		{name: "maximum boundary", input: "5001", want: 5001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseWindowLength(tt.input))
		})
	}
}

func TestParseMission(t *testing.T) {
	for _, m := range Missions {
		parsed, err := ParseMission(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseMission("Hubble")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Hubble")
}

func TestQueryEffectiveAuthor(t *testing.T) {
	q := Query{Target: "TOI-700", Mission: MissionTESS, Author: "SPOC", WindowLength: 401}
	assert.Equal(t, "SPOC", q.EffectiveAuthor())

	q.Mission = MissionKepler
	assert.Empty(t, q.EffectiveAuthor())
}

func TestQueryValidate(t *testing.T) {
	q := Query{Mission: MissionKepler, WindowLength: 401}
	require.ErrorIs(t, q.Validate(), ErrEmptyTarget)

	q.Target = "Kepler-10"
	require.NoError(t, q.Validate())

	q.Mission = "JWST"
	require.Error(t, q.Validate())
}

func TestLightCurveSummarize(t *testing.T) {
	lc := LightCurve{
		FlatTime: []float64{0, 1, 2, 3, 4},
		FlatFlux: []float64{1.0, 1.0, 0.996, 1.0, 1.0},
	}

	summary, err := lc.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Samples)
	assert.InDelta(t, 4.0, summary.SpanDays, 1e-9)
	assert.InDelta(t, 1.0, summary.Median, 1e-9)
	assert.InDelta(t, 0.996, summary.MinFlux, 1e-9)
	assert.InDelta(t, 4000, summary.MaxDepth, 1e-6)
}

func TestLightCurveSummarize_Empty(t *testing.T) {
	_, err := LightCurve{}.Summarize()
	require.Error(t, err)
	assert.True(t, LightCurve{}.Empty())
}
