package mockserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/exodash/exodash/internal/exoplanet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	s := New(":0")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true}`, w.Body.String())
}

func TestLCTest(t *testing.T) {
	s := New(":0")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/lc-test?window_length=401", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var lc exoplanet.LightCurve
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lc))
	assert.Equal(t, int(timeSpan/cadence), len(lc.Time))
	assert.Equal(t, len(lc.Time), len(lc.Flux))
	assert.Equal(t, len(lc.FlatTime), len(lc.FlatFlux))

	// Flattened series should sit near 1.0
	for _, f := range lc.FlatFlux {
		assert.InDelta(t, 1.0, f, 0.05)
	}
}

func TestLCTest_Deterministic(t *testing.T) {
	s := New(":0")

	fetch := func() string {
		w := httptest.NewRecorder()
		s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/lc-test", nil))
		require.Equal(t, http.StatusOK, w.Code)
		return w.Body.String()
	}

	assert.Equal(t, fetch(), fetch())
}

func TestLCTarget_RejectsUnknownMission(t *testing.T) {
	s := New(":0")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/lc/Kepler-10?mission=Hubble", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Hubble")
}

func TestPlotTest_ReturnsPNG(t *testing.T) {
	s := New(":0")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/plot-test?window_length=401", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	// PNG magic bytes
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}))
}

func TestPredict(t *testing.T) {
	s := New(":0")

	body := bytes.NewBufferString(`{"target":"K2-18","mission":"K2","threshold":0.5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/predict", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var result exoplanet.PredictionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "K2-18", result.Target)
	assert.Equal(t, exoplanet.MissionK2, result.Mission)
	assert.GreaterOrEqual(t, result.ProbPlanet, 0.0)
	assert.LessOrEqual(t, result.ProbPlanet, 1.0)
	assert.Len(t, result.TopFeatures, 4)
	assert.NotEmpty(t, result.Notes)
}

func TestPredict_RejectsUnknownMission(t *testing.T) {
	s := New(":0")

	body := bytes.NewBufferString(`{"target":"X","mission":"Hubble"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/predict", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToyScore(t *testing.T) {
	score := toyScore(map[string]float64{
		"snr":           18.3,
		"cdpp_ppm":      65,
		"odd_even_diff": 0.01,
		"secondary_snr": 0.2,
	})
	assert.InDelta(t, 0.562, score, 1e-9)
}

func TestFlatten_WindowBounds(t *testing.T) {
	flux := make([]float64, 100)
	for i := range flux {
		flux[i] = 1.0
	}

	// Even windows are forced odd; oversized windows are bounded.
	for _, wl := range []int{2, 3, 50, 99, 500} {
		flat := flatten(flux, wl)
		require.Len(t, flat, len(flux))
		for _, f := range flat {
			assert.InDelta(t, 1.0, f, 1e-9)
		}
	}
}
