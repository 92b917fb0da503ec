package backend

import "github.com/exodash/exodash/internal/exoplanet"

func ptr(v float64) *float64 { return &v }

// MockPrediction fabricates a fixed prediction result locally, without any
// network call. It exists so the dashboard can be developed and demoed before
// the scoring endpoint is available. The content is fully deterministic:
// identical inputs always produce identical results.
func MockPrediction(q exoplanet.Query, threshold float64) exoplanet.PredictionResult {
	return exoplanet.PredictionResult{
		Target:     q.Target,
		Mission:    q.Mission,
		ProbPlanet: 0.84,
		Threshold:  ptr(threshold),
		Decision:   exoplanet.ComputeDecision(0.84, threshold),
		Diagnostics: map[string]float64{
			"snr":            18.3,
			"cdpp_ppm":       65,
			"odd_even_diff":  0.01,
			"secondary_snr":  0.2,
			"centroid_sigma": 0.7,
		},
		TopFeatures: []exoplanet.TopFeature{
			{Name: "depth_ppm", Value: ptr(520), Impact: 0.23},
			{Name: "duration_hr", Value: ptr(3.1), Impact: 0.17},
			{Name: "secondary_snr", Value: ptr(0.2), Impact: -0.10},
			{Name: "cdpp_ppm", Value: ptr(65), Impact: -0.12},
		},
		Notes: []string{"Mock scoring; enable the backend for real results"},
	}
}
