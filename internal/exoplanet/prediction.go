package exoplanet

// Decision labels a prediction relative to a probability threshold.
type Decision string

// Decision constants.
const (
	DecisionPlanetLike    Decision = "planet_like"
	DecisionNotPlanetLike Decision = "not_planet_like"
)

// DefaultThreshold is the starting decision boundary for prob_planet.
const DefaultThreshold = 0.5

// TopFeature is one row of the model's feature-impact breakdown.
type TopFeature struct {
	Name   string   `json:"name"`
	Value  *float64 `json:"value,omitempty"`
	Impact float64  `json:"impact"`
}

// PredictionResult is the backend's answer to a scoring request.
//
// The Decision field reflects the threshold the backend scored against; the
// dashboard recomputes its own label with ComputeDecision so that moving the
// local threshold updates the display without another request.
type PredictionResult struct {
	Diagnostics map[string]float64 `json:"diagnostics"`
	Target      string             `json:"target"`
	Mission     Mission            `json:"mission"`
	Decision    Decision           `json:"decision,omitempty"`
	Notes       []string           `json:"notes"`
	TopFeatures []TopFeature       `json:"top_features"`
	ProbPlanet  float64            `json:"prob_planet"`
	Threshold   *float64           `json:"threshold,omitempty"`
}

// ComputeDecision labels a probability against a threshold. The boundary is
// inclusive: prob == threshold is planet_like.
func ComputeDecision(prob, threshold float64) Decision {
	if prob >= threshold {
		return DecisionPlanetLike
	}
	return DecisionNotPlanetLike
}
