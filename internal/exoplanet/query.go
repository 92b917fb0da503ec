package exoplanet

import "strconv"

// Window length bounds for the detrending filter. The backend rejects values
// outside this range, so the client clamps before building a request.
const (
	MinWindowLength     = 51
	MaxWindowLength     = 5001
	DefaultWindowLength = 401
	WindowLengthStep    = 50
)

// Query captures everything the user controls about a light-curve request.
type Query struct {
	Target       string
	Author       string
	Mission      Mission
	WindowLength int
}

// DefaultQuery returns the query the dashboard starts with.
func DefaultQuery() Query {
	return Query{
		Target:       "Kepler-10",
		Mission:      MissionKepler,
		WindowLength: DefaultWindowLength,
	}
}

// ClampWindowLength forces v into [MinWindowLength, MaxWindowLength].
func ClampWindowLength(v int) int {
	if v < MinWindowLength {
		return MinWindowLength
	}
	if v > MaxWindowLength {
		return MaxWindowLength
	}
	return v
}

// ParseWindowLength converts user input into a usable window length.
// Non-numeric input falls back to the default; out-of-range values are
// clamped rather than rejected.
func ParseWindowLength(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return DefaultWindowLength
	}
	return ClampWindowLength(v)
}

// EffectiveAuthor returns the author to send with a request: empty unless
// the mission distinguishes pipeline authors.
func (q Query) EffectiveAuthor() string {
	if !q.Mission.HasAuthor() {
		return ""
	}
	return q.Author
}

// Validate reports whether the query can be sent to the backend.
func (q Query) Validate() error {
	if q.Target == "" {
		return ErrEmptyTarget
	}
	if _, err := ParseMission(string(q.Mission)); err != nil {
		return err
	}
	return nil
}
