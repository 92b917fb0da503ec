// Package exoplanet defines the core domain models used throughout the application.
package exoplanet

import "fmt"

// Mission identifies the space-telescope survey a target was observed by.
type Mission string

// Supported missions.
const (
	MissionKepler Mission = "Kepler"
	MissionK2     Mission = "K2"
	MissionTESS   Mission = "TESS"
)

// Missions lists all supported missions in display order.
var Missions = []Mission{MissionKepler, MissionK2, MissionTESS}

// ParseMission converts a string into a Mission, case-sensitively.
func ParseMission(s string) (Mission, error) {
	switch Mission(s) {
	case MissionKepler, MissionK2, MissionTESS:
		return Mission(s), nil
	default:
		return "", fmt.Errorf("unknown mission %q (expected Kepler, K2, or TESS)", s)
	}
}

// HasAuthor reports whether the author field is meaningful for this mission.
// Only TESS data products are distinguished by pipeline author.
func (m Mission) HasAuthor() bool {
	return m == MissionTESS
}
