package core

import "errors"

// Sentinel errors for the failure taxonomy. Map and scenario problems are
// reported per file and never abort the whole run by themselves; callers
// decide escalation.
var (
	// ErrMapFormat marks a malformed map header or grid.
	ErrMapFormat = errors.New("core: malformed map file")

	// ErrScenarioRead marks an unreadable scenario file.
	ErrScenarioRead = errors.New("core: scenario file unreadable")

	// ErrAgentParse marks an agent line whose coordinate fields do not parse.
	ErrAgentParse = errors.New("core: malformed agent record")

	// ErrInsufficientCells marks a map with fewer free cells than the
	// largest requested waypoint tier.
	ErrInsufficientCells = errors.New("core: not enough free cells")
)
