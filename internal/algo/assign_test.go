package algo

import (
	"reflect"
	"testing"

	"github.com/elektrokombinacija/mapf-waypoints/internal/core"
)

func openAgents(m *core.GridMap, ids ...int) []Agent {
	var agents []Agent
	for _, id := range ids {
		agents = append(agents, Agent{ID: id, Reachable: ReachableCells(m, m.FreeCells()[0])})
	}
	return agents
}

func TestAssignDeterministic(t *testing.T) {
	m := buildMap(t,
		".....",
		".@@..",
		".....",
		"..@..",
	)
	agents := openAgents(m, 1, 2, 3)

	a := AssignWaypoints(agents, 7, "scen/maze-1.scen", 4)
	b := AssignWaypoints(agents, 7, "scen/maze-1.scen", 4)
	if !reflect.DeepEqual(a, b) {
		t.Error("same inputs must produce identical assignments")
	}

	c := AssignWaypoints(agents, 8, "scen/maze-1.scen", 4)
	if reflect.DeepEqual(a, c) {
		t.Error("different seed should change at least one assignment")
	}

	d := AssignWaypoints(agents, 7, "scen/maze-2.scen", 4)
	if reflect.DeepEqual(a, d) {
		t.Error("different scenario path should change at least one assignment")
	}
}

func TestAssignOrderInsensitive(t *testing.T) {
	m := buildMap(t,
		"....",
		"....",
	)
	forward := openAgents(m, 1, 2, 3)
	reversed := openAgents(m, 3, 2, 1)

	a := AssignWaypoints(forward, 0, "s.scen", 3)
	b := AssignWaypoints(reversed, 0, "s.scen", 3)
	if !reflect.DeepEqual(a, b) {
		t.Error("input slice order must not affect assignments")
	}
}

func TestAssignWithinReachable(t *testing.T) {
	m := buildMap(t,
		"..@.",
		".@@.",
		"..@.",
	)
	start := core.Cell{Row: 0, Col: 0}
	reach := ReachableCells(m, start)
	member := make(map[core.Cell]bool)
	for _, c := range reach {
		member[c] = true
	}

	resolved := AssignWaypoints([]Agent{{ID: 1, Reachable: reach}}, 0, "s.scen", 3)
	for _, wp := range resolved[1] {
		if !member[wp] {
			t.Errorf("waypoint %v outside reachable set", wp)
		}
	}
}

func TestAssignPositionUniqueness(t *testing.T) {
	m := buildMap(t,
		"......",
		"......",
		"......",
	)
	agents := openAgents(m, 1, 2, 3, 4, 5)

	maxTier := 4
	resolved := AssignWaypoints(agents, 3, "s.scen", maxTier)
	for pos := 0; pos < maxTier; pos++ {
		seen := make(map[core.Cell]int)
		for _, a := range agents {
			wp := resolved[a.ID][pos]
			if prev, dup := seen[wp]; dup {
				t.Errorf("position %d: agents %d and %d share cell %v", pos, prev, a.ID, wp)
			}
			seen[wp] = a.ID
		}
	}
}

func TestAssignInsufficientReachable(t *testing.T) {
	m := buildMap(t,
		"..@@@@",
		"@@@@@@",
	)
	reach := ReachableCells(m, core.Cell{Row: 0, Col: 0})
	if len(reach) != 2 {
		t.Fatalf("reachable = %d, want 2", len(reach))
	}

	resolved := AssignWaypoints([]Agent{{ID: 1, Reachable: reach}}, 0, "s.scen", 8)
	// Short reachable sets keep raster enumeration order, no repetition.
	if !reflect.DeepEqual(resolved[1], reach) {
		t.Errorf("resolved = %v, want full reachable set %v", resolved[1], reach)
	}
}

func TestAssignCollisionFallback(t *testing.T) {
	m := buildMap(t,
		".@",
		"@@",
	)
	reach := ReachableCells(m, core.Cell{Row: 0, Col: 0})
	agents := []Agent{
		{ID: 1, Reachable: reach},
		{ID: 2, Reachable: reach},
	}

	resolved := AssignWaypoints(agents, 0, "s.scen", 1)
	only := core.Cell{Row: 0, Col: 0}
	if resolved[1][0] != only || resolved[2][0] != only {
		t.Errorf("both agents must fall back to the only free cell, got %v and %v",
			resolved[1], resolved[2])
	}
}

func TestAssignZeroTier(t *testing.T) {
	m := buildMap(t, "..")
	agents := openAgents(m, 1)
	resolved := AssignWaypoints(agents, 0, "s.scen", 0)
	if len(resolved[1]) != 0 {
		t.Errorf("maxTier 0 should yield empty sequences, got %v", resolved[1])
	}
}

func TestSeedDerivation(t *testing.T) {
	base := agentSeed(1, 2, "a.scen")
	if base != agentSeed(1, 2, "a.scen") {
		t.Error("agentSeed must be deterministic")
	}
	if base == agentSeed(1, 3, "a.scen") {
		t.Error("different agents must get different streams")
	}
	if base == agentSeed(2, 2, "a.scen") {
		t.Error("different run seeds must get different streams")
	}
	if base == agentSeed(1, 2, "b.scen") {
		t.Error("different paths must get different streams")
	}
	if base == positionSeed(1, 2, "a.scen", 0) {
		t.Error("position streams must differ from the agent stream")
	}
	if positionSeed(1, 2, "a.scen", 0) == positionSeed(1, 2, "a.scen", 1) {
		t.Error("different positions must get different streams")
	}
}
