// Package algo implements the waypoint generation algorithms: grid
// reachability, start-position repair, and the hierarchical per-agent
// waypoint assignment with per-position collision resolution.
package algo

import (
	"encoding/binary"
	"hash/fnv"
)

// Seed derivation gives every agent (and every agent/position pair during
// collision resolution) its own pseudorandom stream keyed on the run seed,
// the agent id, and the scenario path. Derived streams keep the output
// independent of agent processing order and file iteration order; a single
// shared generator would not.

// agentSeed derives the Phase-A sampling seed for one agent.
func agentSeed(seed int64, agentID int, scenPath string) int64 {
	return deriveSeed(seed, agentID, scenPath, 0, false)
}

// positionSeed derives the Phase-B re-draw seed for one agent at one
// tier-position index.
func positionSeed(seed int64, agentID int, scenPath string, pos int) int64 {
	return deriveSeed(seed, agentID, scenPath, pos, true)
}

func deriveSeed(seed int64, agentID int, scenPath string, pos int, withPos bool) int64 {
	h := fnv.New64a()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(seed))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(agentID))
	h.Write(buf[:])
	h.Write([]byte(scenPath))
	if withPos {
		// Separator keeps (path, pos) encodings from colliding with a
		// path that happens to end in the same bytes.
		h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], uint64(pos))
		h.Write(buf[:])
	}
	return int64(h.Sum64())
}
