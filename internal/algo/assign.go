package algo

import (
	"math/rand"
	"sort"

	"github.com/elektrokombinacija/mapf-waypoints/internal/core"
)

// Agent is one scenario agent as seen by the assigner: its stable id (the
// source line number) and its reachable cells in raster order.
type Agent struct {
	ID        int
	Reachable []core.Cell
}

// AssignWaypoints produces each agent's resolved waypoint sequence of up to
// maxTier cells. Tier outputs are plain prefixes of these sequences, which
// is what makes smaller tiers exact prefixes of larger ones.
//
// Phase A draws maxTier cells per agent without replacement from its
// reachable set under the agent's derived stream; agents with fewer than
// maxTier reachable cells keep their full set in raster order and end up
// with a shorter sequence.
//
// Phase B walks tier-positions 0..maxTier-1 and, within a position, agents
// in ascending id order. An agent keeps its Phase-A cell unless an earlier
// agent already claimed it at this position; then the agent's reachable set
// is shuffled under a position-specific stream and the first unclaimed cell
// wins. When every reachable cell is claimed the colliding cell is kept,
// which bounds the retry work on maps with fewer free cells than agents.
//
// The keyed order is part of the output contract: results are identical no
// matter how callers iterate files or parallelize around this function.
func AssignWaypoints(agents []Agent, seed int64, scenPath string, maxTier int) map[int][]core.Cell {
	resolved := make(map[int][]core.Cell, len(agents))

	// Phase A: per-agent candidate sequences.
	for _, a := range agents {
		resolved[a.ID] = sampleCandidates(a, seed, scenPath, maxTier)
	}

	// Phase B: per-position uniqueness, agents in ascending id order.
	ordered := make([]Agent, len(agents))
	copy(ordered, agents)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for pos := 0; pos < maxTier; pos++ {
		claimed := make(map[core.Cell]bool)
		for _, a := range ordered {
			seq := resolved[a.ID]
			if pos >= len(seq) {
				continue
			}
			cell := seq[pos]
			if claimed[cell] {
				if alt, ok := redraw(a, seed, scenPath, pos, claimed); ok {
					cell = alt
				}
			}
			seq[pos] = cell
			claimed[cell] = true
		}
	}
	return resolved
}

func sampleCandidates(a Agent, seed int64, scenPath string, maxTier int) []core.Cell {
	if maxTier == 0 || len(a.Reachable) == 0 {
		return nil
	}
	if len(a.Reachable) < maxTier {
		seq := make([]core.Cell, len(a.Reachable))
		copy(seq, a.Reachable)
		return seq
	}
	rng := rand.New(rand.NewSource(agentSeed(seed, a.ID, scenPath)))
	seq := make([]core.Cell, maxTier)
	for i, j := range rng.Perm(len(a.Reachable))[:maxTier] {
		seq[i] = a.Reachable[j]
	}
	return seq
}

// redraw picks a replacement cell for a collision at pos. Candidates keep
// their raster order before the shuffle so the draw depends only on the
// derived stream.
func redraw(a Agent, seed int64, scenPath string, pos int, claimed map[core.Cell]bool) (core.Cell, bool) {
	available := make([]core.Cell, 0, len(a.Reachable))
	for _, c := range a.Reachable {
		if !claimed[c] {
			available = append(available, c)
		}
	}
	if len(available) == 0 {
		return core.Cell{}, false
	}
	rng := rand.New(rand.NewSource(positionSeed(seed, a.ID, scenPath, pos)))
	rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	return available[0], true
}
