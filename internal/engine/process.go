package engine

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/elektrokombinacija/mapf-waypoints/internal/algo"
	"github.com/elektrokombinacija/mapf-waypoints/internal/core"
)

// fileJob is one scenario file plus everything needed to waypoint it.
// seedPath is the scenario's path relative to the source root; deriving
// streams from it instead of the absolute path keeps outputs identical no
// matter where the tree is mounted.
type fileJob struct {
	m        *core.GridMap
	scenPath string
	seedPath string
	outPaths map[int]string
	tiers    []int
	seed     int64
}

// processFile runs the per-file pipeline: parse, repair, reachability,
// hierarchical assignment, and one output file per tier. Returns the number
// of agents processed and how many starts were repaired.
func processFile(logger *log.Logger, job fileJob) (agents, fixed int, err error) {
	scen, err := core.LoadScenario(job.scenPath)
	if err != nil {
		return 0, 0, err
	}

	maxTier := job.tiers[len(job.tiers)-1]

	// Identical (possibly repaired) starts share one BFS result.
	reachCache := make(map[core.Cell][]core.Cell)
	reachableFor := func(start core.Cell) []core.Cell {
		if cells, ok := reachCache[start]; ok {
			return cells
		}
		cells := algo.ReachableCells(job.m, start)
		reachCache[start] = cells
		return cells
	}

	var assignees []algo.Agent
	for i := range scen.Lines {
		ln := &scen.Lines[i]
		if ln.Err != nil {
			logger.Warn("could not parse agent", "agent", ln.Num, "err", ln.Err)
			continue
		}
		if ln.Agent == nil {
			continue
		}
		rec := ln.Agent

		origRow, origCol := rec.StartRow, rec.StartCol
		cell, modified := algo.RepairPosition(job.m, origRow, origCol)
		if modified {
			fixed++
			if !job.m.InBounds(origRow, origCol) {
				logger.Info("fixed out-of-bounds agent", "agent", rec.LineNum,
					"from", fmt.Sprintf("(%d,%d)", origCol, origRow),
					"to", fmt.Sprintf("(%d,%d)", cell.Col, cell.Row))
			} else {
				logger.Info("fixed agent on obstacle", "agent", rec.LineNum,
					"from", fmt.Sprintf("(%d,%d)", origCol, origRow),
					"to", fmt.Sprintf("(%d,%d)", cell.Col, cell.Row))
			}
			rec.SetStart(cell)
		}

		reachable := reachableFor(cell)
		if len(reachable) < maxTier {
			logger.Warn("insufficient reachable cells",
				"agent", rec.LineNum, "reachable", len(reachable), "need", maxTier)
		}
		assignees = append(assignees, algo.Agent{ID: rec.LineNum, Reachable: reachable})
		agents++
	}

	resolved := algo.AssignWaypoints(assignees, job.seed, job.seedPath, maxTier)

	for _, k := range job.tiers {
		if err := writeTier(scen, resolved, k, job.outPaths[k]); err != nil {
			return agents, fixed, err
		}
	}

	logger.Debug("processed scenario", "agents", agents, "fixed", fixed)
	return agents, fixed, nil
}

// writeTier emits one output file for waypoint count k. Agent lines get the
// first k entries of their resolved sequence appended; every other line is
// re-emitted exactly as read.
func writeTier(scen *core.Scenario, resolved map[int][]core.Cell, k int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write tier output: %w", err)
	}
	w := bufio.NewWriter(f)

	if scen.HasHeader {
		w.WriteString(scen.Header)
		w.WriteByte('\n')
	}
	for i := range scen.Lines {
		ln := &scen.Lines[i]
		if ln.Agent == nil {
			w.WriteString(ln.Raw)
			w.WriteByte('\n')
			continue
		}
		seq := resolved[ln.Agent.LineNum]
		w.WriteString(ln.Agent.Encode(seq[:min(k, len(seq))]))
		w.WriteByte('\n')
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write tier output: %w", err)
	}
	return f.Close()
}
