package algo

import "github.com/elektrokombinacija/mapf-waypoints/internal/core"

// RepairPosition corrects an agent start coordinate. The row and column are
// first clamped independently into map bounds; if the clamped cell is free
// it is returned as-is. Otherwise the free cell with minimal Manhattan
// distance to the clamped position wins, ties broken by raster order.
//
// The Manhattan-nearest cell may sit in a different connected component than
// the clamped position's surroundings. That is the historical repair policy
// and downstream outputs depend on it; do not switch to BFS-nearest.
//
// On a map with zero free cells the clamped, impassable position is returned
// with modified=true.
func RepairPosition(m *core.GridMap, row, col int) (fixed core.Cell, modified bool) {
	fixed = core.Cell{Row: clamp(row, m.Height), Col: clamp(col, m.Width)}
	modified = fixed.Row != row || fixed.Col != col

	if m.Passable(fixed.Row, fixed.Col) {
		return fixed, modified
	}

	free := m.FreeCells()
	if len(free) == 0 {
		return fixed, true
	}

	best := free[0]
	bestDist := manhattan(best, fixed)
	for _, c := range free[1:] {
		if d := manhattan(c, fixed); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, true
}

func clamp(v, size int) int {
	if v < 0 {
		return 0
	}
	if v >= size {
		return size - 1
	}
	return v
}

func manhattan(a, b core.Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
