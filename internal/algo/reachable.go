package algo

import "github.com/elektrokombinacija/mapf-waypoints/internal/core"

// neighbor offsets for 4-connected movement.
var directions = [4]core.Cell{
	{Row: 0, Col: 1},
	{Row: 0, Col: -1},
	{Row: 1, Col: 0},
	{Row: -1, Col: 0},
}

// Reachable returns the set of cells connected to start by a path of
// adjacent free cells, with 4-directional movement. If start is out of
// bounds or impassable the result is empty. Pure function of (m, start).
func Reachable(m *core.GridMap, start core.Cell) map[core.Cell]bool {
	visited := make(map[core.Cell]bool)
	if !m.Passable(start.Row, start.Col) {
		return visited
	}

	queue := []core.Cell{start}
	visited[start] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range directions {
			next := core.Cell{Row: cur.Row + d.Row, Col: cur.Col + d.Col}
			if visited[next] || !m.Passable(next.Row, next.Col) {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return visited
}

// ReachableCells returns the reachable set as a list in raster order, by
// filtering the map's free-cell index. This is the enumeration order the
// assigner samples from.
func ReachableCells(m *core.GridMap, start core.Cell) []core.Cell {
	visited := Reachable(m, start)
	if len(visited) == 0 {
		return nil
	}
	cells := make([]core.Cell, 0, len(visited))
	for _, c := range m.FreeCells() {
		if visited[c] {
			cells = append(cells, c)
		}
	}
	return cells
}

// ComponentCount returns the number of 4-connected components among the
// map's free cells.
func ComponentCount(m *core.GridMap) int {
	seen := make(map[core.Cell]bool)
	count := 0
	for _, c := range m.FreeCells() {
		if seen[c] {
			continue
		}
		count++
		for cell := range Reachable(m, c) {
			seen[cell] = true
		}
	}
	return count
}
