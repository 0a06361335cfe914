package algo

import (
	"fmt"
	"strings"
	"testing"

	"github.com/elektrokombinacija/mapf-waypoints/internal/core"
)

// buildMap parses grid rows into a GridMap. Width comes from the first row.
func buildMap(t *testing.T, rows ...string) *core.GridMap {
	t.Helper()
	text := fmt.Sprintf("type octile\nheight %d\nwidth %d\nmap\n%s\n",
		len(rows), len(rows[0]), strings.Join(rows, "\n"))
	m, err := core.ParseGridMap("test", strings.NewReader(text))
	if err != nil {
		t.Fatalf("ParseGridMap error: %v", err)
	}
	return m
}

func TestReachableBlockedStart(t *testing.T) {
	m := buildMap(t,
		"..@",
		".@.",
		"@..",
	)
	if got := Reachable(m, core.Cell{Row: 0, Col: 2}); len(got) != 0 {
		t.Errorf("blocked start: got %d cells, want empty", len(got))
	}
	if got := Reachable(m, core.Cell{Row: -1, Col: 0}); len(got) != 0 {
		t.Errorf("out-of-bounds start: got %d cells, want empty", len(got))
	}
	if got := Reachable(m, core.Cell{Row: 5, Col: 5}); len(got) != 0 {
		t.Errorf("out-of-bounds start: got %d cells, want empty", len(got))
	}
}

func TestReachableComponents(t *testing.T) {
	// The diagonal wall splits free cells into two components; movement is
	// 4-directional, so the diagonal does not connect them.
	m := buildMap(t,
		"..@",
		".@.",
		"@..",
	)

	upperLeft := Reachable(m, core.Cell{Row: 0, Col: 0})
	if len(upperLeft) != 3 {
		t.Errorf("upper-left component = %d cells, want 3", len(upperLeft))
	}
	lowerRight := Reachable(m, core.Cell{Row: 2, Col: 2})
	if len(lowerRight) != 3 {
		t.Errorf("lower-right component = %d cells, want 3", len(lowerRight))
	}
	for c := range upperLeft {
		if lowerRight[c] {
			t.Errorf("cell %v in both components", c)
		}
	}

	if got := ComponentCount(m); got != 2 {
		t.Errorf("ComponentCount = %d, want 2", got)
	}
}

func TestReachableSymmetry(t *testing.T) {
	m := buildMap(t,
		"....",
		".@@.",
		"..@.",
		"@...",
	)
	free := m.FreeCells()
	for _, a := range free {
		ra := Reachable(m, a)
		for _, b := range free {
			rb := Reachable(m, b)
			if ra[b] != rb[a] {
				t.Errorf("symmetry violated for %v and %v", a, b)
			}
		}
	}
}

func TestReachableCellsRasterOrder(t *testing.T) {
	m := buildMap(t,
		"..@",
		".@.",
		"@..",
	)
	cells := ReachableCells(m, core.Cell{Row: 0, Col: 0})
	want := []core.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}}
	if len(cells) != len(want) {
		t.Fatalf("cells = %v, want %v", cells, want)
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cells[%d] = %v, want %v", i, cells[i], want[i])
		}
	}
}
