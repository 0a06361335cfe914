package algo

import (
	"testing"

	"github.com/elektrokombinacija/mapf-waypoints/internal/core"
)

func TestRepairIdempotent(t *testing.T) {
	m := buildMap(t,
		"...",
		".@.",
		"...",
	)
	cell, modified := RepairPosition(m, 0, 2)
	if modified {
		t.Error("free in-bounds position must not be modified")
	}
	if cell != (core.Cell{Row: 0, Col: 2}) {
		t.Errorf("cell = %v, want (0,2)", cell)
	}
}

func TestRepairClamp(t *testing.T) {
	m := buildMap(t,
		"...",
		".@.",
		"...",
	)
	tests := []struct {
		row, col int
		want     core.Cell
	}{
		{5, 5, core.Cell{Row: 2, Col: 2}},
		{-3, 1, core.Cell{Row: 0, Col: 1}},
		{1, -1, core.Cell{Row: 1, Col: 0}},
		{-1, 7, core.Cell{Row: 0, Col: 2}},
	}
	for _, tt := range tests {
		cell, modified := RepairPosition(m, tt.row, tt.col)
		if !modified {
			t.Errorf("RepairPosition(%d,%d): expected modification", tt.row, tt.col)
		}
		if cell != tt.want {
			t.Errorf("RepairPosition(%d,%d) = %v, want %v", tt.row, tt.col, cell, tt.want)
		}
	}
}

func TestRepairObstacleNearest(t *testing.T) {
	m := buildMap(t,
		".@.",
		"@@@",
		".@.",
	)
	// (1,1) is blocked; the four corners are all at Manhattan distance 2
	// and (0,0) comes first in raster order.
	cell, modified := RepairPosition(m, 1, 1)
	if !modified {
		t.Error("expected modification")
	}
	if cell != (core.Cell{Row: 0, Col: 0}) {
		t.Errorf("cell = %v, want raster-first tie winner (0,0)", cell)
	}
}

func TestRepairNoFreeCells(t *testing.T) {
	m := buildMap(t,
		"@@",
		"@@",
	)
	cell, modified := RepairPosition(m, 9, 9)
	if !modified {
		t.Error("expected modification")
	}
	if cell != (core.Cell{Row: 1, Col: 1}) {
		t.Errorf("cell = %v, want clamped (1,1)", cell)
	}
}
