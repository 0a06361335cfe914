package core

import (
	"errors"
	"strings"
	"testing"
)

const sampleMap = `type octile
height 3
width 4
map
.@..
....
@@.@
`

func parseSample(t *testing.T, text string) *GridMap {
	t.Helper()
	m, err := ParseGridMap("sample", strings.NewReader(text))
	if err != nil {
		t.Fatalf("ParseGridMap error: %v", err)
	}
	return m
}

func TestParseGridMap(t *testing.T) {
	m := parseSample(t, sampleMap)

	if m.Height != 3 || m.Width != 4 {
		t.Errorf("size = %dx%d, want 3x4", m.Height, m.Width)
	}
	if !m.Passable(0, 0) {
		t.Error("(0,0) should be passable")
	}
	if m.Passable(0, 1) {
		t.Error("(0,1) should be an obstacle")
	}
	if m.Passable(-1, 0) || m.Passable(0, 4) || m.Passable(3, 0) {
		t.Error("out-of-bounds cells should be impassable")
	}

	want := []Cell{
		{0, 0}, {0, 2}, {0, 3},
		{1, 0}, {1, 1}, {1, 2}, {1, 3},
		{2, 2},
	}
	free := m.FreeCells()
	if len(free) != len(want) {
		t.Fatalf("free cells = %d, want %d", len(free), len(want))
	}
	for i, c := range want {
		if free[i] != c {
			t.Errorf("free[%d] = %v, want %v (raster order)", i, free[i], c)
		}
	}
}

func TestParseGridMapShortRow(t *testing.T) {
	m := parseSample(t, "type octile\nheight 2\nwidth 3\nmap\n.\n...\n")

	if !m.Passable(0, 0) {
		t.Error("(0,0) should be passable")
	}
	if m.Passable(0, 1) || m.Passable(0, 2) {
		t.Error("cells beyond a short row should be impassable")
	}
	if len(m.FreeCells()) != 4 {
		t.Errorf("free cells = %d, want 4", len(m.FreeCells()))
	}
}

func TestParseGridMapExtraColumns(t *testing.T) {
	// Characters past the declared width are ignored.
	m := parseSample(t, "type octile\nheight 1\nwidth 2\nmap\n..@@@\n")
	if len(m.FreeCells()) != 2 {
		t.Errorf("free cells = %d, want 2", len(m.FreeCells()))
	}
}

func TestParseGridMapErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"TooFewHeaderLines", "type octile\nheight 3\nwidth 4\n"},
		{"BadHeight", "type octile\nheight x\nwidth 4\nmap\n....\n"},
		{"MissingHeightValue", "type octile\nheight\nwidth 4\nmap\n....\n"},
		{"ZeroWidth", "type octile\nheight 1\nwidth 0\nmap\n....\n"},
		{"NegativeHeight", "type octile\nheight -2\nwidth 4\nmap\n....\n"},
		{"TooFewGridLines", "type octile\nheight 3\nwidth 4\nmap\n....\n....\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGridMap("bad", strings.NewReader(tt.text))
			if !errors.Is(err, ErrMapFormat) {
				t.Errorf("error = %v, want ErrMapFormat", err)
			}
		})
	}
}
