// Package core defines the domain model for waypoint-augmented MAPF
// benchmark scenarios: the passability grid parsed from .map files and
// the tab-separated agent records of .scen files.
package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FreeChar is the map character denoting passable terrain.
const FreeChar = '.'

// Cell is a grid coordinate.
type Cell struct {
	Row, Col int
}

// GridMap is an immutable passability grid plus its precomputed free-cell
// index. It is built once per map file and shared by reference across every
// scenario matched to it; nothing mutates it after Parse.
type GridMap struct {
	Name   string
	Height int
	Width  int

	rows []string
	free []Cell
}

// ParseGridMap reads the benchmark .map format: a 4-line header
// (type, height H, width W, map) followed by H grid rows. Rows shorter than
// the declared width are accepted; the missing cells count as impassable.
func ParseGridMap(name string, r io.Reader) (*GridMap, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMapFormat, name, err)
	}

	if len(lines) < 4 {
		return nil, fmt.Errorf("%w: %s: insufficient header lines", ErrMapFormat, name)
	}
	height, err := headerValue(lines[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: bad height: %v", ErrMapFormat, name, err)
	}
	width, err := headerValue(lines[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: bad width: %v", ErrMapFormat, name, err)
	}
	if len(lines) < 4+height {
		return nil, fmt.Errorf("%w: %s: insufficient grid lines (have %d, need %d)",
			ErrMapFormat, name, len(lines)-4, height)
	}

	m := &GridMap{
		Name:   name,
		Height: height,
		Width:  width,
		rows:   lines[4 : 4+height],
	}
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			if m.Passable(r, c) {
				m.free = append(m.free, Cell{Row: r, Col: c})
			}
		}
	}
	return m, nil
}

// LoadGridMap parses the map file at path. The map name is the file stem.
func LoadGridMap(path string) (*GridMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMapFormat, err)
	}
	defer f.Close()
	return ParseGridMap(stem(path), f)
}

// headerValue parses the integer in the second field of a header line
// ("height 32" -> 32). The value must be positive.
func headerValue(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, fmt.Errorf("missing value in %q", line)
	}
	v, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("non-positive value %d", v)
	}
	return v, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// InBounds reports whether (row, col) lies within the grid.
func (m *GridMap) InBounds(row, col int) bool {
	return row >= 0 && row < m.Height && col >= 0 && col < m.Width
}

// Passable reports whether (row, col) is free terrain. Out-of-bounds
// coordinates and cells beyond a short row are impassable.
func (m *GridMap) Passable(row, col int) bool {
	if !m.InBounds(row, col) {
		return false
	}
	if col >= len(m.rows[row]) {
		return false
	}
	return m.rows[row][col] == FreeChar
}

// FreeCells returns all passable cells in raster (row-major) order.
// The returned slice is shared; callers must not modify it.
func (m *GridMap) FreeCells() []Cell {
	return m.free
}
