// Package main generates synthetic benchmark inputs for the waypoint
// pipeline: a random obstacle map plus a directory of scenario files in the
// standard tab-separated format. Deterministic for a given seed.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// params defines generation parameters.
type params struct {
	Seed      int64
	Width     int
	Height    int
	Obstacles float64 // fraction of cells blocked
	Agents    int
	Scens     int
	Name      string
}

// generateMap builds the grid rows. Obstacle placement is uniform; a run
// with a high obstacle fraction can produce disconnected components, which
// is useful for exercising reachability-restricted sampling.
func generateMap(p params, rng *rand.Rand) []string {
	rows := make([]string, p.Height)
	for y := 0; y < p.Height; y++ {
		var b strings.Builder
		for x := 0; x < p.Width; x++ {
			if rng.Float64() < p.Obstacles {
				b.WriteByte('@')
			} else {
				b.WriteByte('.')
			}
		}
		rows[y] = b.String()
	}
	return rows
}

func writeMap(path string, p params, rows []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "type octile")
	fmt.Fprintf(w, "height %d\n", p.Height)
	fmt.Fprintf(w, "width %d\n", p.Width)
	fmt.Fprintln(w, "map")
	for _, row := range rows {
		fmt.Fprintln(w, row)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeScen emits one scenario file: a version header plus one 9-field
// agent line per agent. Start and goal cells are drawn uniformly over the
// whole grid, so some starts land on obstacles and exercise the start
// repair downstream.
func writeScen(path string, p params, rows []string, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "version 1")
	for i := 0; i < p.Agents; i++ {
		sx, sy := rng.Intn(p.Width), rng.Intn(p.Height)
		gx, gy := rng.Intn(p.Width), rng.Intn(p.Height)
		dist := float64(abs(sx-gx) + abs(sy-gy))
		fmt.Fprintf(w, "%d\t%s.map\t%d\t%d\t%d\t%d\t%d\t%d\t%.8f\n",
			i, p.Name, p.Width, p.Height, sx, sy, gx, gy, dist)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func main() {
	var p params
	var outDir string

	flag.StringVar(&outDir, "out", "testdata", "output directory")
	flag.Int64Var(&p.Seed, "seed", 42, "random seed")
	flag.IntVar(&p.Width, "width", 32, "map width")
	flag.IntVar(&p.Height, "height", 32, "map height")
	flag.Float64Var(&p.Obstacles, "obstacles", 0.2, "obstacle fraction")
	flag.IntVar(&p.Agents, "agents", 25, "agents per scenario file")
	flag.IntVar(&p.Scens, "scens", 5, "scenario files to generate")
	flag.StringVar(&p.Name, "name", "", "map name (default derived from size and seed)")
	flag.Parse()

	if p.Name == "" {
		p.Name = fmt.Sprintf("random_%dx%d_%d", p.Width, p.Height, p.Seed)
	}

	rng := rand.New(rand.NewSource(p.Seed))
	rows := generateMap(p, rng)

	mapsDir := filepath.Join(outDir, "maps")
	scenDir := filepath.Join(outDir, "scen", p.Name)
	for _, dir := range []string{mapsDir, scenDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	mapPath := filepath.Join(mapsDir, p.Name+".map")
	if err := writeMap(mapPath, p, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing map: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%dx%d, %.0f%% obstacles)\n", mapPath, p.Height, p.Width, p.Obstacles*100)

	for i := 0; i < p.Scens; i++ {
		scenPath := filepath.Join(scenDir, fmt.Sprintf("%s-even-%d.scen", p.Name, i+1))
		if err := writeScen(scenPath, p, rows, rng); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing scenario: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d agents)\n", scenPath, p.Agents)
	}
}
