// Package engine runs the waypoint generation pipeline: map discovery,
// map/scenario pairing, and per-file processing with one output file per
// requested waypoint tier.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/elektrokombinacija/mapf-waypoints/internal/core"
)

// DefaultTiers is the tier list used when no explicit count is requested.
var DefaultTiers = []int{0, 1, 2, 4, 8, 16, 24, 32}

// Options configures a generation run.
type Options struct {
	MapsDir string
	SrcDir  string
	DstDir  string
	Tiers   []int
	Seed    int64
	Workers int
	// Legacy keeps the original directory layout (dst/<map>/<scen>) used by
	// single-tier runs instead of dst/<map>_<k>wp/<scen>.
	Legacy bool
	Logger *log.Logger
}

// Stats aggregates run totals.
type Stats struct {
	mu           sync.Mutex
	MapsLoaded   int
	FilesWritten int
	Agents       int
	Fixed        int
}

func (s *Stats) add(files, agents, fixed int) {
	s.mu.Lock()
	s.FilesWritten += files
	s.Agents += agents
	s.Fixed += fixed
	s.mu.Unlock()
}

// Run executes the full pipeline. Missing directories, zero valid maps, and
// a matched map with fewer free cells than the largest tier are fatal;
// everything else is a per-file or per-agent diagnostic.
func Run(ctx context.Context, opts Options) (*Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if len(opts.Tiers) == 0 {
		opts.Tiers = DefaultTiers
	}
	tiers := append([]int(nil), opts.Tiers...)
	sort.Ints(tiers)
	maxTier := tiers[len(tiers)-1]

	if _, err := os.Stat(opts.MapsDir); err != nil {
		return nil, fmt.Errorf("maps directory %s does not exist", opts.MapsDir)
	}
	if _, err := os.Stat(opts.SrcDir); err != nil {
		return nil, fmt.Errorf("source directory %s does not exist", opts.SrcDir)
	}
	if err := os.MkdirAll(opts.DstDir, 0o755); err != nil {
		return nil, fmt.Errorf("create destination directory: %w", err)
	}

	maps, err := loadMaps(logger, opts.MapsDir)
	if err != nil {
		return nil, err
	}

	stats := &Stats{MapsLoaded: len(maps)}

	entries, err := os.ReadDir(opts.SrcDir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		mapName := entry.Name()
		m, ok := maps[mapName]
		if !ok {
			logger.Warn("no map file found, skipping", "scenario_dir", mapName)
			continue
		}
		if len(m.FreeCells()) < maxTier {
			return nil, fmt.Errorf("%w: map %s has only %d free cells, need %d",
				core.ErrInsufficientCells, mapName, len(m.FreeCells()), maxTier)
		}

		dstDirs, err := makeTierDirs(opts, mapName, tiers)
		if err != nil {
			return nil, err
		}

		scenFiles, err := filepath.Glob(filepath.Join(opts.SrcDir, mapName, "*.scen"))
		if err != nil {
			return nil, err
		}
		sort.Strings(scenFiles)

		if err := processAll(ctx, logger, m, scenFiles, dstDirs, tiers, opts, stats); err != nil {
			return nil, err
		}
	}

	logger.Info("run complete",
		"files", stats.FilesWritten, "agents", stats.Agents, "tiers", fmt.Sprint(tiers))
	return stats, nil
}

// loadMaps parses every *.map file in dir, keyed by file stem. Malformed
// maps are reported and skipped; zero usable maps is fatal.
func loadMaps(logger *log.Logger, dir string) (map[string]*core.GridMap, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.map"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	maps := make(map[string]*core.GridMap, len(paths))
	for _, p := range paths {
		m, err := core.LoadGridMap(p)
		if err != nil {
			logger.Warn("skipping malformed map", "path", p, "err", err)
			continue
		}
		maps[m.Name] = m
		logger.Info("loaded map",
			"name", m.Name, "size", fmt.Sprintf("%dx%d", m.Height, m.Width),
			"free_cells", len(m.FreeCells()))
	}
	if len(maps) == 0 {
		return nil, fmt.Errorf("no valid map files found in %s", dir)
	}
	return maps, nil
}

func makeTierDirs(opts Options, mapName string, tiers []int) (map[int]string, error) {
	dirs := make(map[int]string, len(tiers))
	for _, k := range tiers {
		var dir string
		if opts.Legacy {
			dir = filepath.Join(opts.DstDir, mapName)
		} else {
			dir = filepath.Join(opts.DstDir, fmt.Sprintf("%s_%dwp", mapName, k))
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create tier directory: %w", err)
		}
		dirs[k] = dir
	}
	return dirs, nil
}

// processAll fans scenario files of one map out to workers. Each file's
// pipeline is self-contained over the shared read-only map, so files only
// need the per-file ordering preserved inside processFile.
func processAll(ctx context.Context, logger *log.Logger, m *core.GridMap,
	scenFiles []string, dstDirs map[int]string, tiers []int, opts Options, stats *Stats) error {

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make([]fileJob, 0, len(scenFiles))
	for _, scenPath := range scenFiles {
		outPaths := make(map[int]string, len(tiers))
		for _, k := range tiers {
			outPaths[k] = filepath.Join(dstDirs[k], filepath.Base(scenPath))
		}
		jobs = append(jobs, fileJob{
			m:        m,
			scenPath: scenPath,
			seedPath: m.Name + "/" + filepath.Base(scenPath),
			outPaths: outPaths,
			tiers:    tiers,
			seed:     opts.Seed,
		})
	}

	if workers == 1 {
		for _, job := range jobs {
			if err := ctx.Err(); err != nil {
				return err
			}
			runJob(logger, job, stats)
		}
		return nil
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(job fileJob) {
			defer wg.Done()
			defer func() { <-sem }()
			runJob(logger, job, stats)
		}(job)
	}
	wg.Wait()
	return ctx.Err()
}

func runJob(logger *log.Logger, job fileJob, stats *Stats) {
	flog := logger.With("scen", filepath.Base(job.scenPath))
	agents, fixed, err := processFile(flog, job)
	if err != nil {
		flog.Warn("skipping scenario", "err", err)
		return
	}
	stats.add(len(job.tiers), agents, fixed)
}
