// Package verify checks hierarchical consistency between two waypointed
// scenario files of the same run: equal agent counts, identical original
// fields, and the smaller tier being an exact prefix of the larger one.
package verify

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/elektrokombinacija/mapf-waypoints/internal/core"
)

// Waypoint is an (x, y) pair as it appears in an output record.
type Waypoint struct {
	X, Y int
}

// Record is one decoded output record: the 9 original fields plus the
// waypoint tail.
type Record struct {
	Original  []string
	Waypoints []Waypoint
}

// Mismatch describes one failed agent comparison. Agent is the 1-based
// position among the compared agent lines.
type Mismatch struct {
	Agent  int
	Reason string
}

// Report aggregates a comparison.
type Report struct {
	Total      int
	Matches    int
	Mismatches []Mismatch
}

// MatchRate returns the fraction of compared agents that matched, in [0,1].
func (r *Report) MatchRate() float64 {
	if r.Total == 0 {
		return 1
	}
	return float64(r.Matches) / float64(r.Total)
}

// Ok reports whether the comparison found no mismatches.
func (r *Report) Ok() bool {
	return len(r.Mismatches) == 0
}

// Files compares two waypointed scenario files. The first should hold the
// smaller tier. Differing agent counts are an error, not a mismatch.
func Files(path1, path2 string) (*Report, error) {
	lines1, err := readLines(path1)
	if err != nil {
		return nil, err
	}
	lines2, err := readLines(path2)
	if err != nil {
		return nil, err
	}
	return Compare(lines1, lines2)
}

// Compare runs the consistency check over raw file lines. Blank lines and
// the version header are ignored on both sides.
func Compare(lines1, lines2 []string) (*Report, error) {
	agents1 := agentLines(lines1)
	agents2 := agentLines(lines2)
	if len(agents1) != len(agents2) {
		return nil, fmt.Errorf("different number of agents (%d vs %d)", len(agents1), len(agents2))
	}

	report := &Report{}
	for i := range agents1 {
		a1, err1 := ParseRecord(agents1[i])
		a2, err2 := ParseRecord(agents2[i])
		if err1 != nil || err2 != nil {
			report.Total++
			report.Mismatches = append(report.Mismatches,
				Mismatch{Agent: i + 1, Reason: "unparseable waypoint tail"})
			continue
		}
		if a1 == nil || a2 == nil {
			// Non-conforming on both sides of a passthrough line; nothing
			// to compare.
			continue
		}
		report.Total++

		if !equalFields(a1.Original, a2.Original) {
			report.Mismatches = append(report.Mismatches,
				Mismatch{Agent: i + 1, Reason: "original field mismatch"})
			continue
		}
		n1, n2 := len(a1.Waypoints), len(a2.Waypoints)
		if n2 < n1 {
			report.Mismatches = append(report.Mismatches, Mismatch{
				Agent:  i + 1,
				Reason: fmt.Sprintf("second file has fewer waypoints (%d vs %d)", n2, n1),
			})
			continue
		}
		if !equalWaypoints(a1.Waypoints, a2.Waypoints[:n1]) {
			report.Mismatches = append(report.Mismatches, Mismatch{
				Agent:  i + 1,
				Reason: fmt.Sprintf("waypoint prefix mismatch: %v vs %v", a1.Waypoints, a2.Waypoints[:n1]),
			})
			continue
		}
		report.Matches++
	}
	return report, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}

func agentLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "version") || strings.HasPrefix(line, "Version") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// ParseRecord decodes an output record. Lines with fewer than 10 fields
// return (nil, nil): present but not comparable.
func ParseRecord(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < core.AgentFieldCount+1 {
		return nil, nil
	}
	count, err := strconv.Atoi(fields[core.AgentFieldCount])
	if err != nil {
		return nil, fmt.Errorf("bad waypoint count %q", fields[core.AgentFieldCount])
	}
	if len(fields) < core.AgentFieldCount+1+2*count {
		return nil, fmt.Errorf("waypoint tail shorter than declared count %d", count)
	}
	rec := &Record{Original: fields[:core.AgentFieldCount]}
	for i := 0; i < count; i++ {
		x, errX := strconv.Atoi(fields[core.AgentFieldCount+1+2*i])
		y, errY := strconv.Atoi(fields[core.AgentFieldCount+2+2*i])
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("bad waypoint pair %d", i)
		}
		rec.Waypoints = append(rec.Waypoints, Waypoint{X: x, Y: y})
	}
	return rec, nil
}

func equalFields(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalWaypoints(a, b []Waypoint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
