package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// AgentFieldCount is the number of tab-separated fields in a benchmark
// agent record. Lines with any other field count are passed through
// untouched.
const AgentFieldCount = 9

// Field indices of the start coordinate within an agent record.
const (
	startColField = 4 // x
	startRowField = 5 // y
)

// AgentRecord is one parsed agent line. Fields other than the start
// coordinate are opaque and re-emitted as read. LineNum is the 1-based line
// number within the source file and doubles as the stable agent id.
type AgentRecord struct {
	LineNum  int
	Fields   []string
	StartRow int
	StartCol int
}

// SetStart rewrites the start coordinate, keeping Fields in sync.
func (a *AgentRecord) SetStart(c Cell) {
	a.StartRow = c.Row
	a.StartCol = c.Col
	a.Fields[startColField] = strconv.Itoa(c.Col)
	a.Fields[startRowField] = strconv.Itoa(c.Row)
}

// Encode renders the output record: the 9 original fields, the waypoint
// count, then column and row of each waypoint, tab-separated.
func (a *AgentRecord) Encode(waypoints []Cell) string {
	parts := make([]string, 0, AgentFieldCount+1+2*len(waypoints))
	parts = append(parts, a.Fields...)
	parts = append(parts, strconv.Itoa(len(waypoints)))
	for _, wp := range waypoints {
		parts = append(parts, strconv.Itoa(wp.Col), strconv.Itoa(wp.Row))
	}
	return strings.Join(parts, "\t")
}

// Line is one scenario line. Agent is non-nil only for conforming agent
// records; Err is set when a line has 9 fields but unparseable coordinates,
// in which case the line is preserved verbatim and excluded from waypoint
// assignment.
type Line struct {
	Num   int
	Raw   string
	Agent *AgentRecord
	Err   error
}

// Scenario is a parsed .scen file. The optional version header is kept
// verbatim and separate from Lines.
type Scenario struct {
	Path      string
	Header    string
	HasHeader bool
	Lines     []Line
}

// ParseScenario splits scenario text into the header, agent records, and
// pass-through lines. Any text parses; per-line coordinate problems are
// recorded on the Line, not returned.
func ParseScenario(path string, r io.Reader) (*Scenario, error) {
	s := &Scenario{Path: path}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	num := 0
	for sc.Scan() {
		num++
		raw := strings.TrimRight(sc.Text(), "\r")
		if num == 1 && (strings.HasPrefix(raw, "version") || strings.HasPrefix(raw, "Version")) {
			s.Header = raw
			s.HasHeader = true
			continue
		}
		s.Lines = append(s.Lines, parseLine(num, raw))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrScenarioRead, path, err)
	}
	return s, nil
}

// LoadScenario parses the scenario file at path.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScenarioRead, err)
	}
	defer f.Close()
	return ParseScenario(path, f)
}

func parseLine(num int, raw string) Line {
	ln := Line{Num: num, Raw: raw}
	if strings.TrimSpace(raw) == "" {
		return ln
	}
	fields := strings.Split(raw, "\t")
	if len(fields) != AgentFieldCount {
		return ln
	}
	col, errC := strconv.Atoi(fields[startColField])
	row, errR := strconv.Atoi(fields[startRowField])
	if errC != nil || errR != nil {
		ln.Err = fmt.Errorf("%w: line %d: bad start coordinate", ErrAgentParse, num)
		return ln
	}
	ln.Agent = &AgentRecord{
		LineNum:  num,
		Fields:   fields,
		StartRow: row,
		StartCol: col,
	}
	return ln
}

// Agents returns the conforming agent records in file order.
func (s *Scenario) Agents() []*AgentRecord {
	var out []*AgentRecord
	for i := range s.Lines {
		if s.Lines[i].Agent != nil {
			out = append(out, s.Lines[i].Agent)
		}
	}
	return out
}
