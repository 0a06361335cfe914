// Package vis implements a Gio-based viewer for waypoint-augmented
// scenarios: the passability grid, agent starts, and per-agent waypoint
// chains.
package vis

import (
	"bufio"
	"image"
	"os"
	"strconv"
	"strings"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/mapf-waypoints/internal/core"
	"github.com/elektrokombinacija/mapf-waypoints/internal/verify"
	"github.com/elektrokombinacija/mapf-waypoints/internal/vis/draw"
	"github.com/elektrokombinacija/mapf-waypoints/internal/vis/interact"
)

// agentView is one agent's renderable data.
type agentView struct {
	id        int
	startX    int
	startY    int
	waypoints []verify.Waypoint
}

// App is the viewer application.
type App struct {
	m      *core.GridMap
	agents []agentView
	camera *interact.Camera

	// selected is the index into agents highlighted exclusively; -1 shows
	// every agent.
	selected int
	fitted   bool
}

// NewApp creates a viewer for one map and the records of one waypointed
// scenario file.
func NewApp(m *core.GridMap, records []*verify.Record) *App {
	a := &App{
		m:        m,
		camera:   interact.NewCamera(),
		selected: -1,
	}
	for i, rec := range records {
		v := agentView{id: i, waypoints: rec.Waypoints}
		v.startX, _ = strconv.Atoi(rec.Original[4])
		v.startY, _ = strconv.Atoi(rec.Original[5])
		a.agents = append(a.agents, v)
	}
	return a
}

// LoadRecords reads a waypointed scenario file into records, skipping the
// header, blank lines, and non-conforming lines.
func LoadRecords(path string) ([]*verify.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []*verify.Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" ||
			strings.HasPrefix(line, "version") || strings.HasPrefix(line, "Version") {
			continue
		}
		rec, err := verify.ParseRecord(line)
		if err != nil || rec == nil {
			continue
		}
		records = append(records, rec)
	}
	return records, sc.Err()
}

// Run starts the viewer event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKey(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (a *App) handleKey(e key.Event) {
	switch e.Name {
	case "R":
		a.camera.Reset()
		a.fitted = false
	case key.NameEscape:
		a.selected = -1
	case key.NameLeftArrow:
		a.cycle(-1)
	case key.NameRightArrow:
		a.cycle(1)
	}
}

func (a *App) cycle(delta int) {
	if len(a.agents) == 0 {
		return
	}
	a.selected += delta
	if a.selected < -1 {
		a.selected = len(a.agents) - 1
	}
	if a.selected >= len(a.agents) {
		a.selected = -1
	}
}

func (a *App) layout(gtx layout.Context) {
	bounds := gtx.Constraints.Max
	paint.Fill(gtx.Ops, draw.ColorBackground)

	if !a.fitted {
		a.camera.FitBounds(float64(a.m.Width), float64(a.m.Height),
			float32(bounds.X), float32(bounds.Y), 40)
		a.fitted = true
	}

	a.handlePointer(gtx)

	// Terrain
	for r := 0; r < a.m.Height; r++ {
		for c := 0; c < a.m.Width; c++ {
			col := draw.ColorObstacle
			if a.m.Passable(r, c) {
				col = draw.ColorFreeCell
			}
			draw.DrawCell(gtx, a.camera, c, r, col)
		}
	}

	// Waypoint chains: all agents, or just the cycled selection.
	if a.selected == -1 {
		for i := range a.agents {
			a.drawAgent(gtx, &a.agents[i], false)
		}
	} else if a.selected < len(a.agents) {
		a.drawAgent(gtx, &a.agents[a.selected], true)
	}
}

func (a *App) drawAgent(gtx layout.Context, v *agentView, highlight bool) {
	col := draw.AgentColor(v.id)
	radius := float32(4)
	if highlight {
		radius = 6
	}

	prevX, prevY := float64(v.startX)+0.5, float64(v.startY)+0.5
	for _, wp := range v.waypoints {
		x, y := float64(wp.X)+0.5, float64(wp.Y)+0.5
		draw.DrawSegment(gtx, a.camera, prevX, prevY, x, y, 2, draw.ColorChain)
		prevX, prevY = x, y
	}
	draw.DrawCircle(gtx, a.camera, float64(v.startX)+0.5, float64(v.startY)+0.5, radius+2, draw.ColorStart)
	for _, wp := range v.waypoints {
		draw.DrawCircle(gtx, a.camera, float64(wp.X)+0.5, float64(wp.Y)+0.5, radius, col)
	}
}

func (a *App) handlePointer(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, a)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: a,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			a.camera.HandleEvent(gtx, pe)
		}
	}
}
