// Package draw provides rendering primitives for the waypoint viewer.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/mapf-waypoints/internal/vis/interact"
)

// Colors for terrain and waypoint rendering.
var (
	ColorBackground = color.NRGBA{R: 25, G: 28, B: 32, A: 255}
	ColorFreeCell   = color.NRGBA{R: 210, G: 212, B: 215, A: 255}
	ColorObstacle   = color.NRGBA{R: 60, G: 66, B: 74, A: 255}
	ColorStart      = color.NRGBA{R: 80, G: 180, B: 100, A: 255}
	ColorChain      = color.NRGBA{R: 150, G: 170, B: 190, A: 160}
)

// AgentColor returns a stable per-agent color for waypoint markers.
func AgentColor(agentID int) color.NRGBA {
	hues := []color.NRGBA{
		{R: 235, G: 100, B: 90, A: 255},
		{R: 100, G: 140, B: 220, A: 255},
		{R: 230, G: 180, B: 70, A: 255},
		{R: 150, G: 100, B: 220, A: 255},
		{R: 80, G: 190, B: 190, A: 255},
		{R: 220, G: 120, B: 180, A: 255},
	}
	return hues[agentID%len(hues)]
}

// DrawCell fills the unit cell at world (x, y).
func DrawCell(gtx layout.Context, camera *interact.Camera, x, y int, col color.NRGBA) {
	x0, y0 := camera.WorldToScreen(float64(x), float64(y))
	x1, y1 := camera.WorldToScreen(float64(x+1), float64(y+1))
	rect := image.Rect(int(x0), int(y0), int(x1), int(y1))
	paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
}

// DrawCircle draws a filled circle centered on world (x, y), radius in
// screen pixels.
func DrawCircle(gtx layout.Context, camera *interact.Camera, x, y float64, radius float32, col color.NRGBA) {
	cx, cy := camera.WorldToScreen(x, y)

	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))
	segments := 16
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		px := cx + radius*float32(math.Cos(angle))
		py := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(px-path.Pos().X, py-path.Pos().Y))
	}
	path.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// DrawSegment draws a line between two world points with the given screen
// width.
func DrawSegment(gtx layout.Context, camera *interact.Camera, x1, y1, x2, y2 float64, width float32, col color.NRGBA) {
	sx1, sy1 := camera.WorldToScreen(x1, y1)
	sx2, sy2 := camera.WorldToScreen(x2, y2)

	dx := sx2 - sx1
	dy := sy2 - sy1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(sx1+px, sy1+py))
	path.LineTo(f32.Pt(sx2+px, sy2+py))
	path.LineTo(f32.Pt(sx2-px, sy2-py))
	path.LineTo(f32.Pt(sx1-px, sy1-py))
	path.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
