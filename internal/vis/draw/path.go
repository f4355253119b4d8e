package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
	"github.com/elektrokombinacija/robovac-sim/internal/vis/interact"
)

// ColorTrail is the base colour of the robot's trail.
var ColorTrail = color.NRGBA{R: 100, G: 200, B: 255, A: 255}

// DrawTrail draws the path behind the robot, fading toward the oldest point.
// width is in cells.
func DrawTrail(gtx layout.Context, history []core.Pos, camera *interact.Camera, base color.NRGBA, width float32) {
	n := len(history)
	if n < 2 {
		return
	}

	for i := 0; i < n-1; i++ {
		col := base
		col.A = uint8(40 + float64(i)/float64(n)*180)
		w := width * camera.Zoom * (0.4 + 0.6*float32(i)/float32(n))

		x1, y1 := toScreen(history[i], camera)
		x2, y2 := toScreen(history[i+1], camera)
		drawSegment(gtx, x1, y1, x2, y2, w, col)
	}
}

func drawSegment(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
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
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
