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

// Robot colours by state
var (
	ColorRobotIdle      = color.NRGBA{R: 180, G: 180, B: 190, A: 255}
	ColorRobotCleaning  = color.NRGBA{R: 100, G: 200, B: 255, A: 255}
	ColorRobotReturning = color.NRGBA{R: 255, G: 150, B: 100, A: 255}
	ColorRobotCharging  = color.NRGBA{R: 120, G: 230, B: 120, A: 255}
	ColorRobotFault     = color.NRGBA{R: 255, G: 70, B: 70, A: 255}
	ColorHeading        = color.NRGBA{R: 20, G: 20, B: 24, A: 255}
)

// StateColor returns the marker colour for a robot state.
func StateColor(s core.RobotState) color.NRGBA {
	switch s {
	case core.StateCleaning:
		return ColorRobotCleaning
	case core.StateReturningToDock:
		return ColorRobotReturning
	case core.StateCharging:
		return ColorRobotCharging
	case core.StateError, core.StateStuck:
		return ColorRobotFault
	default:
		return ColorRobotIdle
	}
}

// DrawRobot draws the robot as a disc with a heading tick.
func DrawRobot(gtx layout.Context, pos core.Pos, heading float64, st core.RobotState, camera *interact.Camera) {
	cx, cy := toScreen(pos, camera)
	radius := max(0.4*camera.Zoom, 3)

	drawFilledCircle(gtx, cx, cy, radius, StateColor(st))

	hx := cx + radius*float32(math.Cos(heading))
	hy := cy + radius*float32(math.Sin(heading))
	drawSegment(gtx, cx, cy, hx, hy, max(radius/4, 1), ColorHeading)
}

func drawFilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(cx+radius, cy))

	segments := 16
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		path.LineTo(f32.Pt(cx+radius*float32(math.Cos(angle)), cy+radius*float32(math.Sin(angle))))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// toScreen places a position half a cell down and right, so the integral
// positions the simulator moves between land on cell centres.
func toScreen(p core.Pos, camera *interact.Camera) (float32, float32) {
	return camera.WorldToScreen(p.X+0.5, p.Y+0.5)
}
