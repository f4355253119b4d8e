// Package widgets provides the Gio widgets of the replay viewer.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
	"github.com/elektrokombinacija/robovac-sim/internal/vis/draw"
	"github.com/elektrokombinacija/robovac-sim/internal/vis/interact"
	"github.com/elektrokombinacija/robovac-sim/internal/vis/state"
)

// TrailLength caps the number of trail points drawn behind the robot.
const TrailLength = 400

// Workspace is the room view.
type Workspace struct {
	state  *state.State
	camera *interact.Camera
}

func NewWorkspace(st *state.State, camera *interact.Camera) *Workspace {
	return &Workspace{state: st, camera: camera}
}

// Layout renders the room, the cleaned cells up to the playback time, the
// trail and the robot.
func (w *Workspace) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	w.camera.Fit(w.state.Width(), w.state.Height(), float32(bounds.X), float32(bounds.Y), 24)
	w.handlePointerEvents(gtx)

	idx := w.state.FrameIndex()
	draw.DrawRoom(gtx, w.state.Layout, func(c core.Cell) bool {
		return w.state.Cleaned(c, idx)
	}, w.camera)

	draw.DrawTrail(gtx, w.state.Trail(TrailLength), w.camera, draw.ColorTrail, 0.15)

	st, heading := core.StateIdle, 0.0
	if f, ok := w.state.CurrentFrame(); ok {
		st, heading = f.State, f.Heading
	}
	draw.DrawRobot(gtx, w.state.Position(), heading, st, w.camera)

	return layout.Dimensions{Size: bounds}
}

func (w *Workspace) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  w,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			w.camera.HandleEvent(pe)
		}
	}
}
