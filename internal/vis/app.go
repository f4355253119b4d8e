// Package vis is a Gio replay viewer for recorded cleaning runs.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/robovac-sim/internal/vis/interact"
	"github.com/elektrokombinacija/robovac-sim/internal/vis/state"
	"github.com/elektrokombinacija/robovac-sim/internal/vis/widgets"
)

// App is the viewer window content.
type App struct {
	state  *state.State
	theme  *material.Theme
	camera *interact.Camera

	toolbar   *widgets.Toolbar
	workspace *widgets.Workspace
	timeline  *widgets.Timeline
}

// NewApp creates a viewer over a replay.
func NewApp(st *state.State) *App {
	camera := interact.NewCamera()
	return &App{
		state:     st,
		theme:     material.NewTheme(),
		camera:    camera,
		toolbar:   widgets.NewToolbar(st),
		workspace: widgets.NewWorkspace(st, camera),
		timeline:  widgets.NewTimeline(st),
	}
}

// Run processes window events until the window is closed.
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
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.state.Playback.Advance()
			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.state.Playback.Playing {
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	pb := a.state.Playback
	switch e.Name {
	case key.NameSpace:
		pb.TogglePlay()
	case key.NameLeftArrow:
		pb.StepBack()
	case key.NameRightArrow:
		pb.StepForward()
	case key.NameUpArrow:
		pb.Faster()
	case key.NameDownArrow:
		pb.Slower()
	case key.NameHome:
		pb.Reset()
	case key.NameEnd:
		pb.Pause()
		pb.SetTime(pb.MaxTime)
	case "R":
		a.camera.Reset()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.workspace.Layout(gtx, a.theme)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeline.Layout(gtx, a.theme)
		}),
	)
}
