// Package draw renders the room, the robot and its trail with Gio ops.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
	"github.com/elektrokombinacija/robovac-sim/internal/vis/interact"
)

// Cell colours
var (
	ColorDirty    = color.NRGBA{R: 70, G: 62, B: 52, A: 255}
	ColorClean    = color.NRGBA{R: 120, G: 190, B: 150, A: 255}
	ColorObstacle = color.NRGBA{R: 30, G: 32, B: 36, A: 255}
	ColorCliff    = color.NRGBA{R: 150, G: 60, B: 60, A: 255}
	ColorDock     = color.NRGBA{R: 240, G: 200, B: 70, A: 255}
	ColorGridLine = color.NRGBA{R: 0, G: 0, B: 0, A: 40}
)

// CellColor returns the fill for a cell type. Free cells depend on
// whether they have been cleaned yet.
func CellColor(t core.CellType, cleaned bool) color.NRGBA {
	switch t {
	case core.Obstacle:
		return ColorObstacle
	case core.Cliff:
		return ColorCliff
	case core.Dock:
		return ColorDock
	}
	if cleaned {
		return ColorClean
	}
	return ColorDirty
}

// DrawRoom fills every cell of grid. cleaned reports the clean state of
// Free cells. Cells outside the clip area are skipped.
func DrawRoom(gtx layout.Context, grid [][]core.CellType, cleaned func(core.Cell) bool, camera *interact.Camera) {
	bounds := gtx.Constraints.Max
	for y, row := range grid {
		for x, t := range row {
			r := cellRect(x, y, camera)
			if r.Max.X < 0 || r.Max.Y < 0 || r.Min.X > bounds.X || r.Min.Y > bounds.Y {
				continue
			}
			col := CellColor(t, t == core.Free && cleaned(core.Cell{X: x, Y: y}))
			paint.FillShape(gtx.Ops, col, clip.Rect(r).Op())
		}
	}

	if camera.Zoom >= 8 {
		drawGridLines(gtx, len(grid), rowWidth(grid), camera)
	}
}

func cellRect(x, y int, camera *interact.Camera) image.Rectangle {
	x0, y0 := camera.WorldToScreen(float64(x), float64(y))
	x1, y1 := camera.WorldToScreen(float64(x+1), float64(y+1))
	return image.Rect(
		int(math.Floor(float64(x0))), int(math.Floor(float64(y0))),
		int(math.Ceil(float64(x1))), int(math.Ceil(float64(y1))),
	)
}

func drawGridLines(gtx layout.Context, height, width int, camera *interact.Camera) {
	left, top := camera.WorldToScreen(0, 0)
	right, bottom := camera.WorldToScreen(float64(width), float64(height))

	for x := 0; x <= width; x++ {
		sx, _ := camera.WorldToScreen(float64(x), 0)
		r := image.Rect(int(sx), int(top), int(sx)+1, int(bottom))
		paint.FillShape(gtx.Ops, ColorGridLine, clip.Rect(r).Op())
	}
	for y := 0; y <= height; y++ {
		_, sy := camera.WorldToScreen(0, float64(y))
		r := image.Rect(int(left), int(sy), int(right), int(sy)+1)
		paint.FillShape(gtx.Ops, ColorGridLine, clip.Rect(r).Op())
	}
}

func rowWidth(grid [][]core.CellType) int {
	if len(grid) == 0 {
		return 0
	}
	return len(grid[0])
}
