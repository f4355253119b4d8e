// Package layout generates room grids for the simulator and converts them
// to and from a plain-text form.
package layout

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sort"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
)

// ErrUnknownRoom is returned by Predefined for an unregistered name.
var ErrUnknownRoom = errors.New("unknown room type")

// Grid is a room layout indexed [y][x].
type Grid = [][]core.CellType

func blank(w, h int, fill core.CellType) Grid {
	g := make(Grid, h)
	for y := range g {
		g[y] = make([]core.CellType, w)
		if fill != core.Free {
			for x := range g[y] {
				g[y][x] = fill
			}
		}
	}
	return g
}

// fillRect sets cells in [x0, x1) x [y0, y1), clipped to the grid.
func fillRect(g Grid, x0, y0, x1, y1 int, c core.CellType) {
	h := len(g)
	if h == 0 {
		return
	}
	w := len(g[0])
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, w), min(y1, h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g[y][x] = c
		}
	}
}

// Walled returns an empty room enclosed by obstacle walls.
func Walled(w, h int) Grid {
	g := blank(w, h, core.Free)
	fillRect(g, 0, 0, w, 1, core.Obstacle)
	fillRect(g, 0, h-1, w, h, core.Obstacle)
	fillRect(g, 0, 0, 1, h, core.Obstacle)
	fillRect(g, w-1, 0, w, h, core.Obstacle)
	return g
}

// Furnished places n random blocks of 2 to 5 cells per side, each at
// least five cells away from the walls.
func Furnished(w, h, n int, rng *rand.Rand) Grid {
	g := Walled(w, h)
	for i := 0; i < n; i++ {
		fw, fh := 2+rng.Intn(4), 2+rng.Intn(4)
		spanX, spanY := w-fw-10, h-fh-10
		if spanX <= 0 || spanY <= 0 {
			continue
		}
		x, y := 5+rng.Intn(spanX), 5+rng.Intn(spanY)
		fillRect(g, x, y, x+fw, y+fh, core.Obstacle)
	}
	return g
}

// MultiRoom splits the room into four with a cross of walls, each with a
// four-cell doorway near its middle, and puts a 3x3 block in each quarter.
func MultiRoom(w, h int, rng *rand.Rand) Grid {
	g := Walled(w, h)
	midX, midY := w/2, h/2

	fillRect(g, 5, midY, w-5, midY+1, core.Obstacle)
	doorX := midX + rng.Intn(11) - 5
	fillRect(g, doorX-2, midY, doorX+2, midY+1, core.Free)

	fillRect(g, midX, 5, midX+1, h-5, core.Obstacle)
	doorY := midY + rng.Intn(11) - 5
	fillRect(g, midX, doorY-2, midX+1, doorY+2, core.Free)

	for _, c := range []core.Cell{
		{X: midX / 2, Y: midY / 2},
		{X: midX + midX/2, Y: midY / 2},
		{X: midX / 2, Y: midY + midY/2},
		{X: midX + midX/2, Y: midY + midY/2},
	} {
		fillRect(g, c.X-1, c.Y-1, c.X+2, c.Y+2, core.Obstacle)
	}
	return g
}

// Corridor is a long passage of the given outer width with five single
// obstacles dropped into it.
func Corridor(length, width int, rng *rand.Rand) Grid {
	g := blank(length, width, core.Obstacle)
	fillRect(g, 1, 1, length-1, width-1, core.Free)

	inner := width - 2
	if length <= 10 || inner <= 0 {
		return g
	}
	for i := 0; i < 5; i++ {
		x := 5 + rng.Intn(length-10)
		y := 1 + rng.Intn(inner)
		g[y][x] = core.Obstacle
	}
	return g
}

// ObstacleCourse has an L, a U, scattered blocks and a wall across the
// middle with a narrow gap. Shapes are placed for a 60x60 room and clipped
// in smaller ones.
func ObstacleCourse(w, h int) Grid {
	g := Walled(w, h)

	// L
	fillRect(g, 10, 10, 15, 20, core.Obstacle)
	fillRect(g, 10, 15, 20, 20, core.Obstacle)

	// U
	fillRect(g, 25, 25, 28, 35, core.Obstacle)
	fillRect(g, 35, 25, 38, 35, core.Obstacle)
	fillRect(g, 25, 32, 38, 35, core.Obstacle)

	for _, c := range []core.Cell{{X: 15, Y: 30}, {X: 30, Y: 15}, {X: 40, Y: 40}, {X: 20, Y: 45}, {X: 45, Y: 20}} {
		fillRect(g, c.X-2, c.Y-2, c.X+2, c.Y+2, core.Obstacle)
	}

	fillRect(g, 5, h/2-1, w-10, h/2+2, core.Obstacle)
	fillRect(g, w/2-2, h/2, w/2+2, h/2+1, core.Free)
	return g
}

// Stairs adds two five-row cliff bands at one and two thirds of the height.
func Stairs(w, h int) Grid {
	g := Walled(w, h)
	fillRect(g, 10, h/3, w-10, h/3+5, core.Cliff)
	fillRect(g, 10, 2*h/3, w-10, 2*h/3+5, core.Cliff)
	return g
}

// AddDock places a dock and returns its cell. With pos nil the dock goes
// on a random free cell next to an obstacle, else any free cell, else
// the centre.
func AddDock(g Grid, pos *core.Cell, rng *rand.Rand) core.Cell {
	h := len(g)
	w := 0
	if h > 0 {
		w = len(g[0])
	}

	var at core.Cell
	switch {
	case pos != nil:
		at = *pos
	default:
		var nearWall, free []core.Cell
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				if g[y][x] != core.Free {
					continue
				}
				c := core.Cell{X: x, Y: y}
				free = append(free, c)
				if g[y-1][x] == core.Obstacle || g[y+1][x] == core.Obstacle ||
					g[y][x-1] == core.Obstacle || g[y][x+1] == core.Obstacle {
					nearWall = append(nearWall, c)
				}
			}
		}
		switch {
		case len(nearWall) > 0:
			at = nearWall[rng.Intn(len(nearWall))]
		case len(free) > 0:
			at = free[rng.Intn(len(free))]
		default:
			at = core.Cell{X: w / 2, Y: h / 2}
		}
	}

	if at.Y >= 0 && at.Y < h && at.X >= 0 && at.X < w {
		g[at.Y][at.X] = core.Dock
	}
	return at
}

// Generator builds a named room.
type Generator func(rng *rand.Rand) Grid

var rooms = map[string]Generator{
	"empty":           func(*rand.Rand) Grid { return Walled(50, 50) },
	"furnished":       func(rng *rand.Rand) Grid { return Furnished(50, 50, 5, rng) },
	"multi_room":      func(rng *rand.Rand) Grid { return MultiRoom(80, 60, rng) },
	"corridor":        func(rng *rand.Rand) Grid { return Corridor(60, 8, rng) },
	"obstacle_course": func(*rand.Rand) Grid { return ObstacleCourse(60, 60) },
	"stairs":          func(*rand.Rand) Grid { return Stairs(50, 50) },
}

// Names lists the predefined rooms in sorted order.
func Names() []string {
	names := make([]string, 0, len(rooms))
	for n := range rooms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Predefined builds a named room at its stock size and docks it.
func Predefined(name string, rng *rand.Rand) (Grid, error) {
	gen, ok := rooms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownRoom, name, Names())
	}
	g := gen(rng)
	AddDock(g, nil, rng)
	return g, nil
}

// Clone returns a deep copy of g.
func Clone(g Grid) Grid {
	out := make(Grid, len(g))
	for y, row := range g {
		out[y] = slices.Clone(row)
	}
	return out
}
