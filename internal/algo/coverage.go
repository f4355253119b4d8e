package algo

import (
	"math/rand"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
)

// RandomBias is the probability that a random walk picks an unvisited
// neighbour when one exists.
const RandomBias = 0.7

// SpotRadius bounds the spiral used by spot cleaning.
const SpotRadius = 3

// SpiralPath walks an outward square spiral around start, turning
// right, down, left, up with the leg length growing every second turn.
// Only traversable cells are kept. A maxRadius <= 0 covers the room.
func SpiralPath(env *core.Environment, start core.Cell, maxRadius int) []core.Cell {
	if maxRadius <= 0 {
		maxRadius = max(env.Width(), env.Height())
	}

	var path []core.Cell
	if env.IsValidPosition(start.X, start.Y) {
		path = append(path, start)
	}

	x, y := start.X, start.Y
	dx, dy := 1, 0
	legLen, taken, turns := 1, 0, 0

	for i := 0; i < maxRadius*maxRadius; i++ {
		x += dx
		y += dy
		if env.IsValidPosition(x, y) {
			path = append(path, core.Cell{X: x, Y: y})
		}

		taken++
		if taken == legLen {
			taken = 0
			turns++
			dx, dy = -dy, dx
			if turns%2 == 0 {
				legLen++
			}
		}

		if absInt(x-start.X) > maxRadius && absInt(y-start.Y) > maxRadius {
			break
		}
	}
	return path
}

// ZigzagPath sweeps the room in boustrophedon order: rows alternating
// left-to-right and right-to-left, or columns when horizontal is false.
func ZigzagPath(env *core.Environment, horizontal bool) []core.Cell {
	var path []core.Cell
	w, h := env.Width(), env.Height()

	visit := func(x, y int) {
		if env.IsValidPosition(x, y) {
			path = append(path, core.Cell{X: x, Y: y})
		}
	}

	if horizontal {
		for y := 0; y < h; y++ {
			for i := 0; i < w; i++ {
				x := i
				if y%2 == 1 {
					x = w - 1 - i
				}
				visit(x, y)
			}
		}
		return path
	}

	for x := 0; x < w; x++ {
		for i := 0; i < h; i++ {
			y := i
			if x%2 == 1 {
				y = h - 1 - i
			}
			visit(x, y)
		}
	}
	return path
}

// Headings for wall following: north, east, south, west.
var compass = [4]core.Cell{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// WallFollowPath traces walls with the right-hand rule for at most
// maxSteps decisions. Each cell appears once. The walk ends early when it
// comes back to start after more than ten cells.
func WallFollowPath(env *core.Environment, start core.Cell, maxSteps int) []core.Cell {
	path := []core.Cell{start}
	visited := map[core.Cell]bool{start: true}
	cur := start
	dir := 0

	for i := 0; i < maxSteps; i++ {
		right := (dir + 1) % 4
		if next := step(cur, right); env.IsValidPosition(next.X, next.Y) {
			cur, dir = next, right
		} else if next := step(cur, dir); env.IsValidPosition(next.X, next.Y) {
			cur = next
		} else {
			dir = (dir + 3) % 4
			continue
		}

		if !visited[cur] {
			visited[cur] = true
			path = append(path, cur)
		}
		if cur == start && len(path) > 10 {
			break
		}
	}
	return path
}

func step(c core.Cell, dir int) core.Cell {
	d := compass[dir]
	return core.Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// RandomPath performs a cardinal random walk from start biased toward
// unvisited cells. It stops after maxSteps moves, when the walk is boxed
// in, or once the visited share of traversable cells reaches
// targetCoverage (0 to 1).
func RandomPath(env *core.Environment, start core.Cell, targetCoverage float64, maxSteps int, rng *rand.Rand) []core.Cell {
	path := []core.Cell{start}
	covered := map[core.Cell]bool{start: true}

	total := 0
	for y := 0; y < env.Height(); y++ {
		for x := 0; x < env.Width(); x++ {
			if env.IsValidPosition(x, y) {
				total++
			}
		}
	}
	if total == 0 {
		return path
	}

	cur := start
	for i := 0; i < maxSteps; i++ {
		neighbours := ValidNeighbours(env, cur)
		if len(neighbours) == 0 {
			break
		}

		var fresh []core.Cell
		for _, n := range neighbours {
			if !covered[n] {
				fresh = append(fresh, n)
			}
		}

		if len(fresh) > 0 && rng.Float64() < RandomBias {
			cur = fresh[rng.Intn(len(fresh))]
		} else {
			cur = neighbours[rng.Intn(len(neighbours))]
		}
		path = append(path, cur)
		covered[cur] = true

		if float64(len(covered))/float64(total) >= targetCoverage {
			break
		}
	}
	return path
}

// ValidNeighbours returns the traversable cardinal neighbours of c.
func ValidNeighbours(env *core.Environment, c core.Cell) []core.Cell {
	var out []core.Cell
	for _, d := range moves[:4] {
		n := core.Cell{X: c.X + d.X, Y: c.Y + d.Y}
		if env.IsValidPosition(n.X, n.Y) {
			out = append(out, n)
		}
	}
	return out
}

// RemoveRedundantMoves drops consecutive repeats of the same cell.
func RemoveRedundantMoves(path []core.Cell) []core.Cell {
	if len(path) <= 2 {
		return path
	}
	out := []core.Cell{path[0]}
	for _, c := range path[1:] {
		if c != out[len(out)-1] {
			out = append(out, c)
		}
	}
	return out
}

// CoveragePath plans the traversal order for a cleaning mode. Edge uses
// wall following, Spot a small spiral and Auto a horizontal zigzag.
// rng is only consulted by ModeRandom.
func CoveragePath(env *core.Environment, mode core.CleaningMode, start core.Cell, rng *rand.Rand) []core.Cell {
	area := env.Width() * env.Height()

	var path []core.Cell
	switch mode {
	case core.ModeSpiral:
		path = SpiralPath(env, start, 0)
	case core.ModeZigzag, core.ModeAuto:
		path = ZigzagPath(env, true)
	case core.ModeWallFollow, core.ModeEdge:
		path = WallFollowPath(env, start, 4*area)
	case core.ModeRandom:
		path = RandomPath(env, start, 0.95, 10*area, rng)
	case core.ModeSpot:
		path = SpiralPath(env, start, SpotRadius)
	default:
		path = ZigzagPath(env, true)
	}
	return RemoveRedundantMoves(path)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
