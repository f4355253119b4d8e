// Package algo holds the grid search and coverage planning used by the
// simulator.
package algo

import (
	"container/heap"
	"math"
	"slices"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
)

// Neighbour offsets in expansion order. The first four are cardinal.
var moves = [8]core.Cell{
	{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0},
	{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

// astarNode for priority queue.
type astarNode struct {
	cell  core.Cell
	g     float64 // Cost so far
	h     float64 // Manhattan estimate to goal
	f     float64 // g + h
	seq   int     // Push order, for stable ties
	index int     // heap index
}

// astarHeap implements heap.Interface. Ties on f go to the smaller h,
// then to the node pushed first.
type astarHeap []*astarNode

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	if h[i].h != h[j].h {
		return h[i].h < h[j].h
	}
	return h[i].seq < h[j].seq
}
func (h astarHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *astarHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// Pathfinder runs A* over a room. It only reads the environment and must
// not be used while the environment is being mutated.
type Pathfinder struct {
	env *core.Environment
}

// NewPathfinder returns a pathfinder over env.
func NewPathfinder(env *core.Environment) *Pathfinder {
	return &Pathfinder{env: env}
}

// FindPath returns the cells from start to goal inclusive, or nil when
// either endpoint is not traversable or the goal is unreachable.
//
// The heuristic is Manhattan distance even with diagonal moves enabled,
// so diagonal paths are valid but not guaranteed shortest. Diagonal moves
// cost sqrt(2) and may pass between two blocked orthogonal cells.
func (pf *Pathfinder) FindPath(start, goal core.Cell, allowDiagonal bool) []core.Cell {
	env := pf.env
	if !env.IsValidPosition(start.X, start.Y) || !env.IsValidPosition(goal.X, goal.Y) {
		return nil
	}

	neighbours := moves[:4]
	if allowDiagonal {
		neighbours = moves[:]
	}

	open := &astarHeap{}
	heap.Init(open)

	seq := 0
	push := func(c core.Cell, g float64) {
		h := float64(c.Manhattan(goal))
		heap.Push(open, &astarNode{cell: c, g: g, h: h, f: g + h, seq: seq})
		seq++
	}

	best := map[core.Cell]float64{start: 0}
	parent := make(map[core.Cell]core.Cell)
	closed := make(map[core.Cell]bool)
	push(start, 0)

	for open.Len() > 0 {
		current := heap.Pop(open).(*astarNode)

		if current.cell == goal {
			return reconstructPath(parent, start, goal)
		}

		// Stale duplicates are skipped here instead of using decrease-key.
		if closed[current.cell] {
			continue
		}
		closed[current.cell] = true

		for i, d := range neighbours {
			next := core.Cell{X: current.cell.X + d.X, Y: current.cell.Y + d.Y}
			if !env.IsValidPosition(next.X, next.Y) || closed[next] {
				continue
			}

			cost := 1.0
			if i >= 4 {
				cost = math.Sqrt2
			}
			g := current.g + cost
			if old, seen := best[next]; seen && g >= old {
				continue
			}
			best[next] = g
			parent[next] = current.cell
			push(next, g)
		}
	}

	return nil // No path found
}

// PathCost sums the move costs along a path.
func PathCost(path []core.Cell) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		if path[i].X != path[i-1].X && path[i].Y != path[i-1].Y {
			total += math.Sqrt2
		} else {
			total += 1.0
		}
	}
	return total
}

func reconstructPath(parent map[core.Cell]core.Cell, start, goal core.Cell) []core.Cell {
	var path []core.Cell
	for c := goal; ; c = parent[c] {
		path = append(path, c)
		if c == start {
			break
		}
	}
	slices.Reverse(path)
	return path
}
