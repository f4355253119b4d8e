package algo

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
)

func openRoom(t *testing.T, w, h int) *core.Environment {
	t.Helper()
	env, err := core.NewEnvironment(w, h)
	if err != nil {
		t.Fatalf("NewEnvironment(%d, %d): %v", w, h, err)
	}
	return env
}

func gridFrom(t *testing.T, rows ...string) *core.Environment {
	t.Helper()
	grid := make([][]core.CellType, len(rows))
	for y, row := range rows {
		grid[y] = make([]core.CellType, len(row))
		for x, r := range row {
			switch r {
			case '#':
				grid[y][x] = core.Obstacle
			case 'C':
				grid[y][x] = core.Cliff
			case 'D':
				grid[y][x] = core.Dock
			}
		}
	}
	env, err := core.FromLayout(grid)
	if err != nil {
		t.Fatalf("FromLayout: %v", err)
	}
	return env
}

// checkPath verifies endpoints, adjacency and traversability.
func checkPath(t *testing.T, env *core.Environment, path []core.Cell, start, goal core.Cell, diagonal bool) {
	t.Helper()
	if len(path) == 0 {
		t.Fatalf("no path from %v to %v", start, goal)
	}
	if path[0] != start || path[len(path)-1] != goal {
		t.Errorf("path endpoints = %v..%v, want %v..%v", path[0], path[len(path)-1], start, goal)
	}
	for i, c := range path {
		if !env.IsValidPosition(c.X, c.Y) {
			t.Errorf("path[%d] = %v is not traversable", i, c)
		}
		if i == 0 {
			continue
		}
		d := c.Chebyshev(path[i-1])
		if d != 1 {
			t.Errorf("path[%d-%d] = %v -> %v is not a single move", i-1, i, path[i-1], c)
		}
		if !diagonal && c.Manhattan(path[i-1]) != 1 {
			t.Errorf("path[%d-%d] = %v -> %v is diagonal", i-1, i, path[i-1], c)
		}
	}
}

func TestFindPathCardinalLength(t *testing.T) {
	env := openRoom(t, 12, 10)
	pf := NewPathfinder(env)

	tests := []struct {
		start, goal core.Cell
	}{
		{core.Cell{X: 0, Y: 0}, core.Cell{X: 11, Y: 9}},
		{core.Cell{X: 5, Y: 5}, core.Cell{X: 5, Y: 5}},
		{core.Cell{X: 3, Y: 7}, core.Cell{X: 9, Y: 1}},
		{core.Cell{X: 11, Y: 0}, core.Cell{X: 0, Y: 0}},
	}

	for _, tt := range tests {
		path := pf.FindPath(tt.start, tt.goal, false)
		checkPath(t, env, path, tt.start, tt.goal, false)
		if want := 1 + tt.start.Manhattan(tt.goal); len(path) != want {
			t.Errorf("FindPath(%v, %v) len = %d, want %d", tt.start, tt.goal, len(path), want)
		}
	}
}

func TestFindPathSameCell(t *testing.T) {
	pf := NewPathfinder(openRoom(t, 3, 3))
	got := pf.FindPath(core.Cell{X: 1, Y: 1}, core.Cell{X: 1, Y: 1}, true)
	if diff := cmp.Diff([]core.Cell{{X: 1, Y: 1}}, got); diff != "" {
		t.Errorf("FindPath same cell mismatch (-want +got):\n%s", diff)
	}
}

func TestFindPathDiagonalNotLonger(t *testing.T) {
	env := openRoom(t, 20, 20)
	pf := NewPathfinder(env)

	for _, k := range []int{1, 3, 7, 12} {
		start := core.Cell{X: 2, Y: 2}
		goal := core.Cell{X: 2 + k, Y: 2 + k}

		card := pf.FindPath(start, goal, false)
		diag := pf.FindPath(start, goal, true)
		checkPath(t, env, diag, start, goal, true)

		if len(diag) > len(card) {
			t.Errorf("offset %d: diagonal len %d > cardinal len %d", k, len(diag), len(card))
		}
		if PathCost(diag) > PathCost(card)+1e-9 {
			t.Errorf("offset %d: diagonal cost %v > cardinal cost %v", k, PathCost(diag), PathCost(card))
		}
	}
}

func TestFindPathPureDiagonal(t *testing.T) {
	pf := NewPathfinder(openRoom(t, 6, 6))
	path := pf.FindPath(core.Cell{X: 0, Y: 0}, core.Cell{X: 4, Y: 4}, true)
	if len(path) != 5 {
		t.Errorf("len = %d, want 5: %v", len(path), path)
	}
	if got, want := PathCost(path), 4*math.Sqrt2; math.Abs(got-want) > 1e-9 {
		t.Errorf("cost = %v, want %v", got, want)
	}
}

func TestFindPathInvalidEndpoints(t *testing.T) {
	env := gridFrom(t,
		".....",
		".#C..",
		".....",
	)
	pf := NewPathfinder(env)

	tests := []struct {
		name        string
		start, goal core.Cell
	}{
		{"goal in obstacle", core.Cell{X: 0, Y: 0}, core.Cell{X: 1, Y: 1}},
		{"start in obstacle", core.Cell{X: 1, Y: 1}, core.Cell{X: 4, Y: 2}},
		{"goal on cliff", core.Cell{X: 0, Y: 0}, core.Cell{X: 2, Y: 1}},
		{"start out of bounds", core.Cell{X: -1, Y: 0}, core.Cell{X: 4, Y: 2}},
		{"goal out of bounds", core.Cell{X: 0, Y: 0}, core.Cell{X: 5, Y: 0}},
	}

	for _, tt := range tests {
		for _, diag := range []bool{false, true} {
			if got := pf.FindPath(tt.start, tt.goal, diag); got != nil {
				t.Errorf("%s (diagonal=%v): got %v, want nil", tt.name, diag, got)
			}
		}
	}
}

func TestFindPathAroundWall(t *testing.T) {
	env := gridFrom(t,
		"......",
		".####.",
		".#..#.",
		".#..#.",
		"......",
	)
	pf := NewPathfinder(env)

	start, goal := core.Cell{X: 0, Y: 2}, core.Cell{X: 5, Y: 2}
	path := pf.FindPath(start, goal, false)
	checkPath(t, env, path, start, goal, false)
	// Around the top or bottom: 2 + 5 + 2 moves.
	if len(path) != 10 {
		t.Errorf("len = %d, want 10: %v", len(path), path)
	}
}

func TestFindPathUnreachable(t *testing.T) {
	env := gridFrom(t,
		"..#..",
		"..#..",
		"..#..",
	)
	pf := NewPathfinder(env)
	if got := pf.FindPath(core.Cell{X: 0, Y: 0}, core.Cell{X: 4, Y: 2}, true); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestFindPathThroughDock(t *testing.T) {
	env := gridFrom(t,
		"#####",
		"#.D.#",
		"#####",
	)
	pf := NewPathfinder(env)
	path := pf.FindPath(core.Cell{X: 1, Y: 1}, core.Cell{X: 3, Y: 1}, false)
	want := []core.Cell{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}}
	if diff := cmp.Diff(want, path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestFindPathDeterministic(t *testing.T) {
	env := openRoom(t, 8, 8)
	pf := NewPathfinder(env)
	first := pf.FindPath(core.Cell{X: 0, Y: 0}, core.Cell{X: 7, Y: 5}, true)
	for i := 0; i < 5; i++ {
		again := pf.FindPath(core.Cell{X: 0, Y: 0}, core.Cell{X: 7, Y: 5}, true)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestPathCost(t *testing.T) {
	tests := []struct {
		path []core.Cell
		want float64
	}{
		{nil, 0},
		{[]core.Cell{{X: 0, Y: 0}}, 0},
		{[]core.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 1}}, 1 + math.Sqrt2},
	}
	for _, tt := range tests {
		if got := PathCost(tt.path); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("PathCost(%v) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
