package core

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when a room would have no cells or a
// ragged layout.
var ErrInvalidDimensions = errors.New("invalid room dimensions")

// Environment is the room: a fixed grid of cell types plus a dirt overlay
// that the robot clears as it passes.
type Environment struct {
	width  int
	height int
	cells  []CellType // row-major, y*width + x
	dirty  []bool     // same shape as cells; true = not yet cleaned

	dock    Cell
	hasDock bool

	// SimTime is the simulated time in seconds.
	SimTime float64
}

// NewEnvironment creates a width x height room with every cell Free and dirty.
func NewEnvironment(width, height int) (*Environment, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	env := &Environment{
		width:  width,
		height: height,
		cells:  make([]CellType, width*height),
		dirty:  make([]bool, width*height),
	}
	env.fillDirty()
	return env, nil
}

// FromLayout adopts a grid of cell types indexed [y][x]. The first Dock
// cell in row-major order becomes the dock position.
func FromLayout(grid [][]CellType) (*Environment, error) {
	height := len(grid)
	if height == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidDimensions)
	}
	width := len(grid[0])
	env, err := NewEnvironment(width, height)
	if err != nil {
		return nil, err
	}
	for y, row := range grid {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimensions, y, len(row), width)
		}
		copy(env.cells[y*width:(y+1)*width], row)
	}
	env.locateDock()
	return env, nil
}

// FromCodes builds an environment from raw numeric cell codes.
// Codes outside the known set decode to Free.
func FromCodes(codes [][]uint8) (*Environment, error) {
	grid := make([][]CellType, len(codes))
	for y, row := range codes {
		grid[y] = make([]CellType, len(row))
		for x, code := range row {
			grid[y][x] = DecodeCellType(code)
		}
	}
	return FromLayout(grid)
}

// NewWalledRoom creates a room whose border cells are Obstacle and whose
// interior is Free.
func NewWalledRoom(width, height int) (*Environment, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	grid := make([][]CellType, height)
	for y := range grid {
		grid[y] = make([]CellType, width)
		for x := range grid[y] {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				grid[y][x] = Obstacle
			}
		}
	}
	return FromLayout(grid)
}

func (e *Environment) locateDock() {
	e.hasDock = false
	for i, c := range e.cells {
		if c == Dock {
			e.dock = Cell{X: i % e.width, Y: i / e.width}
			e.hasDock = true
			return
		}
	}
}

func (e *Environment) fillDirty() {
	for i := range e.dirty {
		e.dirty[i] = true
	}
}

func (e *Environment) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < e.width && y < e.height
}

// Width returns the number of columns.
func (e *Environment) Width() int { return e.width }

// Height returns the number of rows.
func (e *Environment) Height() int { return e.height }

// DockPosition returns the cached dock cell, if the room has one.
func (e *Environment) DockPosition() (Cell, bool) {
	return e.dock, e.hasDock
}

// CellAt returns the classification of a cell. Out-of-bounds reads as Obstacle.
func (e *Environment) CellAt(x, y int) CellType {
	if !e.inBounds(x, y) {
		return Obstacle
	}
	return e.cells[y*e.width+x]
}

// IsValidPosition reports whether (x, y) is inside the room and Free or Dock.
// This is the only traversability test used for planning and motion.
func (e *Environment) IsValidPosition(x, y int) bool {
	if !e.inBounds(x, y) {
		return false
	}
	return e.cells[y*e.width+x].Traversable()
}

// CleanCell clears the dirt flag. Out-of-bounds cells are ignored.
func (e *Environment) CleanCell(x, y int) {
	if e.inBounds(x, y) {
		e.dirty[y*e.width+x] = false
	}
}

// IsDirty returns the dirt flag, or false outside the room.
func (e *Environment) IsDirty(x, y int) bool {
	if !e.inBounds(x, y) {
		return false
	}
	return e.dirty[y*e.width+x]
}

// CoveragePercentage returns the share of Free cells that have been cleaned,
// in [0, 100]. A room without Free cells is fully covered.
func (e *Environment) CoveragePercentage() float64 {
	total, cleaned := 0, 0
	for i, c := range e.cells {
		if c != Free {
			continue
		}
		total++
		if !e.dirty[i] {
			cleaned++
		}
	}
	if total == 0 {
		return 100.0
	}
	return float64(cleaned) / float64(total) * 100.0
}

// AdvanceTime moves simulated time forward.
func (e *Environment) AdvanceTime(dt float64) {
	e.SimTime += dt
}

// Reset marks every cell dirty again and rewinds time. The layout and dock
// are kept.
func (e *Environment) Reset() {
	e.fillDirty()
	e.SimTime = 0
}

// Clone returns a deep copy.
func (e *Environment) Clone() *Environment {
	c := *e
	c.cells = append([]CellType(nil), e.cells...)
	c.dirty = append([]bool(nil), e.dirty...)
	return &c
}

// Layout returns a copy of the cell grid indexed [y][x].
func (e *Environment) Layout() [][]CellType {
	grid := make([][]CellType, e.height)
	for y := range grid {
		grid[y] = append([]CellType(nil), e.cells[y*e.width:(y+1)*e.width]...)
	}
	return grid
}

// EnvironmentStats summarises the room.
type EnvironmentStats struct {
	Width              int     `json:"width"`
	Height             int     `json:"height"`
	TotalArea          int     `json:"total_area"`
	FreeCells          int     `json:"free_cells"`
	Obstacles          int     `json:"obstacles"`
	Cliffs             int     `json:"cliffs"`
	CoveragePercentage float64 `json:"coverage_percentage"`
	SimTime            float64 `json:"sim_time"`
	DockPosition       *Cell   `json:"dock_position,omitempty"`
}

// Stats counts cells by type and reports coverage.
func (e *Environment) Stats() EnvironmentStats {
	s := EnvironmentStats{
		Width:              e.width,
		Height:             e.height,
		TotalArea:          e.width * e.height,
		CoveragePercentage: e.CoveragePercentage(),
		SimTime:            e.SimTime,
	}
	for _, c := range e.cells {
		switch c {
		case Free:
			s.FreeCells++
		case Obstacle:
			s.Obstacles++
		case Cliff:
			s.Cliffs++
		}
	}
	if e.hasDock {
		dock := e.dock
		s.DockPosition = &dock
	}
	return s
}
