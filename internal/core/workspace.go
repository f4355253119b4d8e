package core

import "math"

// Pos is a continuous position in room units (one unit per grid cell).
type Pos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance to another position.
func (p Pos) DistanceTo(o Pos) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// ManhattanTo returns |dx| + |dy| to another position.
func (p Pos) ManhattanTo(o Pos) float64 {
	return math.Abs(p.X-o.X) + math.Abs(p.Y-o.Y)
}

// Add returns p + o.
func (p Pos) Add(o Pos) Pos { return Pos{X: p.X + o.X, Y: p.Y + o.Y} }

// Sub returns p - o.
func (p Pos) Sub(o Pos) Pos { return Pos{X: p.X - o.X, Y: p.Y - o.Y} }

// ToCell truncates the position toward zero to the grid cell it lies in.
func (p Pos) ToCell() Cell {
	return Cell{X: int(p.X), Y: int(p.Y)}
}

// Cell is a discrete grid coordinate.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pos returns the continuous position of the cell's origin corner.
func (c Cell) Pos() Pos {
	return Pos{X: float64(c.X), Y: float64(c.Y)}
}

// Manhattan returns the grid distance |dx| + |dy| to another cell.
func (c Cell) Manhattan(o Cell) int {
	return absInt(c.X-o.X) + absInt(c.Y-o.Y)
}

// Chebyshev returns max(|dx|, |dy|) to another cell.
func (c Cell) Chebyshev(o Cell) int {
	return max(absInt(c.X-o.X), absInt(c.Y-o.Y))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
