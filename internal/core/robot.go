package core

import (
	"log/slog"
	"math"
	"slices"
)

// BatteryPolicy holds the energy constants of the battery model.
type BatteryPolicy struct {
	EnergyPerUnit       float64 // Battery consumed per unit of distance
	LowBatteryThreshold float64 // Absolute level below which the robot heads home
	ReturnSafetyFactor  float64 // Multiplier on the straight-line return cost
	ReturnReserve       float64 // Fixed reserve added to the return cost
}

// DefaultBatteryPolicy returns the stock constants: 0.1 per unit moved,
// return below 20, 50% margin plus 10 on the way home.
func DefaultBatteryPolicy() BatteryPolicy {
	return BatteryPolicy{
		EnergyPerUnit:       0.1,
		LowBatteryThreshold: 20.0,
		ReturnSafetyFactor:  1.5,
		ReturnReserve:       10.0,
	}
}

// Stats are the robot's accumulated counters.
type Stats struct {
	TotalDistance     float64 `json:"total_distance"`
	AreaCleaned       int     `json:"area_cleaned"`
	CleaningTime      float64 `json:"cleaning_time"`
	BatteryCycles     int     `json:"battery_cycles"`
	ErrorsEncountered int     `json:"errors"`
	StuckCount        int     `json:"stuck_count"`
}

// Robot is a cleaning robot with a continuous pose and a battery.
type Robot struct {
	Position        Pos
	BatteryCapacity float64
	BatteryLevel    float64 // Always within [0, BatteryCapacity]
	CleaningWidth   float64
	Speed           float64
	SensorRange     float64
	Heading         float64 // Radians
	State           RobotState
	Mode            CleaningMode
	Sensors         SensorData
	Stats           Stats
	Policy          BatteryPolicy

	dock    Pos
	hasDock bool

	cleaned map[Cell]struct{}
	visited map[Cell]struct{}
	history []Pos // Chronological, never empty
}

// NewRobot creates an idle robot at pos with a full 100-unit battery,
// 0.3 cleaning width, 0.2 speed and 2.0 sensor range.
func NewRobot(pos Pos) *Robot {
	return NewRobotWithParams(pos, 100.0, 0.3, 0.2, 2.0)
}

// NewRobotWithParams creates an idle robot with custom physical parameters.
// The battery starts full.
func NewRobotWithParams(pos Pos, capacity, cleaningWidth, speed, sensorRange float64) *Robot {
	return &Robot{
		Position:        pos,
		BatteryCapacity: capacity,
		BatteryLevel:    capacity,
		CleaningWidth:   cleaningWidth,
		Speed:           speed,
		SensorRange:     sensorRange,
		State:           StateIdle,
		Mode:            ModeAuto,
		Sensors:         NewSensorData(),
		Policy:          DefaultBatteryPolicy(),
		cleaned:         make(map[Cell]struct{}),
		visited:         make(map[Cell]struct{}),
		history:         []Pos{pos},
	}
}

// MoveBy displaces the robot by (dx, dy). It fails and enters StateError
// when the battery is already empty. Otherwise it records the new position,
// spends EnergyPerUnit per unit travelled and marks the occupied cell as
// visited and cleaned.
func (r *Robot) MoveBy(dx, dy float64) bool {
	if r.BatteryLevel <= 0 {
		r.State = StateError
		r.Stats.ErrorsEncountered++
		slog.Warn("cannot move: battery depleted",
			"x", r.Position.X, "y", r.Position.Y)
		return false
	}

	r.Position = Pos{X: r.Position.X + dx, Y: r.Position.Y + dy}
	r.history = append(r.history, r.Position)

	dist := math.Hypot(dx, dy)
	r.Stats.TotalDistance += dist
	r.BatteryLevel = math.Max(0, r.BatteryLevel-dist*r.Policy.EnergyPerUnit)

	cell := r.Position.ToCell()
	r.visited[cell] = struct{}{}
	r.cleaned[cell] = struct{}{}
	r.Stats.AreaCleaned = len(r.cleaned)

	return true
}

// FaceTowards points the heading along (dx, dy). A zero vector leaves it unchanged.
func (r *Robot) FaceTowards(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	r.Heading = math.Atan2(dy, dx)
}

// ShouldReturnToDock reports whether the robot should head home: the level
// is under the low threshold, or a known dock is further away than the
// battery covers with the safety margin and reserve. The return cost is a
// straight-line estimate that ignores obstacles.
func (r *Robot) ShouldReturnToDock() bool {
	if r.BatteryLevel < r.Policy.LowBatteryThreshold {
		return true
	}
	if r.hasDock {
		needed := r.Position.DistanceTo(r.dock)*r.Policy.EnergyPerUnit*r.Policy.ReturnSafetyFactor +
			r.Policy.ReturnReserve
		if r.BatteryLevel < needed {
			return true
		}
	}
	return false
}

// Charge enters StateCharging and adds rate to the battery, capped at
// capacity. It returns true once the battery is full; the cycle counter
// moves only on the call that fills it.
func (r *Robot) Charge(rate float64) bool {
	if r.State != StateCharging {
		r.State = StateCharging
	}

	wasFull := r.BatteryLevel >= r.BatteryCapacity
	r.BatteryLevel = math.Min(r.BatteryCapacity, r.BatteryLevel+rate)

	if r.BatteryLevel < r.BatteryCapacity {
		return false
	}
	if !wasFull {
		r.Stats.BatteryCycles++
		slog.Info("battery fully charged", "cycles", r.Stats.BatteryCycles)
	}
	return true
}

// SetDockPosition tells the robot where its dock is.
func (r *Robot) SetDockPosition(p Pos) {
	r.dock = p
	r.hasDock = true
	slog.Info("dock position set", "x", p.X, "y", p.Y)
}

// DockPosition returns the dock position, if known.
func (r *Robot) DockPosition() (Pos, bool) {
	return r.dock, r.hasDock
}

// BatteryPercentage returns the level as a share of capacity.
func (r *Robot) BatteryPercentage() float64 {
	if r.BatteryCapacity <= 0 {
		return 0
	}
	return r.BatteryLevel / r.BatteryCapacity * 100.0
}

// MarkStuck records that the robot could not make progress.
func (r *Robot) MarkStuck() {
	r.State = StateStuck
	r.Stats.StuckCount++
}

// ResetStatistics clears counters and cell sets. The current position
// becomes the only history entry.
func (r *Robot) ResetStatistics() {
	r.Stats = Stats{}
	clear(r.cleaned)
	clear(r.visited)
	r.history = []Pos{r.Position}
	slog.Info("statistics reset")
}

// Cell returns the grid cell the robot occupies.
func (r *Robot) Cell() Cell {
	return r.Position.ToCell()
}

// PathHistory returns a copy of every position visited, oldest first.
func (r *Robot) PathHistory() []Pos {
	return slices.Clone(r.history)
}

// CleanedCells returns the distinct cells cleaned, in no particular order.
func (r *Robot) CleanedCells() []Cell {
	return cellSet(r.cleaned)
}

// VisitedCells returns the distinct cells visited, in no particular order.
func (r *Robot) VisitedCells() []Cell {
	return cellSet(r.visited)
}

// HasCleaned reports whether the robot has cleaned a cell.
func (r *Robot) HasCleaned(c Cell) bool {
	_, ok := r.cleaned[c]
	return ok
}

func cellSet(m map[Cell]struct{}) []Cell {
	cells := make([]Cell, 0, len(m))
	for c := range m {
		cells = append(cells, c)
	}
	return cells
}

// Status is a read-only projection of the robot for external consumers.
type Status struct {
	Position     Pos          `json:"position"`
	BatteryLevel float64      `json:"battery_level"`
	State        RobotState   `json:"state"`
	Mode         CleaningMode `json:"mode"`
	Heading      float64      `json:"heading"`
	Sensors      SensorData   `json:"sensors"`
	Stats        Stats        `json:"stats"`
}

// Status returns a snapshot of the robot.
func (r *Robot) Status() Status {
	return Status{
		Position:     r.Position,
		BatteryLevel: r.BatteryLevel,
		State:        r.State,
		Mode:         r.Mode,
		Heading:      r.Heading,
		Sensors:      r.Sensors,
		Stats:        r.Stats,
	}
}
