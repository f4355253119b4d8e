// Package sim drives a cleaning robot through a room tick by tick.
//
// The driver owns the room and the robot for the whole run. Each tick
// advances simulated time and applies one transition of the operating
// state machine:
//
//	Idle            -> Cleaning
//	Cleaning        -> ReturningToDock  when the battery policy says so
//	Charging        -> Cleaning         once the battery is full
//
// With Config.Navigate the robot also moves: it follows a coverage plan
// while Cleaning, routes to the dock with A* while ReturningToDock and
// starts Charging on arrival. Without it no state moves the robot, and
// ReturningToDock, Error and Stuck are sticky.
package sim

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"os"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/elektrokombinacija/robovac-sim/internal/algo"
	"github.com/elektrokombinacija/robovac-sim/internal/core"
)

// Config configures a simulation run.
type Config struct {
	// Run stops after this many ticks
	MaxSteps int

	// Simulated seconds per tick
	TickInterval float64

	// Battery added per tick while Charging
	ChargeRate float64

	// Move the robot along coverage and dock routes
	Navigate bool

	// Allow diagonal moves in A* routes
	AllowDiagonal bool

	// Halt once every Free cell is clean
	StopOnFullCoverage bool

	// Halt when the robot enters Error
	HaltOnError bool

	// Consecutive unreachable waypoints before the robot counts as stuck
	MaxStuckAttempts int

	// Seed for the random-walk planner
	Seed int64

	// Keep one Frame per tick
	Record bool

	// Defaults to slog.Default()
	Logger *slog.Logger
}

// DefaultConfig returns the baseline configuration: 10000 ticks of 0.1s,
// charging at 10 per tick, no navigation.
func DefaultConfig() Config {
	return Config{
		MaxSteps:         10000,
		TickInterval:     0.1,
		ChargeRate:       10.0,
		MaxStuckAttempts: 10,
		Seed:             42,
	}
}

// Simulator runs one robot in one room.
type Simulator struct {
	mu sync.Mutex

	config Config
	env    *core.Environment
	robot  *core.Robot
	pf     *algo.Pathfinder
	rng    *rand.Rand
	log    *slog.Logger
	runID  string

	steps int
	done  bool // Halted by the driver before MaxSteps

	// Navigation
	plan        []core.Cell // Coverage waypoints
	planIdx     int
	route       []core.Cell // Cells still to step through, next first
	homing      bool        // route leads to the dock
	finished    bool        // No reachable dirt left
	unreachable map[core.Cell]bool
	skips       int

	trace       []Frame
	tickCleaned []core.Cell // Cells cleaned during the current tick
}

// New creates a simulator over env and robot. A dock in the room is
// handed to the robot unless it already knows one.
func New(env *core.Environment, robot *core.Robot, config Config) *Simulator {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.MaxStuckAttempts <= 0 {
		config.MaxStuckAttempts = DefaultConfig().MaxStuckAttempts
	}

	runID := uuid.NewString()
	s := &Simulator{
		config:      config,
		env:         env,
		robot:       robot,
		pf:          algo.NewPathfinder(env),
		rng:         rand.New(rand.NewSource(config.Seed)),
		log:         logger.With("run_id", runID),
		runID:       runID,
		unreachable: make(map[core.Cell]bool),
	}

	if _, known := robot.DockPosition(); !known {
		if dock, ok := env.DockPosition(); ok {
			robot.SetDockPosition(dock.Pos())
		}
	}
	return s
}

// NewWalled creates a simulator in a walled width x height room with a
// default robot at start.
func NewWalled(width, height int, start core.Pos, config Config) (*Simulator, error) {
	env, err := core.NewWalledRoom(width, height)
	if err != nil {
		return nil, err
	}
	return New(env, core.NewRobot(start), config), nil
}

// StartPosition picks a starting cell: next to the dock if possible,
// else a random Free cell, else the room centre.
func StartPosition(env *core.Environment, rng *rand.Rand) core.Pos {
	if dock, ok := env.DockPosition(); ok {
		for _, d := range []core.Cell{
			{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
			{X: 1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1},
		} {
			c := core.Cell{X: dock.X + d.X, Y: dock.Y + d.Y}
			if env.IsValidPosition(c.X, c.Y) {
				return c.Pos()
			}
		}
	}

	var free []core.Cell
	for y := 0; y < env.Height(); y++ {
		for x := 0; x < env.Width(); x++ {
			if env.CellAt(x, y) == core.Free {
				free = append(free, core.Cell{X: x, Y: y})
			}
		}
	}
	if len(free) > 0 {
		return free[rng.Intn(len(free))].Pos()
	}
	return core.Cell{X: env.Width() / 2, Y: env.Height() / 2}.Pos()
}

// Robot returns the simulated robot.
func (s *Simulator) Robot() *core.Robot { return s.robot }

// Environment returns the simulated room.
func (s *Simulator) Environment() *core.Environment { return s.env }

// Config returns the run configuration.
func (s *Simulator) Config() Config { return s.config }

// RunID identifies this run in logs and results.
func (s *Simulator) RunID() string { return s.runID }

// Steps returns the number of ticks executed.
func (s *Simulator) Steps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

// Status returns the robot's status snapshot.
func (s *Simulator) Status() core.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.robot.Status()
}

// Run ticks until a halting condition or ctx is done. It always returns
// a result; Success is false only when the robot ended in Error.
func (s *Simulator) Run(ctx context.Context) Result {
	s.log.Info("simulation started",
		"max_steps", s.config.MaxSteps,
		"navigate", s.config.Navigate,
		"mode", s.robot.Mode)

	for {
		if err := ctx.Err(); err != nil {
			s.log.Warn("simulation cancelled", "steps", s.Steps(), "err", err)
			break
		}
		if !s.Step() {
			break
		}
	}

	res := s.Result()
	s.log.Info("simulation complete",
		"steps", res.Steps,
		"coverage", res.CoveragePercentage,
		"state", res.FinalState,
		"success", res.Success)
	return res
}

// Step executes one tick and reports whether the run should continue.
func (s *Simulator) Step() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step()
}

// step advances the simulation by one tick
func (s *Simulator) step() bool {
	s.steps++
	s.env.AdvanceTime(s.config.TickInterval)

	r := s.robot
	s.tickCleaned = s.tickCleaned[:0]
	prev := r.State

	switch r.State {
	case core.StateIdle:
		r.State = core.StateCleaning

	case core.StateCleaning:
		if r.ShouldReturnToDock() {
			s.log.Info("battery low, returning to dock", "battery", r.BatteryLevel)
			r.State = core.StateReturningToDock
			if s.config.Navigate {
				s.routeToDock()
			}
		} else if s.config.Navigate {
			r.Stats.CleaningTime += s.config.TickInterval
			s.clean()
		}

	case core.StateReturningToDock:
		if s.config.Navigate {
			s.followDockRoute()
		}

	case core.StateCharging:
		if r.Charge(s.config.ChargeRate) {
			if s.finished {
				s.log.Info("charged after full coverage, stopping")
				r.State = core.StateIdle
				s.done = true
			} else {
				s.log.Info("fully charged, resuming cleaning")
				r.State = core.StateCleaning
				s.route = nil
			}
		}
	}

	if r.State != prev {
		s.log.Debug("state change", "step", s.steps, "from", prev, "to", r.State)
	}
	if s.config.Record {
		s.record()
	}

	return !s.halted()
}

func (s *Simulator) halted() bool {
	switch {
	case s.steps >= s.config.MaxSteps:
		return true
	case s.done:
		return true
	case s.config.StopOnFullCoverage && s.env.CoveragePercentage() >= 100:
		return true
	case s.config.HaltOnError && s.robot.State == core.StateError:
		return true
	}
	return false
}

// clean moves one cell along the coverage plan.
func (s *Simulator) clean() {
	if len(s.route) == 0 && !s.routeToNextWaypoint() {
		return
	}
	s.advance()
}

// routeToNextWaypoint sets route toward the next dirty reachable
// waypoint, replanning once if the current plan runs out.
func (s *Simulator) routeToNextWaypoint() bool {
	r := s.robot
	replanned := false

	for {
		if s.planIdx >= len(s.plan) {
			if replanned {
				s.finishCoverage()
				return false
			}
			s.plan, s.planIdx = s.coveragePlan(), 0
			replanned = true
			continue
		}

		wp := s.plan[s.planIdx]
		s.planIdx++
		if !s.env.IsDirty(wp.X, wp.Y) || s.unreachable[wp] {
			continue
		}

		here := r.Cell()
		if wp == here {
			s.cleanCell(wp)
			continue
		}

		path := s.pf.FindPath(here, wp, s.config.AllowDiagonal)
		if path == nil {
			s.unreachable[wp] = true
			s.skips++
			if s.skips >= s.config.MaxStuckAttempts {
				s.skips = 0
				r.Stats.StuckCount++
				s.log.Warn("robot stuck, skipping waypoints", "x", here.X, "y", here.Y)
				if len(algo.ValidNeighbours(s.env, here)) == 0 {
					r.State = core.StateStuck
					return false
				}
			}
			continue
		}

		s.skips = 0
		s.route = path[1:]
		return true
	}
}

// coveragePlan returns the waypoints of the robot's cleaning mode that
// still need cleaning. When the mode's pattern has nothing left a row
// sweep picks up the rest.
func (s *Simulator) coveragePlan() []core.Cell {
	keep := func(c core.Cell) bool {
		return s.env.CellAt(c.X, c.Y) == core.Free && s.env.IsDirty(c.X, c.Y) && !s.unreachable[c]
	}

	here := s.robot.Cell()
	plan := slices.DeleteFunc(algo.CoveragePath(s.env, s.robot.Mode, here, s.rng),
		func(c core.Cell) bool { return !keep(c) })
	if len(plan) == 0 {
		plan = slices.DeleteFunc(algo.ZigzagPath(s.env, true),
			func(c core.Cell) bool { return !keep(c) })
	}
	return plan
}

func (s *Simulator) finishCoverage() {
	s.finished = true
	s.route = nil
	s.log.Info("no reachable dirt left", "coverage", s.env.CoveragePercentage())

	if _, ok := s.robot.DockPosition(); ok {
		s.robot.State = core.StateReturningToDock
		if s.routeToDock() {
			return
		}
	}
	s.robot.State = core.StateIdle
	s.done = true
}

// routeToDock plans the A* route home. Without a dock or a route the
// robot keeps its state.
func (s *Simulator) routeToDock() bool {
	s.route, s.homing = nil, false

	dock, ok := s.robot.DockPosition()
	if !ok {
		s.log.Warn("no dock known")
		return false
	}

	path := s.pf.FindPath(s.robot.Cell(), dock.ToCell(), s.config.AllowDiagonal)
	if path == nil {
		s.log.Warn("no route to dock", "dock_x", dock.X, "dock_y", dock.Y)
		return false
	}
	s.route, s.homing = path[1:], true
	return true
}

func (s *Simulator) followDockRoute() {
	if !s.homing {
		return
	}
	if len(s.route) > 0 && !s.advance() {
		return
	}
	if len(s.route) == 0 {
		s.homing = false
		s.robot.State = core.StateCharging
		s.log.Info("reached dock", "battery", s.robot.BatteryLevel)
	}
}

// advance moves the robot onto the next route cell and cleans it.
func (s *Simulator) advance() bool {
	next := s.route[0]
	r := s.robot

	dx := float64(next.X) - r.Position.X
	dy := float64(next.Y) - r.Position.Y
	r.FaceTowards(dx, dy)
	if !r.MoveBy(dx, dy) {
		s.route = nil
		s.homing = false
		return false
	}
	s.cleanCell(next)
	s.route = s.route[1:]
	return true
}

func (s *Simulator) cleanCell(c core.Cell) {
	if s.env.IsDirty(c.X, c.Y) {
		s.tickCleaned = append(s.tickCleaned, c)
	}
	s.env.CleanCell(c.X, c.Y)
}

// Result is the summary of a run.
type Result struct {
	RunID              string          `json:"run_id"`
	Steps              int             `json:"steps"`
	Success            bool            `json:"success"`
	CoveragePercentage float64         `json:"coverage_percentage"`
	TotalDistance      float64         `json:"total_distance"`
	BatteryCycles      int             `json:"battery_cycles"`
	FinalState         core.RobotState `json:"final_state"`
	SimTime            float64         `json:"sim_time"`
	AreaCleaned        int             `json:"area_cleaned"`
	CleaningTime       float64         `json:"cleaning_time"`
	StuckCount         int             `json:"stuck_count"`
	Errors             int             `json:"errors"`
}

// Result summarises the run so far.
func (s *Simulator) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.robot
	return Result{
		RunID:              s.runID,
		Steps:              s.steps,
		Success:            r.State != core.StateError,
		CoveragePercentage: s.env.CoveragePercentage(),
		TotalDistance:      r.Stats.TotalDistance,
		BatteryCycles:      r.Stats.BatteryCycles,
		FinalState:         r.State,
		SimTime:            s.env.SimTime,
		AreaCleaned:        r.Stats.AreaCleaned,
		CleaningTime:       r.Stats.CleaningTime,
		StuckCount:         r.Stats.StuckCount,
		Errors:             r.Stats.ErrorsEncountered,
	}
}

// ExportResult writes a result to a JSON file
func ExportResult(path string, res Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
