// Package core defines the domain model of the cleaning-robot simulation:
// the room grid, its dirt overlay, and the robot with its battery.
package core

import "fmt"

// CellType classifies the static terrain of one grid cell.
type CellType uint8

const (
	Free     CellType = iota // Floor that can be cleaned
	Obstacle                 // Walls and furniture
	Cliff                    // Stairs and drops
	Dock                     // Charging dock
)

func (c CellType) String() string {
	if int(c) >= len(cellTypeNames) {
		return fmt.Sprintf("CellType(%d)", uint8(c))
	}
	return cellTypeNames[c]
}

var cellTypeNames = [...]string{"Free", "Obstacle", "Cliff", "Dock"}

// DecodeCellType maps a raw layout code to a cell type.
// Unknown codes decode to Free.
func DecodeCellType(code uint8) CellType {
	switch CellType(code) {
	case Free, Obstacle, Cliff, Dock:
		return CellType(code)
	default:
		return Free
	}
}

// Traversable reports whether a robot may occupy a cell of this type.
func (c CellType) Traversable() bool {
	return c == Free || c == Dock
}

// RobotState is the robot's top-level operating state.
type RobotState int

const (
	StateIdle RobotState = iota
	StateCleaning
	StateReturningToDock
	StateCharging
	StateError
	StateStuck
)

var robotStateNames = [...]string{"idle", "cleaning", "returning_to_dock", "charging", "error", "stuck"}

func (s RobotState) String() string {
	if s < 0 || int(s) >= len(robotStateNames) {
		return fmt.Sprintf("RobotState(%d)", int(s))
	}
	return robotStateNames[s]
}

// MarshalText encodes the state by name.
func (s RobotState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *RobotState) UnmarshalText(b []byte) error {
	for i, name := range robotStateNames {
		if name == string(b) {
			*s = RobotState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown robot state %q", b)
}

// CleaningMode selects the traversal strategy used while cleaning.
type CleaningMode int

const (
	ModeAuto CleaningMode = iota
	ModeSpot
	ModeEdge
	ModeSpiral
	ModeZigzag
	ModeWallFollow
	ModeRandom
)

var cleaningModeNames = [...]string{"auto", "spot", "edge", "spiral", "zigzag", "wall_follow", "random"}

func (m CleaningMode) String() string {
	if m < 0 || int(m) >= len(cleaningModeNames) {
		return fmt.Sprintf("CleaningMode(%d)", int(m))
	}
	return cleaningModeNames[m]
}

// ParseCleaningMode looks up a cleaning mode by name.
func ParseCleaningMode(name string) (CleaningMode, error) {
	for i, n := range cleaningModeNames {
		if n == name {
			return CleaningMode(i), nil
		}
	}
	return ModeAuto, fmt.Errorf("unknown cleaning mode %q", name)
}

// MarshalText encodes the mode by name.
func (m CleaningMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *CleaningMode) UnmarshalText(b []byte) error {
	mode, err := ParseCleaningMode(string(b))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
