package sim

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
)

// Frame is the state after one tick.
type Frame struct {
	Step     int             `json:"step"`
	Time     float64         `json:"time"`
	Position core.Pos        `json:"position"`
	Heading  float64         `json:"heading"`
	Battery  float64         `json:"battery"`
	State    core.RobotState `json:"state"`
	Coverage float64         `json:"coverage"`
	Cleaned  []core.Cell     `json:"cleaned,omitempty"` // Cells that became clean this tick
}

func (s *Simulator) record() {
	r := s.robot
	s.trace = append(s.trace, Frame{
		Step:     s.steps,
		Time:     s.env.SimTime,
		Position: r.Position,
		Heading:  r.Heading,
		Battery:  r.BatteryLevel,
		State:    r.State,
		Coverage: s.env.CoveragePercentage(),
		Cleaned:  slices.Clone(s.tickCleaned),
	})
}

// Trace returns the recorded frames. It is empty unless Config.Record is set.
func (s *Simulator) Trace() []Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.trace)
}

// ExportTrace writes the recorded frames to a JSON file
func (s *Simulator) ExportTrace(path string) error {
	data, err := json.MarshalIndent(s.Trace(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
