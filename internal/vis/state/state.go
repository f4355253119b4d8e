// Package state holds the replay model shared by the viewer widgets.
package state

import (
	"sort"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
	"github.com/elektrokombinacija/robovac-sim/internal/sim"
)

// State is a recorded run plus the playback clock over it.
type State struct {
	Layout   [][]core.CellType
	Frames   []sim.Frame
	Start    core.Pos // Robot position before the first tick
	Result   sim.Result
	Playback *PlaybackState

	cleanedAt map[core.Cell]int // Frame index where each cell became clean
}

// New builds the replay state for a finished run. Frames must be in step
// order, as produced by a recording simulator.
func New(layout [][]core.CellType, frames []sim.Frame, start core.Pos, res sim.Result, tick float64) *State {
	s := &State{
		Layout:    layout,
		Frames:    frames,
		Start:     start,
		Result:    res,
		cleanedAt: make(map[core.Cell]int),
	}
	for i, f := range frames {
		for _, c := range f.Cleaned {
			if _, ok := s.cleanedAt[c]; !ok {
				s.cleanedAt[c] = i
			}
		}
	}

	maxTime := 0.0
	if len(frames) > 0 {
		maxTime = frames[len(frames)-1].Time
	}
	s.Playback = NewPlaybackState(maxTime, tick)
	return s
}

// Width and Height of the room in cells.
func (s *State) Width() int {
	if len(s.Layout) == 0 {
		return 0
	}
	return len(s.Layout[0])
}

func (s *State) Height() int { return len(s.Layout) }

// FrameIndex returns the last frame at or before the playback time, or -1
// before the first tick.
func (s *State) FrameIndex() int {
	t := s.Playback.CurrentTime + 1e-9
	return sort.Search(len(s.Frames), func(i int) bool { return s.Frames[i].Time > t }) - 1
}

// CurrentFrame returns the frame at the playback time.
func (s *State) CurrentFrame() (sim.Frame, bool) {
	i := s.FrameIndex()
	if i < 0 {
		return sim.Frame{}, false
	}
	return s.Frames[i], true
}

// Cleaned reports whether c had been cleaned by frame index i.
func (s *State) Cleaned(c core.Cell, i int) bool {
	at, ok := s.cleanedAt[c]
	return ok && at <= i
}

// Position returns the robot position at the playback time, interpolated
// linearly between frames.
func (s *State) Position() core.Pos {
	if len(s.Frames) == 0 {
		return s.Start
	}
	t := s.Playback.CurrentTime
	i := s.FrameIndex()
	if i >= len(s.Frames)-1 {
		return s.Frames[len(s.Frames)-1].Position
	}

	from, t0 := s.Start, 0.0
	if i >= 0 {
		from, t0 = s.Frames[i].Position, s.Frames[i].Time
	}
	to := s.Frames[i+1]
	dt := to.Time - t0
	if dt <= 0 {
		return to.Position
	}
	alpha := min(max((t-t0)/dt, 0), 1)
	return core.Pos{
		X: from.X + alpha*(to.Position.X-from.X),
		Y: from.Y + alpha*(to.Position.Y-from.Y),
	}
}

// Trail returns at most n positions leading up to the current one,
// oldest first, with repeated positions collapsed. n <= 0 means all.
func (s *State) Trail(n int) []core.Pos {
	trail := []core.Pos{s.Start}
	push := func(p core.Pos) {
		if trail[len(trail)-1] != p {
			trail = append(trail, p)
		}
	}
	for _, f := range s.Frames[:s.FrameIndex()+1] {
		push(f.Position)
	}
	push(s.Position())

	if n > 0 && len(trail) > n {
		trail = trail[len(trail)-n:]
	}
	return trail
}
