package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
	"github.com/elektrokombinacija/robovac-sim/internal/sim"
)

func replay() *State {
	layout := [][]core.CellType{
		{core.Obstacle, core.Obstacle, core.Obstacle, core.Obstacle},
		{core.Obstacle, core.Free, core.Free, core.Obstacle},
		{core.Obstacle, core.Obstacle, core.Obstacle, core.Obstacle},
	}
	frames := []sim.Frame{
		{Step: 1, Time: 1, Position: core.Pos{X: 1.5, Y: 1.5}, Cleaned: []core.Cell{{X: 1, Y: 1}}},
		{Step: 2, Time: 2, Position: core.Pos{X: 2.5, Y: 1.5}, Cleaned: []core.Cell{{X: 2, Y: 1}}},
		{Step: 3, Time: 3, Position: core.Pos{X: 2.5, Y: 1.5}},
	}
	return New(layout, frames, core.Pos{X: 1.5, Y: 1.5}, sim.Result{Steps: 3}, 1)
}

func TestNewState(t *testing.T) {
	s := replay()
	assert.Equal(t, 4, s.Width())
	assert.Equal(t, 3, s.Height())
	assert.Equal(t, 3.0, s.Playback.MaxTime)
	assert.Equal(t, 1.0, s.Playback.Tick)
	assert.False(t, s.Playback.Playing)

	empty := New(nil, nil, core.Pos{}, sim.Result{}, 0)
	assert.Equal(t, 0, empty.Width())
	assert.Equal(t, 0.0, empty.Playback.MaxTime)
	assert.Equal(t, 0.1, empty.Playback.Tick)
	assert.Equal(t, core.Pos{}, empty.Position())
}

func TestFrameIndex(t *testing.T) {
	s := replay()

	_, ok := s.CurrentFrame()
	assert.False(t, ok)
	assert.Equal(t, -1, s.FrameIndex())

	tests := []struct {
		at   float64
		want int
	}{
		{0.5, -1},
		{1, 0},
		{1.9, 0},
		{2, 1},
		{3, 2},
	}
	for _, tt := range tests {
		s.Playback.SetTime(tt.at)
		assert.Equal(t, tt.want, s.FrameIndex(), "time %v", tt.at)
	}

	f, ok := s.CurrentFrame()
	require.True(t, ok)
	assert.Equal(t, 3, f.Step)
}

func TestCleaned(t *testing.T) {
	s := replay()
	a, b := core.Cell{X: 1, Y: 1}, core.Cell{X: 2, Y: 1}

	assert.False(t, s.Cleaned(a, -1))
	assert.True(t, s.Cleaned(a, 0))
	assert.False(t, s.Cleaned(b, 0))
	assert.True(t, s.Cleaned(b, 1))
	assert.False(t, s.Cleaned(core.Cell{X: 0, Y: 0}, 2))
}

func TestPositionInterpolates(t *testing.T) {
	s := replay()

	s.Playback.SetTime(0)
	assert.Equal(t, core.Pos{X: 1.5, Y: 1.5}, s.Position())

	s.Playback.SetTime(1.5)
	assert.InDelta(t, 2.0, s.Position().X, 1e-9)
	assert.InDelta(t, 1.5, s.Position().Y, 1e-9)

	s.Playback.SetTime(3)
	assert.Equal(t, core.Pos{X: 2.5, Y: 1.5}, s.Position())
}

func TestTrail(t *testing.T) {
	s := replay()

	assert.Equal(t, []core.Pos{{X: 1.5, Y: 1.5}}, s.Trail(0))

	s.Playback.SetTime(3)
	assert.Equal(t, []core.Pos{{X: 1.5, Y: 1.5}, {X: 2.5, Y: 1.5}}, s.Trail(0))
	assert.Equal(t, []core.Pos{{X: 2.5, Y: 1.5}}, s.Trail(1))

	s.Playback.SetTime(1.5)
	trail := s.Trail(0)
	require.Len(t, trail, 2)
	assert.InDelta(t, 2.0, trail[1].X, 1e-9)
}

func TestPlaybackControls(t *testing.T) {
	p := NewPlaybackState(10, 0.5)
	assert.Equal(t, float64(DefaultSpeed), p.Speed)

	p.StepForward()
	assert.Equal(t, 0.5, p.CurrentTime)
	p.StepBack()
	p.StepBack()
	assert.Equal(t, 0.0, p.CurrentTime)

	p.SetTime(42)
	assert.Equal(t, 10.0, p.CurrentTime)
	assert.Equal(t, 1.0, p.Progress())

	p.TogglePlay()
	assert.True(t, p.Playing)
	assert.Equal(t, 0.0, p.CurrentTime, "playing from the end rewinds")
	p.TogglePlay()
	assert.False(t, p.Playing)

	p.SetTime(4)
	p.Reset()
	assert.Equal(t, 0.0, p.CurrentTime)
	assert.Equal(t, 0.0, NewPlaybackState(0, 1).Progress())
}

func TestPlaybackSpeed(t *testing.T) {
	p := NewPlaybackState(10, 1)
	p.SetSpeed(1000)
	assert.Equal(t, float64(MaxSpeed), p.Speed)
	p.SetSpeed(0)
	assert.Equal(t, MinSpeed, p.Speed)

	p.SetSpeed(2)
	p.Faster()
	assert.Equal(t, 4.0, p.Speed)
	p.Slower()
	p.Slower()
	assert.Equal(t, 1.0, p.Speed)
}

func TestPlaybackAdvance(t *testing.T) {
	p := NewPlaybackState(10, 1)
	p.SetSpeed(2)
	base := time.Now()

	p.advanceTo(base.Add(time.Second))
	assert.Equal(t, 0.0, p.CurrentTime, "paused clock does not move")

	p.Playing = true
	p.lastUpdate = base
	p.advanceTo(base.Add(time.Second))
	assert.InDelta(t, 2.0, p.CurrentTime, 1e-9)

	p.advanceTo(base.Add(10 * time.Second))
	assert.Equal(t, 10.0, p.CurrentTime)
	assert.False(t, p.Playing)
}
