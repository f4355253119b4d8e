package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvironmentRejectsZeroDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		_, err := NewEnvironment(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrInvalidDimensions, "NewEnvironment(%d, %d)", dims[0], dims[1])
	}
}

func TestFromLayoutRejectsRagged(t *testing.T) {
	_, err := FromLayout([][]CellType{{Free, Free}, {Free}})
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = FromLayout(nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestWalledRoomBorders(t *testing.T) {
	for _, dims := range [][2]int{{3, 3}, {5, 4}, {10, 7}} {
		w, h := dims[0], dims[1]
		env, err := NewWalledRoom(w, h)
		require.NoError(t, err)

		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				border := x == 0 || y == 0 || x == w-1 || y == h-1
				want := Free
				if border {
					want = Obstacle
				}
				if got := env.CellAt(x, y); got != want {
					t.Errorf("%dx%d room: CellAt(%d, %d) = %v, want %v", w, h, x, y, got, want)
				}
			}
		}
		_, ok := env.DockPosition()
		assert.False(t, ok)
	}
}

func TestIsValidPosition(t *testing.T) {
	env, err := FromLayout([][]CellType{
		{Free, Obstacle},
		{Cliff, Dock},
	})
	require.NoError(t, err)

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{1, 0, false},
		{0, 1, false},
		{1, 1, true},
		{-1, 0, false},
		{0, -1, false},
		{2, 0, false},
		{0, 2, false},
	}

	for _, tt := range tests {
		if got := env.IsValidPosition(tt.x, tt.y); got != tt.want {
			t.Errorf("IsValidPosition(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFromLayoutFirstDockWins(t *testing.T) {
	env, err := FromLayout([][]CellType{
		{Free, Free, Free},
		{Free, Free, Dock},
		{Dock, Free, Free},
	})
	require.NoError(t, err)

	dock, ok := env.DockPosition()
	require.True(t, ok)
	assert.Equal(t, Cell{X: 2, Y: 1}, dock)
}

func TestFromCodesUnknownIsFree(t *testing.T) {
	env, err := FromCodes([][]uint8{{0, 1, 9}, {2, 3, 200}})
	require.NoError(t, err)

	assert.Equal(t, Free, env.CellAt(2, 0))
	assert.Equal(t, Free, env.CellAt(2, 1))
	assert.Equal(t, Cliff, env.CellAt(0, 1))
	dock, ok := env.DockPosition()
	require.True(t, ok)
	assert.Equal(t, Cell{X: 1, Y: 1}, dock)
}

func TestOutOfBoundsLeniency(t *testing.T) {
	env, err := NewEnvironment(3, 3)
	require.NoError(t, err)

	env.CleanCell(-1, 0)
	env.CleanCell(3, 3)
	assert.False(t, env.IsDirty(-1, 0))
	assert.False(t, env.IsDirty(10, 10))
	assert.Equal(t, Obstacle, env.CellAt(5, 5))
	assert.Equal(t, 0.0, env.CoveragePercentage())
}

func TestCoveragePercentage(t *testing.T) {
	env, err := NewWalledRoom(5, 5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, env.CoveragePercentage())

	env.CleanCell(1, 1)
	assert.InDelta(t, 100.0/9.0, env.CoveragePercentage(), 1e-9)

	// Cleaning walls does not count.
	env.CleanCell(0, 0)
	assert.InDelta(t, 100.0/9.0, env.CoveragePercentage(), 1e-9)

	for y := 1; y < 4; y++ {
		for x := 1; x < 4; x++ {
			env.CleanCell(x, y)
		}
	}
	assert.Equal(t, 100.0, env.CoveragePercentage())
}

func TestCoverageNoFreeCells(t *testing.T) {
	env, err := FromLayout([][]CellType{{Obstacle, Cliff}, {Dock, Obstacle}})
	require.NoError(t, err)
	assert.Equal(t, 100.0, env.CoveragePercentage())
}

func TestResetKeepsLayout(t *testing.T) {
	env, err := FromLayout([][]CellType{{Free, Dock}, {Obstacle, Free}})
	require.NoError(t, err)

	env.CleanCell(0, 0)
	env.AdvanceTime(0.1)
	env.AdvanceTime(0.2)
	assert.InDelta(t, 0.3, env.SimTime, 1e-12)

	env.Reset()
	assert.True(t, env.IsDirty(0, 0))
	assert.Equal(t, 0.0, env.SimTime)
	assert.Equal(t, Obstacle, env.CellAt(0, 1))
	dock, ok := env.DockPosition()
	require.True(t, ok)
	assert.Equal(t, Cell{X: 1, Y: 0}, dock)
}

func TestCloneIsIndependent(t *testing.T) {
	env, err := NewWalledRoom(4, 4)
	require.NoError(t, err)

	c := env.Clone()
	c.CleanCell(1, 1)
	assert.True(t, env.IsDirty(1, 1))
	assert.False(t, c.IsDirty(1, 1))
}

func TestEnvironmentStats(t *testing.T) {
	env, err := FromLayout([][]CellType{
		{Obstacle, Obstacle, Obstacle},
		{Obstacle, Free, Dock},
		{Cliff, Free, Obstacle},
	})
	require.NoError(t, err)

	s := env.Stats()
	assert.Equal(t, 9, s.TotalArea)
	assert.Equal(t, 2, s.FreeCells)
	assert.Equal(t, 5, s.Obstacles)
	assert.Equal(t, 1, s.Cliffs)
	require.NotNil(t, s.DockPosition)
	assert.Equal(t, Cell{X: 2, Y: 1}, *s.DockPosition)
}
