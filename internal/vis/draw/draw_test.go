package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
)

func TestCellColor(t *testing.T) {
	assert.Equal(t, ColorDirty, CellColor(core.Free, false))
	assert.Equal(t, ColorClean, CellColor(core.Free, true))
	assert.Equal(t, ColorObstacle, CellColor(core.Obstacle, true))
	assert.Equal(t, ColorCliff, CellColor(core.Cliff, false))
	assert.Equal(t, ColorDock, CellColor(core.Dock, true))
}

func TestStateColor(t *testing.T) {
	assert.Equal(t, ColorRobotIdle, StateColor(core.StateIdle))
	assert.Equal(t, ColorRobotCleaning, StateColor(core.StateCleaning))
	assert.Equal(t, ColorRobotReturning, StateColor(core.StateReturningToDock))
	assert.Equal(t, ColorRobotCharging, StateColor(core.StateCharging))
	assert.Equal(t, ColorRobotFault, StateColor(core.StateError))
	assert.Equal(t, ColorRobotFault, StateColor(core.StateStuck))
}
