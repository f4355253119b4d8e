package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
	"github.com/elektrokombinacija/robovac-sim/internal/sim"
	"github.com/elektrokombinacija/robovac-sim/internal/vis/state"
)

func TestReadout(t *testing.T) {
	frames := []sim.Frame{
		{Step: 1, Time: 0.1, State: core.StateCleaning, Battery: 99.9, Coverage: 12.5},
	}
	st := state.New(nil, frames, core.Pos{}, sim.Result{RunID: "0123456789abcdef"}, 0.1)

	assert.Equal(t, "run 01234567  step 0", Readout(st))

	st.Playback.SetTime(0.1)
	assert.Equal(t, "run 01234567  step 1  cleaning  battery 99.9  coverage 12.5%", Readout(st))
}
