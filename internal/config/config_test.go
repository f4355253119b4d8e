package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	src := `
room:
  type: predefined
  name: corridor
robot:
  mode: spiral
  start: null
battery:
  low_threshold: 30
simulation:
  max_steps: 500
  navigate: true
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "corridor", cfg.Room.Name)
	assert.Equal(t, "spiral", cfg.Robot.Mode)
	assert.Nil(t, cfg.Robot.Start)
	assert.Equal(t, 30.0, cfg.Battery.LowThreshold)
	assert.Equal(t, 0.1, cfg.Battery.EnergyPerUnit)
	assert.Equal(t, 500, cfg.Simulation.MaxSteps)
	assert.Equal(t, 0.1, cfg.Simulation.TickInterval)
	assert.True(t, cfg.Simulation.Navigate)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("room: [unclosed"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := Defaults()
	cfg.Room.Width = 12
	cfg.Robot.Start = &core.Pos{X: 3, Y: 4}
	cfg.Simulation.AllowDiagonal = true
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Room.Width = 0 }},
		{"unknown room type", func(c *Config) { c.Room.Type = "castle" }},
		{"predefined without name", func(c *Config) { c.Room.Type, c.Room.Name = "predefined", "" }},
		{"file without path", func(c *Config) { c.Room.Type = "file" }},
		{"bad mode", func(c *Config) { c.Robot.Mode = "turbo" }},
		{"no capacity", func(c *Config) { c.Robot.BatteryCapacity = 0 }},
		{"zero steps", func(c *Config) { c.Simulation.MaxSteps = 0 }},
		{"zero tick", func(c *Config) { c.Simulation.TickInterval = 0 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Defaults()
	cfg.Room.Width = 0
	assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidDimensions)
}

func TestBuildFromDefaults(t *testing.T) {
	cfg := Defaults()
	cfg.Robot.Mode = "zigzag"
	cfg.Battery.LowThreshold = 25

	s, err := cfg.NewSimulator(nil)
	require.NoError(t, err)

	assert.Equal(t, 30, s.Environment().Width())
	r := s.Robot()
	assert.Equal(t, core.Pos{X: 15, Y: 15}, r.Position)
	assert.Equal(t, core.ModeZigzag, r.Mode)
	assert.Equal(t, 25.0, r.Policy.LowBatteryThreshold)
	assert.Equal(t, 10000, s.Config().MaxSteps)
}

func TestBuildPredefinedPlacesRobotByDock(t *testing.T) {
	cfg := Defaults()
	cfg.Room.Type = "predefined"
	cfg.Room.Name = "stairs"
	cfg.Robot.Start = nil

	env, err := cfg.BuildEnvironment()
	require.NoError(t, err)
	dock, ok := env.DockPosition()
	require.True(t, ok)

	r, err := cfg.BuildRobot(env)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Cell().Chebyshev(dock))
}

func TestBuildFromLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.txt")
	require.NoError(t, os.WriteFile(path, []byte("#####\n#D..#\n#####\n"), 0644))

	cfg := Defaults()
	cfg.Room.Type = "file"
	cfg.Room.LayoutFile = path

	env, err := cfg.BuildEnvironment()
	require.NoError(t, err)
	assert.Equal(t, 5, env.Width())
	assert.Equal(t, 3, env.Height())

	cfg.Room.LayoutFile = filepath.Join(t.TempDir(), "missing.txt")
	_, err = cfg.BuildEnvironment()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	cfg := Defaults()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
