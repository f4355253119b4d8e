// Package config loads run settings from YAML and turns them into a
// ready simulator.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
	"github.com/elektrokombinacija/robovac-sim/internal/layout"
	"github.com/elektrokombinacija/robovac-sim/internal/sim"
)

// Config is the top-level run configuration.
type Config struct {
	Room       RoomConfig       `yaml:"room"`
	Robot      RobotConfig      `yaml:"robot"`
	Battery    BatteryConfig    `yaml:"battery"`
	Simulation SimulationConfig `yaml:"simulation"`
	Log        LogConfig        `yaml:"log"`
}

// RoomConfig selects the room layout.
type RoomConfig struct {
	Type       string `yaml:"type"` // "walled", "predefined" or "file"
	Name       string `yaml:"name"` // Predefined room name
	LayoutFile string `yaml:"layout_file"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Seed       int64  `yaml:"seed"`
}

// RobotConfig defines the robot's physical parameters.
type RobotConfig struct {
	Start           *core.Pos `yaml:"start"` // nil = next to the dock
	BatteryCapacity float64   `yaml:"battery_capacity"`
	CleaningWidth   float64   `yaml:"cleaning_width"`
	Speed           float64   `yaml:"speed"`
	SensorRange     float64   `yaml:"sensor_range"`
	Mode            string    `yaml:"mode"`
}

// BatteryConfig defines the energy policy.
type BatteryConfig struct {
	EnergyPerUnit      float64 `yaml:"energy_per_unit"`
	LowThreshold       float64 `yaml:"low_threshold"`
	ReturnSafetyFactor float64 `yaml:"return_safety_factor"`
	ReturnReserve      float64 `yaml:"return_reserve"`
}

// SimulationConfig mirrors sim.Config.
type SimulationConfig struct {
	MaxSteps           int     `yaml:"max_steps"`
	TickInterval       float64 `yaml:"tick_interval"`
	ChargeRate         float64 `yaml:"charge_rate"`
	Navigate           bool    `yaml:"navigate"`
	AllowDiagonal      bool    `yaml:"allow_diagonal"`
	StopOnFullCoverage bool    `yaml:"stop_on_full_coverage"`
	HaltOnError        bool    `yaml:"halt_on_error"`
	MaxStuckAttempts   int     `yaml:"max_stuck_attempts"`
	Seed               int64   `yaml:"seed"`
	Record             bool    `yaml:"record"`
}

// LogConfig defines log output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // "text" or "json"
}

// Defaults returns a Config for the stock 30x30 walled room.
func Defaults() *Config {
	sc := sim.DefaultConfig()
	bp := core.DefaultBatteryPolicy()
	return &Config{
		Room: RoomConfig{
			Type:   "walled",
			Name:   "furnished",
			Width:  30,
			Height: 30,
			Seed:   42,
		},
		Robot: RobotConfig{
			Start:           &core.Pos{X: 15, Y: 15},
			BatteryCapacity: 100.0,
			CleaningWidth:   0.3,
			Speed:           0.2,
			SensorRange:     2.0,
			Mode:            core.ModeAuto.String(),
		},
		Battery: BatteryConfig{
			EnergyPerUnit:      bp.EnergyPerUnit,
			LowThreshold:       bp.LowBatteryThreshold,
			ReturnSafetyFactor: bp.ReturnSafetyFactor,
			ReturnReserve:      bp.ReturnReserve,
		},
		Simulation: SimulationConfig{
			MaxSteps:         sc.MaxSteps,
			TickInterval:     sc.TickInterval,
			ChargeRate:       sc.ChargeRate,
			MaxStuckAttempts: sc.MaxStuckAttempts,
			Seed:             sc.Seed,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML config file. If the file doesn't exist, defaults are used.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	switch c.Room.Type {
	case "walled":
		check(c.Room.Width > 0 && c.Room.Height > 0, "room: %dx%d: %w", c.Room.Width, c.Room.Height, core.ErrInvalidDimensions)
	case "predefined":
		check(c.Room.Name != "", "room: predefined room needs a name")
	case "file":
		check(c.Room.LayoutFile != "", "room: layout_file is required for type file")
	default:
		check(false, "room: unknown type %q", c.Room.Type)
	}

	check(c.Robot.BatteryCapacity > 0, "robot: battery_capacity must be positive")
	if _, err := core.ParseCleaningMode(c.Robot.Mode); err != nil {
		errs = append(errs, fmt.Errorf("robot: %w", err))
	}

	check(c.Battery.EnergyPerUnit >= 0, "battery: energy_per_unit must not be negative")
	check(c.Battery.ReturnSafetyFactor >= 0, "battery: return_safety_factor must not be negative")

	check(c.Simulation.MaxSteps > 0, "simulation: max_steps must be positive")
	check(c.Simulation.TickInterval > 0, "simulation: tick_interval must be positive")
	check(c.Simulation.ChargeRate > 0, "simulation: charge_rate must be positive")

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}
	check(c.Log.Format == "text" || c.Log.Format == "json", "log: unknown format %q", c.Log.Format)

	return errors.Join(errs...)
}

// BuildEnvironment constructs the configured room.
func (c *Config) BuildEnvironment() (*core.Environment, error) {
	switch c.Room.Type {
	case "walled":
		return core.NewWalledRoom(c.Room.Width, c.Room.Height)
	case "predefined":
		g, err := layout.Predefined(c.Room.Name, rand.New(rand.NewSource(c.Room.Seed)))
		if err != nil {
			return nil, err
		}
		return core.FromLayout(g)
	case "file":
		f, err := os.Open(c.Room.LayoutFile)
		if err != nil {
			return nil, fmt.Errorf("open layout: %w", err)
		}
		defer f.Close()
		g, err := layout.ParseASCII(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Room.LayoutFile, err)
		}
		return core.FromLayout(g)
	default:
		return nil, fmt.Errorf("unknown room type %q", c.Room.Type)
	}
}

// BuildRobot creates the configured robot in env. Without a start
// position it is placed next to the dock.
func (c *Config) BuildRobot(env *core.Environment) (*core.Robot, error) {
	mode, err := core.ParseCleaningMode(c.Robot.Mode)
	if err != nil {
		return nil, err
	}

	start := sim.StartPosition(env, rand.New(rand.NewSource(c.Room.Seed)))
	if c.Robot.Start != nil {
		start = *c.Robot.Start
	}

	r := core.NewRobotWithParams(start, c.Robot.BatteryCapacity,
		c.Robot.CleaningWidth, c.Robot.Speed, c.Robot.SensorRange)
	r.Mode = mode
	r.Policy = core.BatteryPolicy{
		EnergyPerUnit:       c.Battery.EnergyPerUnit,
		LowBatteryThreshold: c.Battery.LowThreshold,
		ReturnSafetyFactor:  c.Battery.ReturnSafetyFactor,
		ReturnReserve:       c.Battery.ReturnReserve,
	}
	return r, nil
}

// SimConfig converts the simulation section.
func (c *Config) SimConfig(logger *slog.Logger) sim.Config {
	s := c.Simulation
	return sim.Config{
		MaxSteps:           s.MaxSteps,
		TickInterval:       s.TickInterval,
		ChargeRate:         s.ChargeRate,
		Navigate:           s.Navigate,
		AllowDiagonal:      s.AllowDiagonal,
		StopOnFullCoverage: s.StopOnFullCoverage,
		HaltOnError:        s.HaltOnError,
		MaxStuckAttempts:   s.MaxStuckAttempts,
		Seed:               s.Seed,
		Record:             s.Record,
		Logger:             logger,
	}
}

// NewSimulator validates the config and builds room, robot and simulator.
func (c *Config) NewSimulator(logger *slog.Logger) (*sim.Simulator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	env, err := c.BuildEnvironment()
	if err != nil {
		return nil, err
	}
	robot, err := c.BuildRobot(env)
	if err != nil {
		return nil, err
	}
	return sim.New(env, robot, c.SimConfig(logger)), nil
}

// NewLogger builds a logger writing to w.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
