// Command robovacvis simulates a navigating run and replays it in a window.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/robovac-sim/internal/config"
	"github.com/elektrokombinacija/robovac-sim/internal/vis"
	"github.com/elektrokombinacija/robovac-sim/internal/vis/state"
)

func main() {
	configPath := flag.String("config", "robovac.yaml", "Config file (defaults are used if it does not exist)")
	room := flag.String("room", "", "Predefined room name")
	mode := flag.String("mode", "", "Cleaning mode")
	flag.Parse()

	st, err := simulate(*configPath, *room, *mode)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Robot Vacuum Replay"),
			app.Size(unit.Dp(1200), unit.Dp(900)),
		)

		if err := vis.NewApp(st).Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// simulate runs the configured room to completion with navigation and
// recording on, and wraps the trace for replay.
func simulate(configPath, room, mode string) (*state.State, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if room != "" {
		cfg.Room.Type = "predefined"
		cfg.Room.Name = room
		cfg.Robot.Start = nil
	}
	if mode != "" {
		cfg.Robot.Mode = mode
	}
	cfg.Simulation.Navigate = true
	cfg.Simulation.Record = true

	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return nil, err
	}
	s, err := cfg.NewSimulator(logger)
	if err != nil {
		return nil, err
	}

	start := s.Robot().Position
	res := s.Run(context.Background())
	logger.Info("simulation finished",
		"steps", res.Steps, "coverage", res.CoveragePercentage, "state", res.FinalState)

	return state.New(s.Environment().Layout(), s.Trace(), start, res, cfg.Simulation.TickInterval), nil
}
