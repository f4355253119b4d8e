package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/robovac-sim/internal/config"
	"github.com/elektrokombinacija/robovac-sim/internal/core"
	"github.com/elektrokombinacija/robovac-sim/internal/report"
	"github.com/elektrokombinacija/robovac-sim/internal/sim"
)

var (
	runWidth     int
	runHeight    int
	runMaxSteps  int
	runStart     string
	runRoom      string
	runNavigate  bool
	runMode      string
	runJSON      bool
	runStatus    bool
	runPlots     string
	runTraceFile string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation",
	Long: `Run one simulation with the loaded config. Flags override the config file.
The process exits with status 1 when the robot ends in the error state.`,
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.IntVarP(&runWidth, "width", "w", 0, "Room width (walled room)")
	f.IntVarP(&runHeight, "height", "H", 0, "Room height (walled room)")
	f.IntVarP(&runMaxSteps, "max-steps", "m", 0, "Maximum simulation steps")
	f.StringVarP(&runStart, "start", "s", "", "Start position as x,y")
	f.StringVar(&runRoom, "room", "", "Predefined room name")
	f.BoolVarP(&runNavigate, "navigate", "n", false, "Drive the robot along a coverage plan")
	f.StringVar(&runMode, "mode", "", "Cleaning mode")
	f.BoolVar(&runJSON, "json", false, "Print the result as JSON")
	f.BoolVar(&runStatus, "status", false, "Print the final robot status as JSON")
	f.StringVar(&runPlots, "plots", "", "Write coverage and battery charts to this directory")
	f.StringVar(&runTraceFile, "trace", "", "Write the per-tick trace to this JSON file")
}

func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("width") || f.Changed("height") {
		cfg.Room.Type = "walled"
		if f.Changed("width") {
			cfg.Room.Width = runWidth
		}
		if f.Changed("height") {
			cfg.Room.Height = runHeight
		}
	}
	if f.Changed("room") {
		cfg.Room.Type = "predefined"
		cfg.Room.Name = runRoom
		cfg.Robot.Start = nil
	}
	if f.Changed("max-steps") {
		cfg.Simulation.MaxSteps = runMaxSteps
	}
	if f.Changed("start") {
		x, y, err := parsePair(runStart)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		cfg.Robot.Start = &core.Pos{X: x, Y: y}
	}
	if f.Changed("navigate") {
		cfg.Simulation.Navigate = runNavigate
	}
	if f.Changed("mode") {
		cfg.Robot.Mode = runMode
	}
	if runPlots != "" || runTraceFile != "" {
		cfg.Simulation.Record = true
	}
	return nil
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, cfg); err != nil {
		return err
	}

	s, err := cfg.NewSimulator(logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res := s.Run(ctx)

	out := cmd.OutOrStdout()
	if runJSON {
		if err := writeJSON(out, res); err != nil {
			return err
		}
	} else {
		printResult(out, res)
	}
	if runStatus {
		if err := writeJSON(out, s.Status()); err != nil {
			return err
		}
	}

	if runPlots != "" {
		if err := report.SaveCharts(s.Trace(), runPlots); err != nil {
			return fmt.Errorf("charts: %w", err)
		}
	}
	if runTraceFile != "" {
		if err := s.ExportTrace(runTraceFile); err != nil {
			return fmt.Errorf("trace: %w", err)
		}
	}

	if !res.Success {
		return errUnsuccessful
	}
	return nil
}

func printResult(w io.Writer, res sim.Result) {
	fmt.Fprintln(w, "\n=== Simulation Results ===")
	fmt.Fprintf(w, "Run: %s\n", res.RunID)
	fmt.Fprintf(w, "Steps: %d\n", res.Steps)
	fmt.Fprintf(w, "Success: %t\n", res.Success)
	fmt.Fprintf(w, "Final State: %s\n", res.FinalState)
	fmt.Fprintf(w, "Cleaning Coverage: %.2f%%\n", res.CoveragePercentage)
	fmt.Fprintf(w, "Total Distance: %.2fm\n", res.TotalDistance)
	fmt.Fprintf(w, "Battery Cycles: %d\n", res.BatteryCycles)
	fmt.Fprintf(w, "Simulated Time: %.1fs\n", res.SimTime)
	fmt.Fprintln(w, "==========================")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
