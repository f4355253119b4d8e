package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/elektrokombinacija/robovac-sim/internal/config"
	"github.com/elektrokombinacija/robovac-sim/internal/report"
	"github.com/elektrokombinacija/robovac-sim/internal/sim"
)

var (
	batchRoom      string
	batchRuns      int
	batchFirstSeed int64
	batchParallel  int
	batchMode      string
	batchHist      string
	batchJSON      bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a predefined room over many seeds and summarise",
	Long: `Run the navigating simulator on one predefined room once per seed, in parallel,
and print coverage and distance statistics over all runs.`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batchRoom, "room", "furnished", "Predefined room name")
	f.IntVarP(&batchRuns, "runs", "r", 10, "Number of seeds")
	f.Int64Var(&batchFirstSeed, "seed", 1, "First seed")
	f.IntVarP(&batchParallel, "parallel", "p", runtime.NumCPU(), "Concurrent runs")
	f.StringVar(&batchMode, "mode", "", "Cleaning mode")
	f.StringVar(&batchHist, "hist", "", "Write a coverage histogram PNG to this path")
	f.BoolVar(&batchJSON, "json", false, "Print the summary as JSON")
}

// batchConfig derives the config for one seed. The room layout, dock and
// start position all follow the seed.
func batchConfig(base *config.Config, seed int64) *config.Config {
	cfg := *base
	cfg.Room.Type = "predefined"
	cfg.Room.Name = batchRoom
	cfg.Room.Seed = seed
	cfg.Robot.Start = nil
	cfg.Simulation.Seed = seed
	cfg.Simulation.Navigate = true
	cfg.Simulation.Record = false
	if batchMode != "" {
		cfg.Robot.Mode = batchMode
	}
	return &cfg
}

// runSeeds runs one simulation per seed with at most parallel in flight.
// Results keep seed order.
func runSeeds(ctx context.Context, base *config.Config, seeds []int64, parallel int, logger *slog.Logger) ([]sim.Result, error) {
	results := make([]sim.Result, len(seeds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))

	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			s, err := batchConfig(base, seed).NewSimulator(logger.With("seed", seed))
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = s.Run(ctx)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runBatch(cmd *cobra.Command, _ []string) error {
	if batchRuns <= 0 {
		return fmt.Errorf("--runs must be positive")
	}
	cfg, logger, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	seeds := make([]int64, batchRuns)
	for i := range seeds {
		seeds[i] = batchFirstSeed + int64(i)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := runSeeds(ctx, cfg, seeds, batchParallel, logger)
	if err != nil {
		return err
	}

	summary, err := report.Summarize(results)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if batchJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "room %s, %d runs\n", batchRoom, len(results))
		if err := summary.WriteTable(out); err != nil {
			return err
		}
	}

	if batchHist != "" {
		if err := report.SaveCoverageHistogram(results, batchHist); err != nil {
			return fmt.Errorf("histogram: %w", err)
		}
	}
	return nil
}
