// Command robovac runs robot vacuum cleaning simulations.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/robovac-sim/internal/config"
)

var (
	configPath string
	verbose    bool
)

// errUnsuccessful makes the process exit with status 1 without printing an error.
var errUnsuccessful = errors.New("simulation ended in error")

var rootCmd = &cobra.Command{
	Use:          "robovac",
	Short:        "Robot vacuum cleaner simulator",
	Long:         `robovac simulates a robot vacuum cleaning a grid room and reports coverage, distance and battery use.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUnsuccessful) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "robovac.yaml", "Config file (defaults are used if it does not exist)")
	rootCmd.AddCommand(runCmd, batchCmd, pathCmd, layoutCmd)
}

// loadConfig reads the config file and installs its logger as the default.
func loadConfig(logOut io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	logger, err := cfg.NewLogger(logOut)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// parsePair reads "x,y".
func parsePair(s string) (x, y float64, err error) {
	if _, err := fmt.Sscanf(s, "%g,%g", &x, &y); err != nil {
		return 0, 0, fmt.Errorf("expected x,y: %q", s)
	}
	return x, y, nil
}
