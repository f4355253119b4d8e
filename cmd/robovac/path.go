package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/robovac-sim/internal/algo"
	"github.com/elektrokombinacija/robovac-sim/internal/core"
	"github.com/elektrokombinacija/robovac-sim/internal/layout"
)

var (
	pathRoom     string
	pathDiagonal bool
)

var pathCmd = &cobra.Command{
	Use:   "path FROM TO",
	Short: "Find a grid path between two cells",
	Long: `Run A* between two cells given as x,y and print the path drawn over the room.
The room comes from the config file unless --room names a predefined one.`,
	Example: "  robovac path 1,1 28,28 --diagonal",
	Args:    cobra.ExactArgs(2),
	RunE:    runPath,
}

func init() {
	pathCmd.Flags().StringVar(&pathRoom, "room", "", "Predefined room name")
	pathCmd.Flags().BoolVarP(&pathDiagonal, "diagonal", "d", false, "Allow diagonal moves")
}

func parseCell(s string) (core.Cell, error) {
	x, y, err := parsePair(s)
	if err != nil {
		return core.Cell{}, err
	}
	return core.Cell{X: int(x), Y: int(y)}, nil
}

func runPath(cmd *cobra.Command, args []string) error {
	from, err := parseCell(args[0])
	if err != nil {
		return err
	}
	to, err := parseCell(args[1])
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if pathRoom != "" {
		cfg.Room.Type = "predefined"
		cfg.Room.Name = pathRoom
	}
	env, err := cfg.BuildEnvironment()
	if err != nil {
		return err
	}

	path := algo.NewPathfinder(env).FindPath(from, to, pathDiagonal)
	out := cmd.OutOrStdout()
	if path == nil {
		fmt.Fprintf(out, "no path from %v to %v\n", from, to)
		return nil
	}

	fmt.Fprintf(out, "%d cells, cost %.2f\n", len(path), algo.PathCost(path))
	fmt.Fprint(out, layout.Overlay(env.Layout(), path))
	return nil
}
