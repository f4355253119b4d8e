package main

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/robovac-sim/internal/layout"
)

var layoutSeed int64

var layoutCmd = &cobra.Command{
	Use:   "layout [NAME]",
	Short: "Print a predefined room",
	Long:  `Print a predefined room as ASCII. Without a name, list the available rooms.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLayout,
}

func init() {
	layoutCmd.Flags().Int64Var(&layoutSeed, "seed", 42, "Seed for furniture and dock placement")
}

func runLayout(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(out, strings.Join(layout.Names(), "\n"))
		return nil
	}

	g, err := layout.Predefined(args[0], rand.New(rand.NewSource(layoutSeed)))
	if err != nil {
		return err
	}
	fmt.Fprint(out, layout.FormatASCII(g))
	return nil
}
