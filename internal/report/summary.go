package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/elektrokombinacija/robovac-sim/internal/sim"
)

// Summary aggregates a batch of runs.
type Summary struct {
	Runs           int     `json:"runs"`
	SuccessRate    float64 `json:"success_rate"`
	CoverageMean   float64 `json:"coverage_mean"`
	CoverageStdDev float64 `json:"coverage_stddev"`
	CoverageMin    float64 `json:"coverage_min"`
	CoverageMax    float64 `json:"coverage_max"`
	DistanceMean   float64 `json:"distance_mean"`
	DistanceStdDev float64 `json:"distance_stddev"`
	StepsMean      float64 `json:"steps_mean"`
	BatteryCycles  int     `json:"battery_cycles"`
}

// Summarize computes batch statistics. Standard deviations are zero for
// a single run.
func Summarize(results []sim.Result) (Summary, error) {
	if len(results) == 0 {
		return Summary{}, fmt.Errorf("summary: %w", ErrNoData)
	}

	n := len(results)
	coverage := make([]float64, n)
	distance := make([]float64, n)
	steps := make([]float64, n)
	succeeded := 0
	cycles := 0
	for i, r := range results {
		coverage[i] = r.CoveragePercentage
		distance[i] = r.TotalDistance
		steps[i] = float64(r.Steps)
		cycles += r.BatteryCycles
		if r.Success {
			succeeded++
		}
	}

	s := Summary{
		Runs:          n,
		SuccessRate:   float64(succeeded) / float64(n),
		CoverageMin:   floats.Min(coverage),
		CoverageMax:   floats.Max(coverage),
		StepsMean:     stat.Mean(steps, nil),
		BatteryCycles: cycles,
	}
	s.CoverageMean, s.CoverageStdDev = meanStdDev(coverage)
	s.DistanceMean, s.DistanceStdDev = meanStdDev(distance)
	return s, nil
}

func meanStdDev(x []float64) (mean, std float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

// WriteTable prints the summary as aligned text.
func (s Summary) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "runs\t%d\n", s.Runs)
	fmt.Fprintf(tw, "success rate\t%.1f%%\n", s.SuccessRate*100)
	fmt.Fprintf(tw, "coverage\t%.2f%% ± %.2f (min %.2f, max %.2f)\n",
		s.CoverageMean, s.CoverageStdDev, s.CoverageMin, s.CoverageMax)
	fmt.Fprintf(tw, "distance\t%.2f ± %.2f\n", s.DistanceMean, s.DistanceStdDev)
	fmt.Fprintf(tw, "steps\t%.1f\n", s.StepsMean)
	fmt.Fprintf(tw, "battery cycles\t%d\n", s.BatteryCycles)
	return tw.Flush()
}
