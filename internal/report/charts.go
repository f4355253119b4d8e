// Package report turns simulation traces and batch results into charts
// and summary statistics.
package report

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/elektrokombinacija/robovac-sim/internal/sim"
)

// ErrNoData is returned when there is nothing to plot or summarise.
var ErrNoData = errors.New("no data")

// Chart file names written by SaveCharts.
const (
	CoverageChart = "coverage.png"
	BatteryChart  = "battery.png"
)

var (
	coverageColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	batteryColor  = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
)

// SaveCharts writes coverage and battery over simulated time into dir.
func SaveCharts(trace []sim.Frame, dir string) error {
	if len(trace) == 0 {
		return fmt.Errorf("charts: %w", ErrNoData)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	coverage := make(plotter.XYs, len(trace))
	battery := make(plotter.XYs, len(trace))
	for i, f := range trace {
		coverage[i] = plotter.XY{X: f.Time, Y: f.Coverage}
		battery[i] = plotter.XY{X: f.Time, Y: f.Battery}
	}

	if err := saveLine(filepath.Join(dir, CoverageChart), "Coverage", "Coverage (%)", coverage, coverageColor); err != nil {
		return err
	}
	return saveLine(filepath.Join(dir, BatteryChart), "Battery", "Battery level", battery, batteryColor)
}

func saveLine(path, title, yLabel string, pts plotter.XYs, c color.Color) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Simulated time (s)"
	p.Y.Label.Text = yLabel
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("%s line: %w", title, err)
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	p.Add(line)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// SaveCoverageHistogram plots the distribution of final coverage across
// batch results.
func SaveCoverageHistogram(results []sim.Result, path string) error {
	if len(results) == 0 {
		return fmt.Errorf("histogram: %w", ErrNoData)
	}

	values := make(plotter.Values, len(results))
	for i, r := range results {
		values[i] = r.CoveragePercentage
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Coverage over %d runs", len(results))
	p.X.Label.Text = "Coverage (%)"
	p.Y.Label.Text = "Runs"

	bins := min(len(results), 10)
	hist, err := plotter.NewHist(values, bins)
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	hist.FillColor = coverageColor
	p.Add(hist)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
