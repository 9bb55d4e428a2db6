package charts

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/iwvelando/education-cost-planner/internal/budget"
	"github.com/iwvelando/education-cost-planner/pkg/format"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// BudgetCharts writes the stacked, totals and component charts of result into
// dir and returns their file names keyed by chart. A result without years
// produces no charts.
func BudgetCharts(result budget.Result, dir, base string) (map[string]string, error) {
	files := map[string]string{}
	if err := ensureDir(dir); err != nil {
		return files, err
	}
	if len(result.Years) == 0 {
		return files, nil
	}
	if base == "" {
		base = DefaultBudgetBase
	}

	stacked := base + "_stacked.png"
	if err := StackedPlot(result, filepath.Join(dir, stacked)); err != nil {
		return files, err
	}
	files[KeyStacked] = stacked

	totals := base + "_totals.png"
	if err := totalsPlot(result, filepath.Join(dir, totals)); err != nil {
		return files, err
	}
	files[KeyTotalsLine] = totals

	share := base + "_components.png"
	if err := componentsPlot(result, filepath.Join(dir, share)); err != nil {
		return files, err
	}
	files[KeyComponentsShare] = share

	return files, nil
}

// StackedPlot writes a per-year bar chart with one stacked segment per cost
// component to path.
func StackedPlot(result budget.Result, path string) error {
	if len(result.Years) == 0 {
		return fmt.Errorf("no program years to plot")
	}

	p := plot.New()
	p.Title.Text = "Annual cost breakdown by component"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Amount (USD)"
	p.Legend.Top = true

	var below *plotter.BarChart
	for i, c := range budget.Components {
		values := make(plotter.Values, len(result.Years))
		for j, line := range result.Years {
			values[j] = c.Value(line)
		}
		bars, err := newBars(values, vg.Points(28), plotutil.Color(i))
		if err != nil {
			return fmt.Errorf("failed to build %s bars: %w", c.Key, err)
		}
		if below != nil {
			bars.StackOn(below)
		}
		p.Add(bars)
		p.Legend.Add(c.Label, bars)
		below = bars
	}
	p.NominalX(yearLabels(result)...)

	return save(p, 7.5*vg.Inch, 4.5*vg.Inch, path)
}

func totalsPlot(result budget.Result, path string) error {
	p := plot.New()
	p.Title.Text = "Total program cost per year (USD)"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Total cost (USD)"
	p.Add(plotter.NewGrid())

	points := make(plotter.XYs, len(result.Years))
	for i, line := range result.Years {
		points[i].X = float64(line.Year)
		points[i].Y = line.TotalUSD
	}
	line, marks, err := plotter.NewLinePoints(points)
	if err != nil {
		return fmt.Errorf("failed to build totals line: %w", err)
	}
	line.Color = accentSky
	marks.Color = accentSky
	p.Add(line, marks)

	return save(p, 7*vg.Inch, 3.8*vg.Inch, path)
}

func componentsPlot(result budget.Result, path string) error {
	p := plot.New()
	p.Title.Text = "Program cost composition by component"
	p.Y.Label.Text = "Total over program (USD)"

	totals := result.ComponentTotals()
	bars, err := newBars(plotter.Values(totals), vg.Points(36), accentBlue)
	if err != nil {
		return fmt.Errorf("failed to build component bars: %w", err)
	}
	p.Add(bars)

	names := make([]string, len(budget.Components))
	tags := plotter.XYLabels{XYs: make(plotter.XYs, len(totals)), Labels: make([]string, len(totals))}
	for i, c := range budget.Components {
		names[i] = c.Label
		tags.XYs[i] = plotter.XY{X: float64(i), Y: totals[i]}
		tags.Labels[i] = format.Amount(totals[i])
	}
	labels, err := plotter.NewLabels(tags)
	if err != nil {
		return fmt.Errorf("failed to build component labels: %w", err)
	}
	p.Add(labels)
	p.NominalX(names...)

	return save(p, 7*vg.Inch, 3.8*vg.Inch, path)
}

func yearLabels(result budget.Result) []string {
	labels := make([]string, len(result.Years))
	for i, line := range result.Years {
		labels[i] = strconv.Itoa(line.Year)
	}
	return labels
}
