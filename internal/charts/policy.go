package charts

import (
	"fmt"
	"path/filepath"

	"github.com/iwvelando/education-cost-planner/internal/policy"
	"github.com/iwvelando/education-cost-planner/pkg/mathutil"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const topPrograms = 10

// PolicyCharts writes the cost component, economic context and level charts
// of frame into dir and returns their file names keyed by chart. An empty
// frame produces no charts.
func PolicyCharts(frame policy.Frame, dir, base string) (map[string]string, error) {
	files := map[string]string{}
	if err := ensureDir(dir); err != nil {
		return files, err
	}
	if len(frame) == 0 {
		return files, nil
	}
	if base == "" {
		base = DefaultPolicyBase
	}

	if top := policy.TopByTotal(frame, topPrograms); len(top) > 0 {
		name := base + "_cost_components.png"
		if err := costComponentsPlot(top, filepath.Join(dir, name)); err != nil {
			return files, err
		}
		files[KeyCostComponents] = name
	}

	if contexts := policy.EconomicContext(frame); len(contexts) > 0 {
		name := base + "_economic_context.png"
		if err := economicContextPlot(contexts, filepath.Join(dir, name)); err != nil {
			return files, err
		}
		files[KeyEconomicContext] = name
	}

	if medians := policy.LevelMedians(frame); len(medians) > 0 {
		name := base + "_institution_program.png"
		if err := levelPlot(medians, policy.DurationMedians(frame), filepath.Join(dir, name)); err != nil {
			return files, err
		}
		files[KeyInstitutionProgram] = name
	}

	return files, nil
}

// costComponentsPlot draws absolute and relative direct vs living costs of
// the given programs, most expensive at the top.
func costComponentsPlot(top policy.Frame, path string) error {
	n := len(top)
	direct := make(plotter.Values, n)
	living := make(plotter.Values, n)
	directShare := make(plotter.Values, n)
	livingShare := make(plotter.Values, n)
	labels := make([]string, n)

	for i, row := range top {
		pos := n - 1 - i
		d, l := row.PolicySplit()
		direct[pos] = d
		living[pos] = l
		directShare[pos] = mathutil.ShareOf(d, d+l)
		livingShare[pos] = mathutil.ShareOf(l, d+l)
		labels[pos] = fmt.Sprintf("%s (%s)", row.University, row.Country)
	}

	abs, err := stackedHorizontal(direct, living, "Direct costs (tuition, visa, insurance)", "Living-related costs (rent + cost-of-living)")
	if err != nil {
		return err
	}
	abs.Title.Text = "Total annual cost (top programmes)"
	abs.X.Label.Text = "Annual cost (USD)"
	abs.NominalY(labels...)

	share, err := stackedHorizontal(directShare, livingShare, "Direct share", "Living share")
	if err != nil {
		return err
	}
	share.Title.Text = "Composition: direct vs living"
	share.X.Label.Text = "Share of total annual cost"
	share.X.Min = 0
	share.X.Max = 1
	share.NominalY(make([]string, n)...)

	height := vg.Length(max(4.5, 0.4*float64(n)+2.0)) * vg.Inch
	return saveSideBySide(abs, share, 11*vg.Inch, height, path)
}

func stackedHorizontal(first, second plotter.Values, firstLabel, secondLabel string) (*plot.Plot, error) {
	p := plot.New()
	p.Legend.Top = true

	lower, err := newBars(first, vg.Points(14), accentBlue)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s bars: %w", firstLabel, err)
	}
	lower.Horizontal = true
	upper, err := newBars(second, vg.Points(14), accentOrange)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s bars: %w", secondLabel, err)
	}
	upper.Horizontal = true
	upper.StackOn(lower)

	p.Add(lower, upper)
	p.Legend.Add(firstLabel, lower)
	p.Legend.Add(secondLabel, upper)
	return p, nil
}

// economicContextPlot draws the mean living-cost index per country, coloured
// from red to green by mean affordability. The lowest index is at the top.
func economicContextPlot(contexts []policy.CountryContext, path string) error {
	p := plot.New()
	p.Title.Text = "Living cost index by country (colour = affordability)"
	p.X.Label.Text = "Living cost index (avg)"

	scores := make([]float64, len(contexts))
	for i, c := range contexts {
		scores[i] = c.AffordabilityIndex
	}
	lo, hi, _ := mathutil.MinMax(scores)

	n := len(contexts)
	labels := make([]string, n)
	for i, c := range contexts {
		pos := n - 1 - i
		bars, err := newBars(plotter.Values{c.LivingIndex}, vg.Points(12), scoreColor(c.AffordabilityIndex, lo, hi))
		if err != nil {
			return fmt.Errorf("failed to build %s bar: %w", c.Country, err)
		}
		bars.Horizontal = true
		bars.XMin = float64(pos)
		p.Add(bars)
		labels[pos] = c.Country
	}
	p.NominalY(labels...)

	height := vg.Length(max(4.5, 0.35*float64(n)+2.0)) * vg.Inch
	return save(p, 9*vg.Inch, height, path)
}

// levelPlot draws the median cost per level next to the median cost per
// program duration, one line per level.
func levelPlot(medians []policy.LevelMedian, byDuration []policy.DurationMedian, path string) error {
	p := plot.New()
	p.Title.Text = "Median annual cost by study level"
	p.Y.Label.Text = "Median total annual cost (USD)"

	values := make(plotter.Values, len(medians))
	names := make([]string, len(medians))
	for i, m := range medians {
		values[i] = m.MedianTotalAnnualUSD
		names[i] = fmt.Sprintf("%s (n=%d)", m.Level, m.Programs)
	}
	bars, err := newBars(values, vg.Points(32), accentBlue)
	if err != nil {
		return fmt.Errorf("failed to build level bars: %w", err)
	}
	p.Add(bars)
	p.NominalX(names...)

	lines, err := durationPlot(byDuration)
	if err != nil {
		return err
	}
	return saveSideBySide(p, lines, 12*vg.Inch, 4.5*vg.Inch, path)
}

func durationPlot(byDuration []policy.DurationMedian) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Median annual cost by program duration"
	p.X.Label.Text = "Duration (years)"
	p.Y.Label.Text = "Median total annual cost (USD)"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	var levels []string
	points := map[string]plotter.XYs{}
	for _, m := range byDuration {
		if _, ok := points[m.Level]; !ok {
			levels = append(levels, m.Level)
		}
		points[m.Level] = append(points[m.Level], plotter.XY{X: float64(m.DurationYears), Y: m.MedianTotalAnnualUSD})
	}

	for i, level := range levels {
		line, scatter, err := plotter.NewLinePoints(points[level])
		if err != nil {
			return nil, fmt.Errorf("failed to build duration line for %s: %w", level, err)
		}
		line.Color = plotutil.Color(i)
		scatter.Color = plotutil.Color(i)
		scatter.Shape = plotutil.Shape(i)
		p.Add(line, scatter)
		p.Legend.Add(level, line, scatter)
	}
	return p, nil
}
