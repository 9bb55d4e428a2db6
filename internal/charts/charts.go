// Package charts renders budget and policy figures as PNG files.
package charts

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Chart keys returned by BudgetCharts and PolicyCharts.
const (
	KeyStacked            = "stacked"
	KeyTotalsLine         = "totals_line"
	KeyComponentsShare    = "components_share"
	KeyCostComponents     = "cost_components"
	KeyEconomicContext    = "economic_context"
	KeyInstitutionProgram = "institution_program"
)

// Default file name prefixes.
const (
	DefaultBudgetBase = "budget"
	DefaultPolicyBase = "policy"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

var (
	accentBlue   = color.RGBA{R: 0x0e, G: 0xa5, B: 0xe9, A: 0xff}
	accentSky    = color.RGBA{R: 0x38, G: 0xbd, B: 0xf8, A: 0xff}
	accentOrange = color.RGBA{R: 0xfb, G: 0x92, B: 0x3c, A: 0xff}

	scoreLow  = color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
	scoreMid  = color.RGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 0xff}
	scoreHigh = color.RGBA{R: 0x16, G: 0xa3, B: 0x4a, A: 0xff}
)

func ensureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create chart directory %s: %w", dir, err)
	}
	return nil
}

func save(p *plot.Plot, width, height vg.Length, path string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		format = "png"
	}
	w, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("failed to render chart %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, w)
}

// saveSideBySide draws two plots next to each other on one PNG.
func saveSideBySide(left, right *plot.Plot, width, height vg.Length, path string) error {
	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter * 4}
	canvases := plot.Align([][]*plot.Plot{{left, right}}, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	return writeFile(path, vgimg.PngCanvas{Canvas: img})
}

// writeFile writes to a temporary file next to path and renames it into
// place, so readers only ever see a complete chart.
func writeFile(path string, w io.WriterTo) error {
	name := filepath.Base(path)
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create chart %s: %w", name, err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := w.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write chart %s: %w", name, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write chart %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close chart %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move chart %s into place: %w", name, err)
	}
	return nil
}

func newBars(values plotter.Values, width vg.Length, fill color.Color) (*plotter.BarChart, error) {
	bars, err := plotter.NewBarChart(values, width)
	if err != nil {
		return nil, err
	}
	bars.Color = fill
	bars.LineStyle.Width = vg.Length(0)
	return bars, nil
}

// scoreColor maps score within [lo, hi] onto a red-yellow-green ramp.
func scoreColor(score, lo, hi float64) color.Color {
	t := 0.5
	if hi > lo {
		t = (score - lo) / (hi - lo)
	}
	if t < 0.5 {
		return blend(scoreLow, scoreMid, t*2)
	}
	return blend(scoreMid, scoreHigh, (t-0.5)*2)
}

func blend(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}
