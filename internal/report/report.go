// Package report exports a program budget as a one-page PDF.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/iwvelando/education-cost-planner/internal/budget"
	"github.com/iwvelando/education-cost-planner/internal/dataset"
	"github.com/iwvelando/education-cost-planner/pkg/format"
	"github.com/jung-kurt/gofpdf"
)

var (
	headerColor       = [3]int{40, 40, 40}
	headerTextColor   = [3]int{255, 255, 255}
	sectionTitleColor = [3]int{0, 0, 0}
	bodyTextColor     = [3]int{50, 50, 50}
	lineColor         = [3]int{200, 200, 200}
)

var yearColumns = []struct {
	title string
	width float64
	value func(budget.YearLine) string
}{
	{"Year", 14, func(l budget.YearLine) string { return strconv.Itoa(l.Year) }},
	{"Tuition", 24, func(l budget.YearLine) string { return format.Amount(l.TuitionUSD) }},
	{"Rent", 22, func(l budget.YearLine) string { return format.Amount(l.RentUSD) }},
	{"Insurance", 22, func(l budget.YearLine) string { return format.Amount(l.InsuranceUSD) }},
	{"Visa", 18, func(l budget.YearLine) string { return format.Amount(l.VisaUSD) }},
	{"Living", 24, func(l budget.YearLine) string { return format.Amount(l.LivingUSD) }},
	{"Total USD", 32, func(l budget.YearLine) string { return format.Amount(l.TotalUSD) }},
	{"Total local", 34, func(l budget.YearLine) string { return format.Amount(l.TotalLocal) }},
}

// Budget renders the budget of rec to w.
func Budget(w io.Writer, rec dataset.Record, result budget.Result, generated time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", rec.University)), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	subtitle := fmt.Sprintf("  %s, %s | %s (%s)", rec.City, rec.Country, rec.Program, rec.Level)
	pdf.CellFormat(0, 8, tr(subtitle), "", 1, "L", true, 0, "")
	pdf.Ln(6)

	section := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	}

	section("Assumptions")
	assumptions := fmt.Sprintf(
		"Duration: %d years\nNew York baseline: %s per year\nLiving multiplier: %.3f\nCost-of-living inflation: %s per year\nExchange rate: %.4f local units per USD",
		result.DurationYears,
		format.Currency(result.NYBaseline),
		result.LivingMultiplier,
		format.Percent(result.InflationRate),
		result.ExchangeRate,
	)
	pdf.MultiCell(190, 5, tr(assumptions), "", "L", false)
	pdf.Ln(6)

	section("Year by year (USD unless noted)")
	pdf.SetFont("Arial", "B", 9)
	for _, col := range yearColumns {
		pdf.CellFormat(col.width, 7, tr(col.title), "B", 0, "R", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, line := range result.Years {
		for _, col := range yearColumns {
			pdf.CellFormat(col.width, 6, tr(col.value(line)), "", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	section("Program totals")
	totals := [][2]string{
		{"Program total (USD)", format.Currency(result.ProgramTotalUSD)},
		{"Program total (local)", format.Amount(result.ProgramTotalLocal)},
		{"Average per year (USD)", format.Currency(result.AvgYearUSD)},
		{"Average per year (local)", format.Amount(result.AvgYearLocal)},
		{"Average per month (USD)", format.Currency(result.AvgMonthUSD)},
		{"Average per month (local)", format.Amount(result.AvgMonthLocal)},
	}
	for _, row := range totals {
		pdf.CellFormat(70, 6, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(50, 6, tr(row[1]), "", 1, "R", false, 0, "")
		pdf.SetFont("Arial", "", 10)
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footer := fmt.Sprintf("Generated by Education Cost Planner | %s", generated.Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footer), "", 0, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("error rendering PDF: %w", err)
	}
	return nil
}

// WriteBudget renders the budget of rec to path, creating its directory, and
// returns the absolute path written.
func WriteBudget(path string, rec dataset.Record, result budget.Result, generated time.Time) (string, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
		}
	}

	var buf bytes.Buffer
	if err := Budget(&buf, rec, result, generated); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}
	return filepath.Abs(path)
}
