// Package output provides utilities for formatting and displaying budget and
// policy results on a terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/education-cost-planner/internal/budget"
	"github.com/iwvelando/education-cost-planner/internal/dataset"
	"github.com/iwvelando/education-cost-planner/pkg/constants"
	"github.com/iwvelando/education-cost-planner/pkg/format"
)

// Budget writes result in the named output format.
func Budget(w io.Writer, outputFormat string, rec dataset.Record, result budget.Result) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		PrettyBudget(w, rec, result)
		return nil
	case constants.OutputFormatCSV:
		CsvBudget(w, result)
		return nil
	case constants.OutputFormatJSON:
		return JSONBudget(w, rec, result)
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// PrettyBudget outputs a human-readable per-year breakdown and program totals.
func PrettyBudget(w io.Writer, rec dataset.Record, result budget.Result) {
	fmt.Fprintf(w, "\nPer-year breakdown (USD and local currency):\n")
	fmt.Fprintf(w, "Living cost multiplier (NY baseline -> destination): %.3f\n", result.LivingMultiplier)
	if result.InflationRate > 0 {
		fmt.Fprintf(w, "Cost-of-living inflation: %s per year\n", format.Percent(result.InflationRate))
	}
	fmt.Fprintf(w, "Exchange rate (local units per 1 USD): %.4f\n\n", result.ExchangeRate)

	header := fmt.Sprintf("%4s  %14s  %12s  %15s  %10s  %12s  %12s  %14s",
		"Year", "Tuition(USD)", "Rent(USD)", "Insurance(USD)", "Visa(USD)", "Living(USD)", "Total(USD)", "Total(Local)")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))
	for _, y := range result.Years {
		fmt.Fprintf(w, "%4d  %14s  %12s  %15s  %10s  %12s  %12s  %14s\n",
			y.Year,
			format.Amount(y.TuitionUSD),
			format.Amount(y.RentUSD),
			format.Amount(y.InsuranceUSD),
			format.Amount(y.VisaUSD),
			format.Amount(y.LivingUSD),
			format.Amount(y.TotalUSD),
			format.Amount(y.TotalLocal),
		)
	}

	fmt.Fprintf(w, "\nProgram totals:\n")
	fmt.Fprintf(w, "Total (USD)   : %s\n", format.Amount(result.ProgramTotalUSD))
	fmt.Fprintf(w, "Total (Local) : %s\n", format.Amount(result.ProgramTotalLocal))
	fmt.Fprintf(w, "Per year (USD): %s\n", format.Amount(result.AvgYearUSD))
	fmt.Fprintf(w, "Per month (USD): %s\n", format.Amount(result.AvgMonthUSD))
}

// CsvBudget outputs the per-year breakdown in comma-separated value format.
func CsvBudget(w io.Writer, result budget.Result) {
	fmt.Fprintf(w, `"year","tuition_usd","rent_usd","insurance_usd","visa_usd","direct_usd","living_usd","total_usd","total_local"`)
	fmt.Fprintf(w, "\n")
	for _, y := range result.Years {
		fmt.Fprintf(w, `"%d","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`,
			y.Year, y.TuitionUSD, y.RentUSD, y.InsuranceUSD, y.VisaUSD, y.DirectUSD, y.LivingUSD, y.TotalUSD, y.TotalLocal)
		fmt.Fprintf(w, "\n")
	}
}

// BudgetDocument is the JSON shape of a budget.
type BudgetDocument struct {
	Program dataset.Record `json:"program"`
	Budget  budget.Result  `json:"budget"`
}

// JSONBudget outputs the program and its budget as indented JSON.
func JSONBudget(w io.Writer, rec dataset.Record, result budget.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BudgetDocument{Program: rec, Budget: result}); err != nil {
		return fmt.Errorf("failed to encode budget: %w", err)
	}
	return nil
}

// Selected announces the matched program.
func Selected(w io.Writer, rec dataset.Record) {
	fmt.Fprintf(w, "Selected: %s (%s, %s)\n", rec.University, rec.City, rec.Country)
}

// NoMatch reports a failed university lookup with a sample of known names.
func NoMatch(w io.Writer, query string, samples []string) {
	fmt.Fprintf(w, "No university match found for query: %s\n", query)
	if len(samples) == 0 {
		return
	}
	fmt.Fprintln(w, "Sample universities:")
	for _, s := range samples {
		fmt.Fprintf(w, " - %s\n", s)
	}
}
