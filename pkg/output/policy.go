package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/iwvelando/education-cost-planner/internal/policy"
	"github.com/iwvelando/education-cost-planner/pkg/constants"
	"github.com/iwvelando/education-cost-planner/pkg/format"
	"github.com/pterm/pterm"
)

var (
	overTarget  = color.New(color.FgRed, color.Bold).SprintFunc()
	underTarget = color.New(color.FgGreen).SprintFunc()
	sectionName = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Policy writes report in the named output format. Pretty tables are cut to
// top rows where they rank programs.
func Policy(w io.Writer, outputFormat string, report policy.Report, top int) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyPolicy(w, report, top)
	case constants.OutputFormatCSV:
		return CsvTargetGap(w, report.TargetGap)
	case constants.OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode policy report: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// PrettyPolicy renders the insight and target gap tables with pterm.
func PrettyPolicy(w io.Writer, report policy.Report, top int) error {
	fmt.Fprintf(w, "New York baseline: %s per year\n", format.Currency(report.NYBaseline))
	if report.Levers.Active() {
		fmt.Fprintf(w, "Scenario: tuition cut %s, living subsidy %s\n",
			format.Percent(report.Levers.TuitionCut), format.Percent(report.Levers.LivingSubsidy))
	}

	programs := pterm.TableData{{"University", "Country", "Program", "Level", "Total/yr (USD)", "Affordability"}}
	for _, row := range limit(report.Insights.TotalAnnual, top) {
		programs = append(programs, []string{
			row.University, row.Country, row.Program, row.Level,
			format.Amount(row.TotalAnnualUSD), format.Index(row.AffordabilityIndex),
		})
	}
	if err := section(w, "Lowest total annual cost", programs); err != nil {
		return err
	}

	affordable := pterm.TableData{{"University", "Country", "Affordability", "Gap to level median"}}
	for _, row := range limit(report.Insights.Affordability, top) {
		affordable = append(affordable, []string{
			row.University, row.Country, format.Index(row.AffordabilityIndex), signed(row.PolicyGapUSD),
		})
	}
	if err := section(w, "Most affordable programmes", affordable); err != nil {
		return err
	}

	groups := pterm.TableData{{"Country", "Level", "Avg total (USD)", "Avg affordability", "Above median"}}
	for _, g := range report.Insights.PolicyGap {
		groups = append(groups, []string{
			g.Country, g.Level, format.Amount(g.AvgTotalAnnualUSD),
			format.Index(g.AvgAffordabilityIndex), format.Percent(g.ShareAboveMedian),
		})
	}
	if err := section(w, "Policy gap by country and level", groups); err != nil {
		return err
	}

	countries := pterm.TableData{{"Country", "Min (USD)", "Mean (USD)", "Max (USD)"}}
	for _, c := range report.Insights.Comparative {
		countries = append(countries, []string{
			c.Country, format.Amount(c.MinTotalAnnualUSD),
			format.Amount(c.MeanTotalAnnualUSD), format.Amount(c.MaxTotalAnnualUSD),
		})
	}
	if err := section(w, "Country comparison", countries); err != nil {
		return err
	}

	gap := report.TargetGap
	fmt.Fprintf(w, "\nTarget: %s per year (%s)\n", format.Currency(gap.Target), gap.TotalColumn)
	targets := pterm.TableData{{"University", "Country", "Program", "Level", "Total/yr (USD)", "Gap to target"}}
	for _, p := range limit(gap.Programs, top) {
		targets = append(targets, []string{
			p.University, p.Country, p.Program, p.Level, format.Amount(p.TotalAnnualUSD), signed(p.GapToTargetUSD),
		})
	}
	if err := section(w, "Largest gaps to target", targets); err != nil {
		return err
	}

	targetGroups := pterm.TableData{{"Country", "Level", "Avg gap", "Above target", "Tuition share", "Living share"}}
	for _, g := range gap.ByCountryLevel {
		targetGroups = append(targetGroups, []string{
			g.Country, g.Level, signed(g.AvgGapToTargetUSD), format.Percent(g.ShareAboveTarget),
			optionalPercent(g.MeanTuitionShare), optionalPercent(g.MeanLivingShare),
		})
	}
	return section(w, "Target gap by country and level", targetGroups)
}

// CsvTargetGap outputs the per-program target gap table in comma-separated
// value format. Names are quoted as needed.
func CsvTargetGap(w io.Writer, tables policy.TargetGapTables) error {
	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"country", "university", "program", "level", "total_annual_usd", "gap_to_target_usd", "above_target"})
	for _, p := range tables.Programs {
		_ = writer.Write([]string{
			p.Country, p.University, p.Program, p.Level,
			strconv.FormatFloat(p.TotalAnnualUSD, 'f', 2, 64),
			strconv.FormatFloat(p.GapToTargetUSD, 'f', 2, 64),
			strconv.FormatBool(p.AboveTarget),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write target gap CSV: %w", err)
	}
	return nil
}

func section(w io.Writer, title string, data pterm.TableData) error {
	fmt.Fprintf(w, "\n%s\n", sectionName(title))
	if len(data) == 1 {
		fmt.Fprintln(w, "(no data)")
		return nil
	}
	rendered, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
	if err != nil {
		return fmt.Errorf("failed to render %s table: %w", title, err)
	}
	fmt.Fprintln(w, rendered)
	return nil
}

// signed colours overages red and savings green.
func signed(amount float64) string {
	if amount > 0 {
		return overTarget("+" + format.Currency(amount))
	}
	return underTarget(format.Currency(amount))
}

func optionalPercent(share *float64) string {
	if share == nil {
		return "n/a"
	}
	return format.Percent(*share)
}

func limit[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}
