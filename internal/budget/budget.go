// Package budget projects the year-by-year cost of a single study program.
//
// The projection is a cash-flow view: tuition, annualised rent and insurance
// repeat every year, the visa fee is charged once in the first year, and only
// the living component escalates with inflation.
package budget

import (
	"math"

	"github.com/iwvelando/education-cost-planner/internal/dataset"
	"github.com/iwvelando/education-cost-planner/pkg/constants"
)

// YearLine holds the costs of one program year.
type YearLine struct {
	Year         int     `json:"year"`
	TuitionUSD   float64 `json:"tuition_usd"`
	RentUSD      float64 `json:"rent_usd"`
	InsuranceUSD float64 `json:"insurance_usd"`
	VisaUSD      float64 `json:"visa_usd"`
	DirectUSD    float64 `json:"direct_usd"`
	LivingUSD    float64 `json:"living_usd"`
	TotalUSD     float64 `json:"total_usd"`
	TotalLocal   float64 `json:"total_local"`
}

// Result is the full projection of a program.
type Result struct {
	DurationYears     int        `json:"duration_years"`
	LivingMultiplier  float64    `json:"living_multiplier"`
	ExchangeRate      float64    `json:"exchange_rate"`
	NYBaseline        float64    `json:"ny_baseline"`
	InflationRate     float64    `json:"inflation_rate"`
	Years             []YearLine `json:"years"`
	ProgramTotalUSD   float64    `json:"program_total_usd"`
	ProgramTotalLocal float64    `json:"program_total_local"`
	AvgYearUSD        float64    `json:"avg_year_usd"`
	AvgYearLocal      float64    `json:"avg_year_local"`
	AvgMonthUSD       float64    `json:"avg_month_usd"`
	AvgMonthLocal     float64    `json:"avg_month_local"`
}

// Compute projects rec over its duration. nyBaseline is the annual New York
// living cost in USD and inflationRate the fractional annual growth applied to
// the living component. Negative or non-finite rates are treated as zero, and
// the duration is held within [1, constants.MaxDurationYears].
func Compute(rec dataset.Record, nyBaseline, inflationRate float64) Result {
	duration := rec.DurationYears
	if duration < 1 {
		duration = constants.DefaultDurationYears
	}
	if duration > constants.MaxDurationYears {
		duration = constants.MaxDurationYears
	}
	if math.IsNaN(inflationRate) || math.IsInf(inflationRate, 0) || inflationRate < 0 {
		inflationRate = 0
	}

	livingMultiplier := rec.LivingCostIndex / constants.LivingIndexBaseline
	rentAnnual := rec.RentUSD * constants.MonthsPerYear
	baseLiving := nyBaseline * livingMultiplier

	result := Result{
		DurationYears:    duration,
		LivingMultiplier: livingMultiplier,
		ExchangeRate:     rec.ExchangeRate,
		NYBaseline:       nyBaseline,
		InflationRate:    inflationRate,
		Years:            make([]YearLine, 0, duration),
	}

	for y := 1; y <= duration; y++ {
		visa := 0.0
		if y == 1 {
			visa = rec.VisaFeeUSD
		}
		direct := rec.TuitionUSD + rentAnnual + rec.InsuranceUSD + visa
		living := baseLiving * math.Pow(1+inflationRate, float64(y-1))
		total := direct + living

		line := YearLine{
			Year:         y,
			TuitionUSD:   rec.TuitionUSD,
			RentUSD:      rentAnnual,
			InsuranceUSD: rec.InsuranceUSD,
			VisaUSD:      visa,
			DirectUSD:    direct,
			LivingUSD:    living,
			TotalUSD:     total,
			TotalLocal:   total * rec.ExchangeRate,
		}
		result.Years = append(result.Years, line)
		result.ProgramTotalUSD += line.TotalUSD
		result.ProgramTotalLocal += line.TotalLocal
	}

	years := float64(duration)
	months := years * constants.MonthsPerYear
	result.AvgYearUSD = result.ProgramTotalUSD / years
	result.AvgYearLocal = result.ProgramTotalLocal / years
	result.AvgMonthUSD = result.ProgramTotalUSD / months
	result.AvgMonthLocal = result.ProgramTotalLocal / months

	return result
}

// Component names a cost column of a YearLine.
type Component struct {
	Key   string
	Label string
	Value func(YearLine) float64
}

// Components lists the stacked cost components in display order.
var Components = []Component{
	{Key: "tuition_usd", Label: "Tuition Usd", Value: func(l YearLine) float64 { return l.TuitionUSD }},
	{Key: "rent_usd", Label: "Rent Usd", Value: func(l YearLine) float64 { return l.RentUSD }},
	{Key: "insurance_usd", Label: "Insurance Usd", Value: func(l YearLine) float64 { return l.InsuranceUSD }},
	{Key: "visa_usd", Label: "Visa Usd", Value: func(l YearLine) float64 { return l.VisaUSD }},
	{Key: "living_usd", Label: "Living Usd", Value: func(l YearLine) float64 { return l.LivingUSD }},
}

// ComponentTotals sums each component over the whole program, in Components order.
func (r Result) ComponentTotals() []float64 {
	totals := make([]float64, len(Components))
	for _, line := range r.Years {
		for i, c := range Components {
			totals[i] += c.Value(line)
		}
	}
	return totals
}
