package policy

import (
	"github.com/iwvelando/education-cost-planner/pkg/coerce"
	"github.com/iwvelando/education-cost-planner/pkg/constants"
	"github.com/iwvelando/education-cost-planner/pkg/mathutil"
)

// Levers are the policy instruments of a scenario, both fractions in [0, 1].
type Levers struct {
	TuitionCut    float64 `json:"tuition_cut"`
	LivingSubsidy float64 `json:"living_subsidy"`
}

// LeversFrom builds clamped levers from loosely typed input. Anything that is
// not a number becomes 0.
func LeversFrom(tuitionCut, livingSubsidy interface{}) Levers {
	return Levers{
		TuitionCut:    mathutil.Clamp(coerce.Value(tuitionCut, 0), 0, 1),
		LivingSubsidy: mathutil.Clamp(coerce.Value(livingSubsidy, 0), 0, 1),
	}
}

// Active reports whether either lever changes costs.
func (l Levers) Active() bool {
	return l.TuitionCut > 0 || l.LivingSubsidy > 0
}

// ScenarioRow is a frame row re-costed under a scenario.
type ScenarioRow struct {
	FrameRow

	ScenarioTuitionAnnualUSD   float64 `json:"scenario_tuition_annual_usd"`
	ScenarioDirectAnnualUSD    float64 `json:"scenario_direct_annual_usd"`
	ScenarioIndirectAnnualUSD  float64 `json:"scenario_indirect_annual_usd"`
	ScenarioTotalAnnualUSD     float64 `json:"scenario_total_annual_usd"`
	ScenarioAffordabilityIndex float64 `json:"scenario_affordability_index"`
}

// Column returns scenario columns and falls back to the underlying frame row.
func (r ScenarioRow) Column(name string) (float64, bool) {
	switch name {
	case constants.ColumnScenarioTuitionAnnualUSD:
		return r.ScenarioTuitionAnnualUSD, true
	case constants.ColumnScenarioDirectAnnualUSD:
		return r.ScenarioDirectAnnualUSD, true
	case constants.ColumnScenarioIndirectAnnualUSD:
		return r.ScenarioIndirectAnnualUSD, true
	case constants.ColumnScenarioTotalAnnualUSD:
		return r.ScenarioTotalAnnualUSD, true
	case constants.ColumnScenarioAffordability:
		return r.ScenarioAffordabilityIndex, true
	}
	return r.FrameRow.Column(name)
}

// ApplyScenario re-costs frame with tuition scaled by (1 - tuitionCut) and
// living costs scaled by (1 - livingSubsidy). Both levers are clamped to
// [0, 1]; NaN becomes 0. The scenario affordability index is normalised over
// the scenario totals alone.
func ApplyScenario(frame Frame, tuitionCut, livingSubsidy float64) []ScenarioRow {
	levers := Levers{
		TuitionCut:    mathutil.Clamp(tuitionCut, 0, 1),
		LivingSubsidy: mathutil.Clamp(livingSubsidy, 0, 1),
	}
	return levers.Apply(frame)
}

// Apply re-costs frame under the levers. Levers are used as given.
func (l Levers) Apply(frame Frame) []ScenarioRow {
	rows := make([]ScenarioRow, len(frame))
	if len(frame) == 0 {
		return rows
	}

	totals := make([]float64, len(frame))
	for i, row := range frame {
		duration := float64(max(row.DurationYears, constants.DefaultDurationYears))
		tuition := row.TuitionUSD * (1 - l.TuitionCut)
		direct := tuition + row.RentUSD*constants.MonthsPerYear + row.InsuranceUSD + row.VisaFeeUSD/duration
		indirect := row.IndirectAnnualUSD * (1 - l.LivingSubsidy)

		rows[i] = ScenarioRow{
			FrameRow:                  row,
			ScenarioTuitionAnnualUSD:  tuition,
			ScenarioDirectAnnualUSD:   direct,
			ScenarioIndirectAnnualUSD: indirect,
			ScenarioTotalAnnualUSD:    direct + indirect,
		}
		totals[i] = rows[i].ScenarioTotalAnnualUSD
	}

	for i, score := range affordabilityIndex(totals) {
		rows[i].ScenarioAffordabilityIndex = score
	}
	return rows
}
