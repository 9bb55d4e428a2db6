// Package policy derives affordability frames from the cost dataset for
// policy analysis: annualised program costs, an affordability index, peer
// gaps, policy scenarios, target gaps and grouped summaries.
//
// Unlike the budget projector, the policy view amortises the visa fee over the
// program duration so that every row expresses an average annual burden.
package policy

import (
	"github.com/iwvelando/education-cost-planner/internal/dataset"
	"github.com/iwvelando/education-cost-planner/pkg/constants"
	"github.com/iwvelando/education-cost-planner/pkg/mathutil"
)

// Descriptor identifies a program.
type Descriptor struct {
	Country    string `json:"country"`
	City       string `json:"city"`
	University string `json:"university"`
	Program    string `json:"program"`
	Level      string `json:"level"`
}

// Row is anything that can take part in a target gap analysis.
type Row interface {
	Describe() Descriptor
	Column(name string) (float64, bool)
}

// FrameRow is one program in the policy frame.
type FrameRow struct {
	Descriptor

	DurationYears   int     `json:"duration_years"`
	TuitionUSD      float64 `json:"tuition_usd"`
	RentUSD         float64 `json:"rent_usd"`
	InsuranceUSD    float64 `json:"insurance_usd"`
	VisaFeeUSD      float64 `json:"visa_fee_usd"`
	LivingCostIndex float64 `json:"living_cost_index"`
	ExchangeRate    float64 `json:"exchange_rate"`

	DirectAnnualUSD    float64 `json:"direct_annual_usd"`
	IndirectAnnualUSD  float64 `json:"indirect_annual_usd"`
	TotalAnnualUSD     float64 `json:"total_annual_usd"`
	AffordabilityIndex float64 `json:"affordability_index"`
	PolicyGapUSD       float64 `json:"policy_gap_usd"`
}

// Frame is the policy view of the whole dataset.
type Frame []FrameRow

// Describe returns the identifying fields of the row.
func (r FrameRow) Describe() Descriptor {
	return r.Descriptor
}

// Column returns a numeric column by its dataset or frame name.
func (r FrameRow) Column(name string) (float64, bool) {
	switch name {
	case constants.ColumnDurationYears:
		return float64(r.DurationYears), true
	case constants.ColumnTuitionUSD:
		return r.TuitionUSD, true
	case constants.ColumnRentUSD:
		return r.RentUSD, true
	case constants.ColumnInsuranceUSD:
		return r.InsuranceUSD, true
	case constants.ColumnVisaFeeUSD:
		return r.VisaFeeUSD, true
	case constants.ColumnLivingCostIndex:
		return r.LivingCostIndex, true
	case constants.ColumnExchangeRate:
		return r.ExchangeRate, true
	case constants.ColumnDirectAnnualUSD:
		return r.DirectAnnualUSD, true
	case constants.ColumnIndirectAnnualUSD:
		return r.IndirectAnnualUSD, true
	case constants.ColumnTotalAnnualUSD:
		return r.TotalAnnualUSD, true
	case constants.ColumnAffordabilityIndex:
		return r.AffordabilityIndex, true
	case constants.ColumnPolicyGapUSD:
		return r.PolicyGapUSD, true
	}
	return 0, false
}

// PolicySplit separates the annual cost into institution-driven direct costs
// (tuition, insurance, amortised visa) and living-related costs (rent plus
// cost of living).
func (r FrameRow) PolicySplit() (direct, living float64) {
	duration := float64(max(r.DurationYears, constants.DefaultDurationYears))
	direct = r.TuitionUSD + r.InsuranceUSD + r.VisaFeeUSD/duration
	living = r.RentUSD*constants.MonthsPerYear + r.IndirectAnnualUSD
	return direct, living
}

// BuildFrame annualises every record against the New York baseline, scores
// affordability across the whole frame and measures each row against the
// median of its study level. An empty dataset yields an empty frame.
func BuildFrame(ds *dataset.Dataset, nyBaseline float64) Frame {
	frame := make(Frame, 0, ds.Len())
	if ds == nil {
		return frame
	}

	for _, rec := range ds.Records {
		duration := max(rec.DurationYears, constants.DefaultDurationYears)
		direct := rec.TuitionUSD + rec.RentUSD*constants.MonthsPerYear + rec.InsuranceUSD + rec.VisaFeeUSD/float64(duration)
		indirect := nyBaseline * (rec.LivingCostIndex / constants.LivingIndexBaseline)

		frame = append(frame, FrameRow{
			Descriptor: Descriptor{
				Country:    rec.Country,
				City:       rec.City,
				University: rec.University,
				Program:    rec.Program,
				Level:      rec.Level,
			},
			DurationYears:     duration,
			TuitionUSD:        rec.TuitionUSD,
			RentUSD:           rec.RentUSD,
			InsuranceUSD:      rec.InsuranceUSD,
			VisaFeeUSD:        rec.VisaFeeUSD,
			LivingCostIndex:   rec.LivingCostIndex,
			ExchangeRate:      rec.ExchangeRate,
			DirectAnnualUSD:   direct,
			IndirectAnnualUSD: indirect,
			TotalAnnualUSD:    direct + indirect,
		})
	}
	if len(frame) == 0 {
		return frame
	}

	totals := make([]float64, len(frame))
	for i, row := range frame {
		totals[i] = row.TotalAnnualUSD
	}
	for i, score := range affordabilityIndex(totals) {
		frame[i].AffordabilityIndex = score
	}

	// Rows without a level have no peer group and keep a zero gap.
	levels, byLevel := groupIndexes(frame, func(r FrameRow) (string, bool) {
		return r.Level, r.Level != ""
	}, func(a, b string) bool { return a < b })
	for _, level := range levels {
		members := byLevel[level]
		values := make([]float64, len(members))
		for i, idx := range members {
			values[i] = frame[idx].TotalAnnualUSD
		}
		median := mathutil.Median(values)
		for _, idx := range members {
			frame[idx].PolicyGapUSD = frame[idx].TotalAnnualUSD - median
		}
	}

	return frame
}

// affordabilityIndex min-max normalises totals onto [0, 100] where the
// cheapest total scores 100 and the most expensive 0. Equal totals all score 50.
func affordabilityIndex(totals []float64) []float64 {
	lo, hi, ok := mathutil.MinMax(totals)
	if !ok {
		return nil
	}
	scores := make([]float64, len(totals))
	for i, total := range totals {
		if hi > lo {
			scores[i] = constants.AffordabilityMax * (hi - total) / (hi - lo)
		} else {
			scores[i] = constants.AffordabilityFlat
		}
	}
	return scores
}
