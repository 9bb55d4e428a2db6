package policy

import (
	"sort"

	"github.com/iwvelando/education-cost-planner/pkg/mathutil"
)

// PolicyGapGroup summarises a country and level.
type PolicyGapGroup struct {
	CountryLevel
	AvgTotalAnnualUSD     float64 `json:"avg_total_annual_usd"`
	AvgAffordabilityIndex float64 `json:"avg_affordability_index"`
	ShareAboveMedian      float64 `json:"share_above_median"`
}

// CountryComparison holds comparative cost statistics of a country.
type CountryComparison struct {
	Country            string  `json:"country"`
	MinTotalAnnualUSD  float64 `json:"min_total_annual_usd"`
	MaxTotalAnnualUSD  float64 `json:"max_total_annual_usd"`
	MeanTotalAnnualUSD float64 `json:"mean_total_annual_usd"`
}

// Insights are the four core policy tables.
type Insights struct {
	TotalAnnual   []FrameRow          `json:"total_annual"`
	Affordability []FrameRow          `json:"affordability"`
	PolicyGap     []PolicyGapGroup    `json:"policy_gap"`
	Comparative   []CountryComparison `json:"comparative"`
}

// Summarize ranks the frame by total cost and by affordability, groups it by
// country and level, and compares countries by mean total cost. An empty
// frame yields four empty tables.
func Summarize(frame Frame) Insights {
	insights := Insights{
		TotalAnnual:   []FrameRow{},
		Affordability: []FrameRow{},
		PolicyGap:     []PolicyGapGroup{},
		Comparative:   []CountryComparison{},
	}
	if len(frame) == 0 {
		return insights
	}

	insights.TotalAnnual = append(insights.TotalAnnual, frame...)
	sort.SliceStable(insights.TotalAnnual, func(i, j int) bool {
		return insights.TotalAnnual[i].TotalAnnualUSD < insights.TotalAnnual[j].TotalAnnualUSD
	})

	insights.Affordability = append(insights.Affordability, frame...)
	sort.SliceStable(insights.Affordability, func(i, j int) bool {
		return insights.Affordability[i].AffordabilityIndex > insights.Affordability[j].AffordabilityIndex
	})

	keys, groups := groupIndexes(frame, func(r FrameRow) (CountryLevel, bool) {
		return countryLevelKey(r.Descriptor)
	}, lessCountryLevel)
	for _, key := range keys {
		members := groups[key]
		var totals, scores []float64
		above := 0
		for _, idx := range members {
			totals = append(totals, frame[idx].TotalAnnualUSD)
			scores = append(scores, frame[idx].AffordabilityIndex)
			if frame[idx].PolicyGapUSD > 0 {
				above++
			}
		}
		insights.PolicyGap = append(insights.PolicyGap, PolicyGapGroup{
			CountryLevel:          key,
			AvgTotalAnnualUSD:     mathutil.Mean(totals),
			AvgAffordabilityIndex: mathutil.Mean(scores),
			ShareAboveMedian:      float64(above) / float64(len(members)),
		})
	}

	countries, byCountry := groupIndexes(frame, func(r FrameRow) (string, bool) {
		return r.Country, r.Country != ""
	}, func(a, b string) bool { return a < b })
	for _, country := range countries {
		totals := make([]float64, 0, len(byCountry[country]))
		for _, idx := range byCountry[country] {
			totals = append(totals, frame[idx].TotalAnnualUSD)
		}
		lo, hi, _ := mathutil.MinMax(totals)
		insights.Comparative = append(insights.Comparative, CountryComparison{
			Country:            country,
			MinTotalAnnualUSD:  lo,
			MaxTotalAnnualUSD:  hi,
			MeanTotalAnnualUSD: mathutil.Mean(totals),
		})
	}
	sort.SliceStable(insights.Comparative, func(i, j int) bool {
		return insights.Comparative[i].MeanTotalAnnualUSD < insights.Comparative[j].MeanTotalAnnualUSD
	})

	return insights
}

// CountryContext is the economic context of a country.
type CountryContext struct {
	Country            string  `json:"country"`
	LivingIndex        float64 `json:"living_index"`
	AffordabilityIndex float64 `json:"affordability_index"`
}

// EconomicContext averages the living-cost index and affordability per
// country, ordered by living-cost index ascending.
func EconomicContext(frame Frame) []CountryContext {
	out := []CountryContext{}
	countries, byCountry := groupIndexes(frame, func(r FrameRow) (string, bool) {
		return r.Country, r.Country != ""
	}, func(a, b string) bool { return a < b })
	for _, country := range countries {
		var living, scores []float64
		for _, idx := range byCountry[country] {
			living = append(living, frame[idx].LivingCostIndex)
			scores = append(scores, frame[idx].AffordabilityIndex)
		}
		out = append(out, CountryContext{
			Country:            country,
			LivingIndex:        mathutil.Mean(living),
			AffordabilityIndex: mathutil.Mean(scores),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LivingIndex < out[j].LivingIndex })
	return out
}

// LevelMedian is the median annual cost of a study level.
type LevelMedian struct {
	Level                string  `json:"level"`
	Programs             int     `json:"programs"`
	MedianTotalAnnualUSD float64 `json:"median_total_annual_usd"`
}

// LevelMedians returns the median total annual cost per level, ordered by level.
func LevelMedians(frame Frame) []LevelMedian {
	out := []LevelMedian{}
	levels, byLevel := groupIndexes(frame, func(r FrameRow) (string, bool) {
		return r.Level, r.Level != ""
	}, func(a, b string) bool { return a < b })
	for _, level := range levels {
		totals := make([]float64, 0, len(byLevel[level]))
		for _, idx := range byLevel[level] {
			totals = append(totals, frame[idx].TotalAnnualUSD)
		}
		out = append(out, LevelMedian{
			Level:                level,
			Programs:             len(totals),
			MedianTotalAnnualUSD: mathutil.Median(totals),
		})
	}
	return out
}

// DurationMedian is the median annual cost of a level at one program length.
type DurationMedian struct {
	Level                string  `json:"level"`
	DurationYears        int     `json:"duration_years"`
	Programs             int     `json:"programs"`
	MedianTotalAnnualUSD float64 `json:"median_total_annual_usd"`
}

type levelDuration struct {
	level    string
	duration int
}

// DurationMedians returns the median total annual cost per level and program
// duration, ordered by level and then duration.
func DurationMedians(frame Frame) []DurationMedian {
	out := []DurationMedian{}
	keys, groups := groupIndexes(frame, func(r FrameRow) (levelDuration, bool) {
		return levelDuration{level: r.Level, duration: r.DurationYears}, r.Level != ""
	}, func(a, b levelDuration) bool {
		if a.level != b.level {
			return a.level < b.level
		}
		return a.duration < b.duration
	})
	for _, key := range keys {
		totals := make([]float64, 0, len(groups[key]))
		for _, idx := range groups[key] {
			totals = append(totals, frame[idx].TotalAnnualUSD)
		}
		out = append(out, DurationMedian{
			Level:                key.level,
			DurationYears:        key.duration,
			Programs:             len(totals),
			MedianTotalAnnualUSD: mathutil.Median(totals),
		})
	}
	return out
}

// TopByTotal returns up to n rows with the highest total annual cost.
func TopByTotal(frame Frame, n int) Frame {
	sorted := append(Frame{}, frame...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalAnnualUSD > sorted[j].TotalAnnualUSD
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
