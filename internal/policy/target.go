package policy

import (
	"math"
	"sort"

	"github.com/iwvelando/education-cost-planner/pkg/constants"
	"github.com/iwvelando/education-cost-planner/pkg/mathutil"
)

// CostColumns names the columns a target gap analysis reads. Tuition and
// Indirect are optional: when a row does not expose them the matching share
// is left out of the per-group table.
type CostColumns struct {
	Total    string
	Tuition  string
	Indirect string
}

// BaselineColumns reads a policy frame.
var BaselineColumns = CostColumns{
	Total:    constants.ColumnTotalAnnualUSD,
	Tuition:  constants.ColumnTuitionUSD,
	Indirect: constants.ColumnIndirectAnnualUSD,
}

// ScenarioColumns reads the re-costed columns of a scenario frame.
var ScenarioColumns = CostColumns{
	Total:    constants.ColumnScenarioTotalAnnualUSD,
	Tuition:  constants.ColumnScenarioTuitionAnnualUSD,
	Indirect: constants.ColumnScenarioIndirectAnnualUSD,
}

// ProgramGap is one program measured against the target.
type ProgramGap struct {
	Country        string  `json:"country"`
	University     string  `json:"university"`
	Program        string  `json:"program"`
	Level          string  `json:"level"`
	TotalAnnualUSD float64 `json:"total_annual_usd"`
	GapToTargetUSD float64 `json:"gap_to_target_usd"`
	AboveTarget    bool    `json:"above_target"`
}

// GroupGap summarises the target gap of a country and level.
type GroupGap struct {
	CountryLevel
	AvgGapToTargetUSD float64  `json:"avg_gap_to_target_usd"`
	ShareAboveTarget  float64  `json:"share_above_target"`
	MeanTuitionShare  *float64 `json:"mean_tuition_share,omitempty"`
	MeanLivingShare   *float64 `json:"mean_living_share,omitempty"`
}

// TargetGapTables holds the per-program and per-group target gap tables.
type TargetGapTables struct {
	Target         float64      `json:"target"`
	TotalColumn    string       `json:"total_column"`
	Programs       []ProgramGap `json:"programs"`
	ByCountryLevel []GroupGap   `json:"by_country_level"`
}

// ComputeTargetGapTables measures every row's cost column against target.
// A nil or non-finite target falls back to the median of the total column.
// Programs are ordered by gap, largest overage first; groups by average gap.
func ComputeTargetGapTables[R Row](rows []R, target *float64, cols CostColumns) TargetGapTables {
	tables := TargetGapTables{
		TotalColumn:    cols.Total,
		Programs:       []ProgramGap{},
		ByCountryLevel: []GroupGap{},
	}
	if len(rows) == 0 {
		if target != nil && mathutil.IsFinite(*target) {
			tables.Target = *target
		}
		return tables
	}
	if _, ok := rows[0].Column(cols.Total); !ok {
		return tables
	}

	totals := make([]float64, len(rows))
	for i, row := range rows {
		totals[i], _ = row.Column(cols.Total)
	}

	resolved := math.NaN()
	if target != nil {
		resolved = *target
	}
	if !mathutil.IsFinite(resolved) {
		resolved = mathutil.Median(totals)
	}
	tables.Target = resolved

	_, hasTuition := rows[0].Column(cols.Tuition)
	_, hasIndirect := rows[0].Column(cols.Indirect)

	gaps := make([]ProgramGap, len(rows))
	for i, row := range rows {
		d := row.Describe()
		gap := totals[i] - resolved
		gaps[i] = ProgramGap{
			Country:        d.Country,
			University:     d.University,
			Program:        d.Program,
			Level:          d.Level,
			TotalAnnualUSD: totals[i],
			GapToTargetUSD: gap,
			AboveTarget:    gap > 0,
		}
	}

	keys, groups := groupIndexes(rows, func(r R) (CountryLevel, bool) {
		return countryLevelKey(r.Describe())
	}, lessCountryLevel)
	for _, key := range keys {
		members := groups[key]
		var gapValues, tuitionShares, livingShares []float64
		above := 0
		for _, idx := range members {
			gapValues = append(gapValues, gaps[idx].GapToTargetUSD)
			if gaps[idx].AboveTarget {
				above++
			}
			if hasTuition {
				tuition, _ := rows[idx].Column(cols.Tuition)
				tuitionShares = append(tuitionShares, mathutil.ShareOf(tuition, totals[idx]))
			}
			if hasIndirect {
				indirect, _ := rows[idx].Column(cols.Indirect)
				livingShares = append(livingShares, mathutil.ShareOf(indirect, totals[idx]))
			}
		}

		group := GroupGap{
			CountryLevel:      key,
			AvgGapToTargetUSD: mathutil.Mean(gapValues),
			ShareAboveTarget:  float64(above) / float64(len(members)),
		}
		if hasTuition {
			share := mathutil.Mean(tuitionShares)
			group.MeanTuitionShare = &share
		}
		if hasIndirect {
			share := mathutil.Mean(livingShares)
			group.MeanLivingShare = &share
		}
		tables.ByCountryLevel = append(tables.ByCountryLevel, group)
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].GapToTargetUSD > gaps[j].GapToTargetUSD
	})
	sort.SliceStable(tables.ByCountryLevel, func(i, j int) bool {
		return tables.ByCountryLevel[i].AvgGapToTargetUSD > tables.ByCountryLevel[j].AvgGapToTargetUSD
	})
	tables.Programs = gaps

	return tables
}

// TargetGapForFrame runs the analysis on a baseline policy frame.
func TargetGapForFrame(frame Frame, target *float64) TargetGapTables {
	return ComputeTargetGapTables([]FrameRow(frame), target, BaselineColumns)
}

// TargetGapForScenario runs the analysis on the re-costed columns of a scenario.
func TargetGapForScenario(rows []ScenarioRow, target *float64) TargetGapTables {
	return ComputeTargetGapTables(rows, target, ScenarioColumns)
}
