package policy

import "github.com/iwvelando/education-cost-planner/internal/dataset"

// Report bundles the outcome of one policy analysis.
type Report struct {
	NYBaseline float64         `json:"ny_baseline"`
	Levers     Levers          `json:"levers"`
	Insights   Insights        `json:"insights"`
	TargetGap  TargetGapTables `json:"target_gap"`
}

// Analyze builds the policy frame of ds, summarises it and measures it against
// target. When a lever is active the target gap is taken on the scenario
// columns, otherwise on the baseline columns. The frame is returned for
// callers that chart it.
func Analyze(ds *dataset.Dataset, nyBaseline float64, levers Levers, target *float64) (Report, Frame) {
	frame := BuildFrame(ds, nyBaseline)
	report := Report{
		NYBaseline: nyBaseline,
		Levers:     levers,
		Insights:   Summarize(frame),
	}
	if levers.Active() {
		report.TargetGap = TargetGapForScenario(levers.Apply(frame), target)
	} else {
		report.TargetGap = TargetGapForFrame(frame, target)
	}
	return report, frame
}
