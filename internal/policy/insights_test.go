package policy

import (
	"testing"

	"github.com/iwvelando/education-cost-planner/pkg/testutil"
)

func TestSummarize(t *testing.T) {
	insights := Summarize(BuildFrame(threePrograms(), 20000))

	byTotal := []string{"Gamma College", "Alpha University", "Beta Institute"}
	for i, name := range byTotal {
		if insights.TotalAnnual[i].University != name {
			t.Errorf("total_annual[%d] = %s, expected %s", i, insights.TotalAnnual[i].University, name)
		}
	}

	byAffordability := []string{"Gamma College", "Alpha University", "Beta Institute"}
	for i, name := range byAffordability {
		if insights.Affordability[i].University != name {
			t.Errorf("affordability[%d] = %s, expected %s", i, insights.Affordability[i].University, name)
		}
	}

	if len(insights.PolicyGap) != 2 {
		t.Fatalf("expected 2 policy gap groups, got %d", len(insights.PolicyGap))
	}
	xland := insights.PolicyGap[0]
	if xland.Country != "Xland" || xland.Level != "Master" {
		t.Fatalf("expected Xland/Master first, got %s/%s", xland.Country, xland.Level)
	}
	approx(t, "Xland avg total", xland.AvgTotalAnnualUSD, 39550)
	approx(t, "Xland avg affordability", xland.AvgAffordabilityIndex, 50*4900.0/11900.0)
	approx(t, "Xland share above median", xland.ShareAboveMedian, 0.5)
	approx(t, "Yland share above median", insights.PolicyGap[1].ShareAboveMedian, 0)

	if len(insights.Comparative) != 2 {
		t.Fatalf("expected 2 countries, got %d", len(insights.Comparative))
	}
	if insights.Comparative[0].Country != "Yland" {
		t.Errorf("expected the cheapest country first, got %s", insights.Comparative[0].Country)
	}
	x := insights.Comparative[1]
	approx(t, "Xland min", x.MinTotalAnnualUSD, 37100)
	approx(t, "Xland max", x.MaxTotalAnnualUSD, 42000)
	approx(t, "Xland mean", x.MeanTotalAnnualUSD, 39550)
}

func TestSummarizeEmpty(t *testing.T) {
	insights := Summarize(Frame{})
	if insights.TotalAnnual == nil || insights.Affordability == nil || insights.PolicyGap == nil || insights.Comparative == nil {
		t.Fatalf("expected four non-nil tables, got %+v", insights)
	}
	if len(insights.TotalAnnual)+len(insights.Affordability)+len(insights.PolicyGap)+len(insights.Comparative) != 0 {
		t.Errorf("expected four empty tables, got %+v", insights)
	}
}

func TestEconomicContext(t *testing.T) {
	contexts := EconomicContext(BuildFrame(testutil.SampleDataset(), 26000))
	if len(contexts) != 3 {
		t.Fatalf("expected 3 countries, got %d", len(contexts))
	}
	for i := 1; i < len(contexts); i++ {
		if contexts[i-1].LivingIndex > contexts[i].LivingIndex {
			t.Errorf("contexts not ordered by living index: %+v", contexts)
		}
	}
	if contexts[0].Country != "Germany" {
		t.Errorf("expected Germany first, got %s", contexts[0].Country)
	}
	approx(t, "Germany living index", contexts[0].LivingIndex, (70.5+68.2)/2)
}

func TestLevelMedians(t *testing.T) {
	medians := LevelMedians(BuildFrame(threePrograms(), 20000))
	expected := []LevelMedian{
		{Level: "Bachelor", Programs: 1, MedianTotalAnnualUSD: 30100},
		{Level: "Master", Programs: 2, MedianTotalAnnualUSD: 39550},
	}
	if len(medians) != len(expected) {
		t.Fatalf("expected %d levels, got %d", len(expected), len(medians))
	}
	for i, want := range expected {
		if medians[i].Level != want.Level || medians[i].Programs != want.Programs {
			t.Errorf("medians[%d] = %+v, expected %+v", i, medians[i], want)
		}
		approx(t, want.Level+" median", medians[i].MedianTotalAnnualUSD, want.MedianTotalAnnualUSD)
	}
}

func TestDurationMedians(t *testing.T) {
	medians := DurationMedians(BuildFrame(threePrograms(), 20000))
	expected := []DurationMedian{
		{Level: "Bachelor", DurationYears: 3, Programs: 1, MedianTotalAnnualUSD: 30100},
		{Level: "Master", DurationYears: 1, Programs: 1, MedianTotalAnnualUSD: 42000},
		{Level: "Master", DurationYears: 2, Programs: 1, MedianTotalAnnualUSD: 37100},
	}
	if len(medians) != len(expected) {
		t.Fatalf("expected %d groups, got %+v", len(expected), medians)
	}
	for i, want := range expected {
		got := medians[i]
		if got.Level != want.Level || got.DurationYears != want.DurationYears || got.Programs != want.Programs {
			t.Errorf("medians[%d] = %+v, expected %+v", i, got, want)
		}
		approx(t, want.Level+" median", got.MedianTotalAnnualUSD, want.MedianTotalAnnualUSD)
	}

	if got := DurationMedians(Frame{{DurationYears: 2, TotalAnnualUSD: 1}}); len(got) != 0 {
		t.Errorf("rows without a level should be dropped, got %+v", got)
	}
}

func TestTopByTotal(t *testing.T) {
	frame := BuildFrame(threePrograms(), 20000)

	tests := []struct {
		name     string
		n        int
		expected []string
	}{
		{"Top two", 2, []string{"Beta Institute", "Alpha University"}},
		{"More than available", 10, []string{"Beta Institute", "Alpha University", "Gamma College"}},
		{"Zero", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := TopByTotal(frame, tt.n)
			if len(top) != len(tt.expected) {
				t.Fatalf("expected %d rows, got %d", len(tt.expected), len(top))
			}
			for i, name := range tt.expected {
				if top[i].University != name {
					t.Errorf("top[%d] = %s, expected %s", i, top[i].University, name)
				}
			}
		})
	}

	if frame[0].University != "Alpha University" {
		t.Errorf("TopByTotal reordered its input")
	}
}

func TestAnalyze(t *testing.T) {
	target := 30000.0

	baseline, frame := Analyze(threePrograms(), 20000, Levers{}, &target)
	if len(frame) != 3 || len(baseline.Insights.TotalAnnual) != 3 {
		t.Fatalf("expected a three-row analysis, got %d rows", len(frame))
	}
	if baseline.TargetGap.TotalColumn != BaselineColumns.Total {
		t.Errorf("expected baseline columns without levers, got %s", baseline.TargetGap.TotalColumn)
	}

	scenario, _ := Analyze(threePrograms(), 20000, Levers{TuitionCut: 0.5, LivingSubsidy: 0.5}, &target)
	if scenario.TargetGap.TotalColumn != ScenarioColumns.Total {
		t.Errorf("expected scenario columns with active levers, got %s", scenario.TargetGap.TotalColumn)
	}
	approx(t, "scenario top gap", scenario.TargetGap.Programs[0].GapToTargetUSD, -3000)
}
