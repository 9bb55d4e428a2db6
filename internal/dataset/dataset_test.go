package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/education-cost-planner/pkg/constants"
	"go.uber.org/zap"
)

const sampleCSV = `Country,City,University,Program,Level,Duration_Years,Tuition_USD,Living_Cost_Index,Rent_USD,Visa_Fee_USD,Insurance_USD,Exchange_Rate
USA,Cambridge,Harvard University,Computer Science,Master,2,55400,83.5,2200,160,1500,1.00
UK,London,Imperial College London,Data Science,Master,1,41200,75.8,1800,485,800,0.79
Canada,Toronto,University of Toronto,Business Analytics,Master,2,38500,72.5,1600,235,900,1.35
Australia,Melbourne,University of Melbourne,Engineering,Bachelor,3,,71.2,1400,450,650,
Germany,Munich,Technical University of Munich,Mechanical Engineering,Master,n/a,0,70.5,1100,75,550,0.92
`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "costs.csv")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	ds, err := Load(zap.NewNop(), writeDataset(t, sampleCSV))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if ds.Len() != 5 {
		t.Fatalf("expected 5 records, got %d", ds.Len())
	}

	harvard := ds.Records[0]
	if harvard.University != "Harvard University" || harvard.Country != "USA" || harvard.Level != "Master" {
		t.Errorf("unexpected identity fields: %+v", harvard)
	}
	if harvard.DurationYears != 2 || harvard.TuitionUSD != 55400 || harvard.RentUSD != 2200 {
		t.Errorf("unexpected cost fields: %+v", harvard)
	}
	if harvard.LivingCostIndex != 83.5 || harvard.ExchangeRate != 1.0 {
		t.Errorf("unexpected index fields: %+v", harvard)
	}
}

func TestLoadCoercesMissingCells(t *testing.T) {
	ds, err := LoadFromReader(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}

	melbourne := ds.Records[3]
	if melbourne.TuitionUSD != 0 {
		t.Errorf("blank tuition should coerce to 0, got %v", melbourne.TuitionUSD)
	}
	if melbourne.ExchangeRate != 1 {
		t.Errorf("blank exchange rate should default to 1, got %v", melbourne.ExchangeRate)
	}

	munich := ds.Records[4]
	if munich.DurationYears != 1 {
		t.Errorf("non-numeric duration should default to 1, got %d", munich.DurationYears)
	}
}

func TestLoadMissingColumnsUseDefaults(t *testing.T) {
	csv := "University,Tuition_USD\nTest U,1000\n"
	ds, err := LoadFromReader(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", ds.Len())
	}

	rec := ds.Records[0]
	if rec.DurationYears != 1 || rec.LivingCostIndex != 100 || rec.ExchangeRate != 1 {
		t.Errorf("expected defaults for absent columns, got %+v", rec)
	}
	if rec.RentUSD != 0 || rec.VisaFeeUSD != 0 {
		t.Errorf("expected zero for absent cost columns, got %+v", rec)
	}
	if ds.HasColumn("Country") {
		t.Errorf("HasColumn(Country) should be false")
	}
}

func TestLoadEmptyInputs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		columns int
	}{
		{"Empty file", "", 0},
		{"Header only", "University,Country\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := LoadFromReader(strings.NewReader(tt.content))
			if err != nil {
				t.Fatalf("LoadFromReader() error = %v", err)
			}
			if ds.Len() != 0 {
				t.Errorf("expected no records, got %d", ds.Len())
			}
			if len(ds.Columns) != tt.columns {
				t.Errorf("expected %d columns, got %v", tt.columns, ds.Columns)
			}
		})
	}
}

func TestLoadStripsByteOrderMark(t *testing.T) {
	ds, err := Load(zap.NewNop(), writeDataset(t, "\ufeff"+sampleCSV))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Columns[0] != "Country" {
		t.Fatalf("expected first column Country, got %q", ds.Columns[0])
	}
	if _, ok := FindUniversity(ds, "harvard"); !ok {
		t.Fatal("expected Harvard University to be found")
	}

	withUniversityFirst := "\ufeffUniversity,Country\nHarvard University,USA\n"
	ds, err = LoadFromReader(strings.NewReader(withUniversityFirst))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if !ds.HasColumn("University") {
		t.Fatalf("expected University column, got %q", ds.Columns)
	}
	if rec, ok := FindUniversity(ds, "Harvard"); !ok || rec.Country != "USA" {
		t.Fatalf("expected Harvard in USA, got %+v (found=%v)", rec, ok)
	}
}

func TestLoadRaggedRows(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, ds *Dataset)
	}{
		{
			name:    "Short row is padded",
			content: "University,Tuition_USD,Exchange_Rate\nA,1,2\nB\nC,3\n",
			check: func(t *testing.T, ds *Dataset) {
				if ds.Len() != 3 {
					t.Fatalf("expected 3 records, got %d", ds.Len())
				}
				b := ds.Records[1]
				if b.University != "B" || b.TuitionUSD != 0 || b.ExchangeRate != 1 {
					t.Errorf("expected defaults for missing cells, got %+v", b)
				}
				c := ds.Records[2]
				if c.TuitionUSD != 3 || c.ExchangeRate != 1 {
					t.Errorf("expected tuition 3 and default rate, got %+v", c)
				}
			},
		},
		{
			name:    "Long row is truncated",
			content: "University,Tuition_USD\nA,1,extra,cells\n",
			check: func(t *testing.T, ds *Dataset) {
				if ds.Len() != 1 || len(ds.Columns) != 2 {
					t.Fatalf("expected 1 record and 2 columns, got %d and %v", ds.Len(), ds.Columns)
				}
				if ds.Records[0].TuitionUSD != 1 {
					t.Errorf("expected tuition 1, got %v", ds.Records[0].TuitionUSD)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := LoadFromReader(strings.NewReader(tt.content))
			if err != nil {
				t.Fatalf("LoadFromReader() error = %v", err)
			}
			tt.check(t, ds)
		})
	}
}

func TestLoadCoercesUnusualCells(t *testing.T) {
	content := "University,Tuition_USD,Duration_Years\n\"A\",\"12,000\",1e10\n"
	ds, err := LoadFromReader(strings.NewReader(content))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	rec := ds.Records[0]
	if rec.TuitionUSD != 0 {
		t.Errorf("thousands separated tuition should coerce to 0, got %v", rec.TuitionUSD)
	}
	if rec.DurationYears != constants.MaxDurationYears {
		t.Errorf("expected duration capped at %d, got %d", constants.MaxDurationYears, rec.DurationYears)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrDatasetMissing) {
		t.Fatalf("expected ErrDatasetMissing, got %v", err)
	}
}

func TestFindUniversity(t *testing.T) {
	ds := New(
		Record{University: ""},
		Record{University: "Harvard University", Country: "USA"},
		Record{University: "Harvard Extension", Country: "USA"},
		Record{University: "University of Toronto", Country: "Canada"},
	)

	tests := []struct {
		name     string
		query    string
		expected string
		found    bool
	}{
		{"Lowercase query", "harvard", "Harvard University", true},
		{"Uppercase query", "TORONTO", "University of Toronto", true},
		{"First match wins", "university", "Harvard University", true},
		{"No match", "oxford", "", false},
		{"Empty query", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := FindUniversity(ds, tt.query)
			if ok != tt.found {
				t.Fatalf("FindUniversity(%q) found = %v, expected %v", tt.query, ok, tt.found)
			}
			if rec.University != tt.expected {
				t.Errorf("FindUniversity(%q) = %q, expected %q", tt.query, rec.University, tt.expected)
			}
		})
	}
}

func TestFindUniversityWithoutColumn(t *testing.T) {
	ds := &Dataset{Columns: []string{"Country"}, Records: []Record{{University: "Harvard University"}}}
	if _, ok := FindUniversity(ds, "harvard"); ok {
		t.Errorf("expected no match when the University column is absent")
	}
	if _, ok := FindUniversity(nil, "harvard"); ok {
		t.Errorf("expected no match for a nil dataset")
	}
}

func TestUniversities(t *testing.T) {
	ds := New(
		Record{University: "Zurich Institute"},
		Record{University: "Aalto University"},
		Record{University: "Zurich Institute"},
		Record{University: ""},
	)

	got := ds.Universities()
	if len(got) != 2 || got[0] != "Aalto University" || got[1] != "Zurich Institute" {
		t.Errorf("Universities() = %v", got)
	}

	sample := ds.SampleUniversities(1)
	if len(sample) != 1 || sample[0] != "Zurich Institute" {
		t.Errorf("SampleUniversities(1) = %v", sample)
	}
}
