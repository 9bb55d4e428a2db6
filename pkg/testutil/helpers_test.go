package testutil

import (
	"testing"

	"github.com/iwvelando/education-cost-planner/internal/dataset"
	"go.uber.org/zap"
)

func TestWriteDatasetRoundTrip(t *testing.T) {
	records := SampleRecords()
	path := WriteDataset(t, records)

	ds, err := dataset.Load(zap.NewNop(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Len() != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), ds.Len())
	}
	for i := range records {
		if ds.Records[i] != records[i] {
			t.Errorf("record %d = %+v, expected %+v", i, ds.Records[i], records[i])
		}
	}
}

func TestSampleDatasetHasStandardColumns(t *testing.T) {
	ds := SampleDataset()
	for _, column := range dataset.StandardColumns {
		if !ds.HasColumn(column) {
			t.Errorf("expected column %s", column)
		}
	}
}
