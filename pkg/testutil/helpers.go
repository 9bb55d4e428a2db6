// Package testutil provides common fixtures for testing.
package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/iwvelando/education-cost-planner/internal/dataset"
)

// SampleRecords returns a small multi-country dataset covering two study levels.
func SampleRecords() []dataset.Record {
	return []dataset.Record{
		{Country: "USA", City: "Cambridge", University: "Harvard University", Program: "Computer Science", Level: "Master", DurationYears: 2, TuitionUSD: 55400, RentUSD: 2200, InsuranceUSD: 1500, VisaFeeUSD: 160, LivingCostIndex: 83.5, ExchangeRate: 1.0},
		{Country: "UK", City: "London", University: "Imperial College London", Program: "Data Science", Level: "Master", DurationYears: 1, TuitionUSD: 41200, RentUSD: 1800, InsuranceUSD: 800, VisaFeeUSD: 485, LivingCostIndex: 75.8, ExchangeRate: 0.79},
		{Country: "Germany", City: "Munich", University: "Technical University of Munich", Program: "Mechanical Engineering", Level: "Master", DurationYears: 2, TuitionUSD: 0, RentUSD: 1100, InsuranceUSD: 550, VisaFeeUSD: 75, LivingCostIndex: 70.5, ExchangeRate: 0.92},
		{Country: "Germany", City: "Berlin", University: "Humboldt University", Program: "Economics", Level: "Bachelor", DurationYears: 3, TuitionUSD: 500, RentUSD: 900, InsuranceUSD: 550, VisaFeeUSD: 75, LivingCostIndex: 68.2, ExchangeRate: 0.92},
		{Country: "USA", City: "Berkeley", University: "UC Berkeley", Program: "Economics", Level: "Bachelor", DurationYears: 4, TuitionUSD: 44000, RentUSD: 2000, InsuranceUSD: 1400, VisaFeeUSD: 160, LivingCostIndex: 80.1, ExchangeRate: 1.0},
	}
}

// SampleDataset wraps SampleRecords in a dataset carrying every standard column.
func SampleDataset() *dataset.Dataset {
	return dataset.New(SampleRecords()...)
}

// WriteDataset writes records as a CSV file in a temporary directory and
// returns its path.
func WriteDataset(t *testing.T, records []dataset.Record) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "costs.csv")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create dataset: %v", err)
	}
	defer func() {
		_ = file.Close()
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write(dataset.StandardColumns); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for _, rec := range records {
		row := []string{
			rec.University, rec.Country, rec.City, rec.Program, rec.Level,
			strconv.Itoa(rec.DurationYears),
			f(rec.TuitionUSD), f(rec.RentUSD), f(rec.InsuranceUSD), f(rec.VisaFeeUSD),
			f(rec.LivingCostIndex), f(rec.ExchangeRate),
		}
		if err := writer.Write(row); err != nil {
			t.Fatalf("failed to write row: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		t.Fatalf("failed to flush dataset: %v", err)
	}
	return path
}
