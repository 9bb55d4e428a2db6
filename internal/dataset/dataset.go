// Package dataset loads the international education cost table and looks up
// programs in it. Every numeric cell is coerced on load, so consumers only ever
// see well-typed records.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/iwvelando/education-cost-planner/pkg/coerce"
	"github.com/iwvelando/education-cost-planner/pkg/constants"
	"go.uber.org/zap"
)

// ErrDatasetMissing is returned when the dataset file does not exist.
var ErrDatasetMissing = errors.New("dataset file not found")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Record is one program row of the dataset.
type Record struct {
	University string `json:"university"`
	Country    string `json:"country"`
	City       string `json:"city"`
	Program    string `json:"program"`
	Level      string `json:"level"`

	DurationYears   int     `json:"duration_years"`
	TuitionUSD      float64 `json:"tuition_usd"`   // per year
	RentUSD         float64 `json:"rent_usd"`      // per month
	InsuranceUSD    float64 `json:"insurance_usd"` // per year
	VisaFeeUSD      float64 `json:"visa_fee_usd"`  // one-time
	LivingCostIndex float64 `json:"living_cost_index"`
	ExchangeRate    float64 `json:"exchange_rate"` // local units per 1 USD
}

// Dataset is an immutable snapshot of the cost table.
type Dataset struct {
	Columns []string
	Records []Record
}

// StandardColumns lists every column the planner understands.
var StandardColumns = []string{
	constants.ColumnUniversity,
	constants.ColumnCountry,
	constants.ColumnCity,
	constants.ColumnProgram,
	constants.ColumnLevel,
	constants.ColumnDurationYears,
	constants.ColumnTuitionUSD,
	constants.ColumnRentUSD,
	constants.ColumnInsuranceUSD,
	constants.ColumnVisaFeeUSD,
	constants.ColumnLivingCostIndex,
	constants.ColumnExchangeRate,
}

// New builds an in-memory dataset carrying all standard columns.
func New(records ...Record) *Dataset {
	columns := make([]string, len(StandardColumns))
	copy(columns, StandardColumns)
	return &Dataset{Columns: columns, Records: records}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// HasColumn reports whether the source table carried the named column.
func (d *Dataset) HasColumn(name string) bool {
	if d == nil {
		return false
	}
	for _, column := range d.Columns {
		if column == name {
			return true
		}
	}
	return false
}

// Load reads the dataset at path. A missing file yields ErrDatasetMissing.
func Load(logger *zap.Logger, path string) (*Dataset, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetMissing, path)
		}
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	ds, err := LoadFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}

	logger.Debug("dataset loaded",
		zap.String("op", "dataset.Load"),
		zap.String("path", path),
		zap.Int("rows", ds.Len()),
		zap.Strings("columns", ds.Columns),
	)
	return ds, nil
}

// LoadFromReader parses CSV data. Columns that are absent from the header are
// filled with their defaults rather than rejected. A leading byte order mark is
// ignored, short rows are padded with missing cells and cells beyond the
// header are dropped.
func LoadFromReader(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return &Dataset{}, nil
	}

	records, err := readRecords(data)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		// A header without rows is a valid, empty table.
		return &Dataset{Columns: records[0]}, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, df.Err
	}

	columns := df.Names()
	ds := &Dataset{Columns: columns, Records: make([]Record, df.Nrow())}

	cells := make(map[string][]string, len(columns))
	for _, name := range columns {
		cells[name] = columnValues(df.Col(name))
	}
	cell := func(name string, row int) string {
		values, ok := cells[name]
		if !ok || row >= len(values) {
			return ""
		}
		return values[row]
	}

	for i := range ds.Records {
		ds.Records[i] = Record{
			University:      strings.TrimSpace(cell(constants.ColumnUniversity, i)),
			Country:         strings.TrimSpace(cell(constants.ColumnCountry, i)),
			City:            strings.TrimSpace(cell(constants.ColumnCity, i)),
			Program:         strings.TrimSpace(cell(constants.ColumnProgram, i)),
			Level:           strings.TrimSpace(cell(constants.ColumnLevel, i)),
			DurationYears:   coerce.PositiveInt(cell(constants.ColumnDurationYears, i), constants.DefaultDurationYears, constants.MaxDurationYears),
			TuitionUSD:      coerce.Float(cell(constants.ColumnTuitionUSD, i), 0),
			RentUSD:         coerce.Float(cell(constants.ColumnRentUSD, i), 0),
			InsuranceUSD:    coerce.Float(cell(constants.ColumnInsuranceUSD, i), 0),
			VisaFeeUSD:      coerce.Float(cell(constants.ColumnVisaFeeUSD, i), 0),
			LivingCostIndex: coerce.Float(cell(constants.ColumnLivingCostIndex, i), constants.LivingIndexBaseline),
			ExchangeRate:    coerce.Float(cell(constants.ColumnExchangeRate, i), constants.DefaultExchangeRate),
		}
	}

	return ds, nil
}

// readRecords reads every CSV record and squares the rows up to the header
// width.
func readRecords(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV records: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("dataset has no header")
	}

	width := len(records[0])
	for i, row := range records[1:] {
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			records[i+1] = padded
		case len(row) > width:
			records[i+1] = row[:width]
		}
	}
	return records, nil
}

// columnValues returns the raw cells of a column with missing values blanked.
func columnValues(col series.Series) []string {
	records := col.Records()
	missing := col.IsNaN()
	for i := range records {
		if i < len(missing) && missing[i] {
			records[i] = ""
		}
	}
	return records
}

// FindUniversity returns the first record whose University contains query,
// ignoring case. Records with a missing University never match, and a dataset
// without a University column matches nothing.
func FindUniversity(ds *Dataset, query string) (Record, bool) {
	if !ds.HasColumn(constants.ColumnUniversity) {
		return Record{}, false
	}
	needle := strings.ToLower(query)
	if needle == "" {
		return Record{}, false
	}
	for _, rec := range ds.Records {
		if rec.University == "" {
			continue
		}
		if strings.Contains(strings.ToLower(rec.University), needle) {
			return rec, true
		}
	}
	return Record{}, false
}

// Universities returns the sorted unique non-empty university names.
func (d *Dataset) Universities() []string {
	names := d.uniqueUniversities(0)
	sort.Strings(names)
	return names
}

// SampleUniversities returns up to limit unique names in dataset order.
func (d *Dataset) SampleUniversities(limit int) []string {
	return d.uniqueUniversities(limit)
}

func (d *Dataset) uniqueUniversities(limit int) []string {
	if !d.HasColumn(constants.ColumnUniversity) {
		return nil
	}
	seen := make(map[string]struct{})
	var names []string
	for _, rec := range d.Records {
		if rec.University == "" {
			continue
		}
		if _, ok := seen[rec.University]; ok {
			continue
		}
		seen[rec.University] = struct{}{}
		names = append(names, rec.University)
		if limit > 0 && len(names) >= limit {
			break
		}
	}
	return names
}
