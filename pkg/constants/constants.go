// Package constants provides shared constants for the education cost planner.
package constants

// Dataset column names. Matching is case-sensitive.
const (
	ColumnUniversity      = "University"
	ColumnCountry         = "Country"
	ColumnCity            = "City"
	ColumnProgram         = "Program"
	ColumnLevel           = "Level"
	ColumnDurationYears   = "Duration_Years"
	ColumnTuitionUSD      = "Tuition_USD"
	ColumnRentUSD         = "Rent_USD"
	ColumnInsuranceUSD    = "Insurance_USD"
	ColumnVisaFeeUSD      = "Visa_Fee_USD"
	ColumnLivingCostIndex = "Living_Cost_Index"
	ColumnExchangeRate    = "Exchange_Rate"
)

// Derived policy frame column names.
const (
	ColumnDirectAnnualUSD    = "direct_annual_usd"
	ColumnIndirectAnnualUSD  = "indirect_annual_usd"
	ColumnTotalAnnualUSD     = "total_annual_usd"
	ColumnAffordabilityIndex = "affordability_index"
	ColumnPolicyGapUSD       = "policy_gap_usd"

	ColumnScenarioTuitionAnnualUSD  = "scenario_tuition_annual_usd"
	ColumnScenarioDirectAnnualUSD   = "scenario_direct_annual_usd"
	ColumnScenarioIndirectAnnualUSD = "scenario_indirect_annual_usd"
	ColumnScenarioTotalAnnualUSD    = "scenario_total_annual_usd"
	ColumnScenarioAffordability     = "scenario_affordability_index"
)

// Cost model constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// LivingIndexBaseline is the Living_Cost_Index value of New York.
	LivingIndexBaseline = 100.0

	// DefaultDurationYears is used when Duration_Years is missing or not positive.
	DefaultDurationYears = 1

	// MaxDurationYears caps Duration_Years; longer values are treated as this many years.
	MaxDurationYears = 10

	// DefaultExchangeRate is used when Exchange_Rate is missing.
	DefaultExchangeRate = 1.0

	// AffordabilityMax is the index given to the cheapest program of a frame.
	AffordabilityMax = 100.0

	// AffordabilityFlat is the index given to every row when all totals are equal.
	AffordabilityFlat = 50.0

	// ShareDenominatorFloor replaces a zero total when computing cost shares.
	ShareDenominatorFloor = 1e-9

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// FloatTolerance is the tolerance for comparing derived float values.
	FloatTolerance = 1e-6
)

// Planner defaults
const (
	// DefaultNYBaseline is the annual New York living cost used when none is given (USD).
	DefaultNYBaseline = 26000.0

	// DefaultInflationRate is the fractional annual living-cost inflation used by the web UI.
	DefaultInflationRate = 0.03

	// DefaultCLIInflationPercent is the living-cost inflation of the CLI, which
	// projects flat living costs unless asked otherwise.
	DefaultCLIInflationPercent = 0.0

	// SampleUniversityLimit caps the number of names listed when a lookup fails.
	SampleUniversityLimit = 20

	// DefaultTopPrograms is the number of rows printed per ranking table by the CLI.
	DefaultTopPrograms = 10
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// File constants
const (
	// DefaultDatasetFile is the dataset read when no path is given.
	DefaultDatasetFile = "International_Education_Costs.csv"

	// DefaultConfigFile is the default CLI configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultPlotFile is written when --plot is given without --save-plot.
	DefaultPlotFile = "_budget_plot.png"

	// DefaultChartDir is where the web UI writes generated charts.
	DefaultChartDir = "static"

	// EnvPrefix prefixes environment overrides of the CLI configuration.
	EnvPrefix = "EDUCOST"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxFormSizeBytes caps the size of submitted form bodies (64 KB)
	DefaultMaxFormSizeBytes int64 = 64 * 1024
)
