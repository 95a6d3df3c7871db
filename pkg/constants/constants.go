// Package constants provides shared constants for the installment-plan application.
package constants

import "time"

// DateLayout is the format expected for contract and event dates in plan
// files and API payloads.
const DateLayout = "2006-01-02"

// Calendar constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerPeriod is the length of a billing period in day-counted schedules
	DaysPerPeriod = 30

	// NoticePeriodMonths is the buffer before an event in which no
	// installment may fall due
	NoticePeriodMonths = 1

	// MaxPeriods bounds every period count (50 years of months)
	MaxPeriods = 600
)

// Numeric safety bounds
const (
	// MaxSafeInteger is the largest integer a float64 represents exactly (2^53 - 1)
	MaxSafeInteger = 9007199254740991.0

	// MaxCurrency keeps cent-precision exact when amounts are summed
	MaxCurrency = MaxSafeInteger / DecimalPrecision

	// MinRate is the lowest per-period rate accepted by compounding
	MinRate = -0.99

	// MaxRate is the highest per-period rate accepted by compounding
	MaxRate = 1.0

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyPlaces is the number of fractional digits kept on money values
	CurrencyPlaces = 2
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

// Configuration file constants
const (
	// DefaultConfigFile is the default plan request file name
	DefaultConfigFile = "plans.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML plan files (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultServerTimeout bounds how long the server spends reading a request or writing a response
	DefaultServerTimeout = 15 * time.Second
)

// PercentageMultiplier is used for percentage conversions
const PercentageMultiplier = 100.0
