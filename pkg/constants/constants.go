// Package constants provides shared constants for the stockwatch-advisor
// application.
package constants

// Monetary constants
const (
	// CentsPerDollar converts between dollars and cents, the minor unit all
	// solver arithmetic is done in.
	CentsPerDollar = 100

	// CashUnitCostCents is the cost of the synthetic "hold your money"
	// variable: one cent buys one cent.
	CashUnitCostCents = 1

	// CashUnitReturnCents is the projected value of one held cent. Holding
	// money neither gains nor loses.
	CashUnitReturnCents = 1.0

	// CentTolerance is the tolerance used when deciding whether a dollar
	// amount lands exactly on a cent boundary.
	CentTolerance = 1e-6

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "stockwatch.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
)
