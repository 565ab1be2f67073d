// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"fmt"
	"math"

	"github.com/iwvelando/stockwatch-advisor/pkg/constants"
)

// ToCents converts a dollar amount to integer cents. It returns an error if
// the amount does not land on a cent boundary, i.e. it never silently rounds
// away a sub-cent remainder.
func ToCents(dollars float64) (int64, error) {
	cents := dollars * constants.CentsPerDollar
	nearest := math.Round(cents)
	if math.Abs(cents-nearest) > constants.CentTolerance {
		return 0, fmt.Errorf("$%v has a fractional-cent remainder", dollars)
	}
	return int64(nearest), nil
}

// FromCents converts integer cents back to a dollar amount.
func FromCents(cents int64) float64 {
	return float64(cents) / constants.CentsPerDollar
}

// DollarsToCents converts a dollar amount to fractional cents without any
// boundary check. Used for projection values, which only feed the objective
// and need not be exact currency.
func DollarsToCents(dollars float64) float64 {
	return dollars * constants.CentsPerDollar
}

// Mean returns the arithmetic mean of values. It panics on an empty slice;
// callers validate non-emptiness first.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		panic("mathutil: mean of empty slice")
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}
