// Package format provides human-readable rendering of monetary values.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands
// separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if amount < 0 {
		return printer.Sprintf("-$%.2f", -amount)
	}
	return printer.Sprintf("$%.2f", amount)
}

// Percent returns a percentage string with two decimals (e.g., "12.50%").
func Percent(value float64) string {
	return printer.Sprintf("%.2f%%", value)
}
