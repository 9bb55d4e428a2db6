// Package format renders monetary amounts for terminal and HTML output.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Amount returns a number with thousands separators and two decimals (e.g., "-1,234.56").
func Amount(amount float64) string {
	return printer.Sprintf("%.2f", amount)
}

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := Amount(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percent renders a fraction such as 0.125 as "12.5%".
func Percent(fraction float64) string {
	return printer.Sprintf("%.1f%%", fraction*100)
}

// Index renders an affordability index with one decimal.
func Index(value float64) string {
	return printer.Sprintf("%.1f", value)
}
