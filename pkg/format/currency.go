// Package format renders amounts, rates and dates the way Brazilian
// contracts print them.
package format

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DisplayDateLayout is the day/month/year layout used on contracts.
const DisplayDateLayout = "02/01/2006"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency returns a real-denominated string with thousands separators
// (e.g., "R$ 1.234,56" or "-R$ 1.234,56").
func Currency(amount float64) string {
	formatted := NumericCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0,00" {
		return "-R$ " + formatted
	}
	return "R$ " + formatted
}

// NumericCurrency returns an amount without the currency symbol but with
// separators (e.g., "1.234,56").
func NumericCurrency(amount float64) string {
	return printer.Sprintf("%.2f", amount)
}

// Percent renders a fractional rate as a percentage (0.0299 -> "2,99%").
func Percent(rate float64) string {
	return printer.Sprintf("%.2f%%", rate*100)
}

// Date renders a calendar date as dd/mm/yyyy.
func Date(t time.Time) string {
	return t.Format(DisplayDateLayout)
}
