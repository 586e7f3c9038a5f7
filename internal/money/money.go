// Package money formats krona amounts for display.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Swedish)

// Round rounds half up to a whole krona.
func Round(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// FormatKrona renders v rounded to whole kronor with Swedish digit grouping,
// for example "12 345 kr".
func FormatKrona(v float64) string {
	return printer.Sprintf("%d kr", Round(v))
}

// FormatDeduction renders a deduction as a negative amount, or "0 kr".
func FormatDeduction(v float64) string {
	if Round(v) == 0 {
		return "0 kr"
	}
	return "-" + FormatKrona(v)
}

// FormatPercent renders a rate such as 0.25 as "25 %".
func FormatPercent(rate float64) string {
	return printer.Sprintf("%d %%", Round(rate*100))
}
