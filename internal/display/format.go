package display

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// inr prints numbers with Indian digit grouping (lakh/crore).
var inr = message.NewPrinter(language.MustParse("en-IN"))

// Currency formats an amount as a whole-unit rupee string with Indian
// grouping, e.g. 100000 -> "₹1,00,000". Negative amounts keep their sign.
func Currency(amount float64) string {
	return inr.Sprintf("₹%v", number.Decimal(amount,
		number.MaxFractionDigits(0),
		number.MinFractionDigits(0)))
}

// Percent formats a fractional value as a percentage with two decimals,
// e.g. 0.1234 -> "12.34%". Zero and negative values format the same way.
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// Ratio formats a unitless metric such as Sharpe at two decimals.
func Ratio(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Date renders an ISO YYYY-MM-DD date in display form ("Jan 2, 2006").
// Anything that does not parse is returned verbatim rather than dropped.
func Date(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2, 2006")
}
