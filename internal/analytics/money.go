// Package analytics derives monthly, per-category and budget views from a
// list of transactions. Every function is a pure transform over data the
// caller already fetched: none performs I/O and none fails on empty or
// degenerate input.
package analytics

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Round2 rounds a monetary amount to cents for presentation. Accumulation
// elsewhere in this package keeps full float precision.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Percent returns round(part / whole * 100), or 0 when whole is not positive.
func Percent(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}

// FormatCurrency renders an amount in US dollars, e.g. "$1,234.50".
func FormatCurrency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", Round2(v))
}
