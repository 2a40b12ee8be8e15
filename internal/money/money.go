// Package money formats float amounts for display.
//
// Amounts are stored and summed as float64; rounding happens only here,
// through decimal so that values like 2.675 round half away from zero the
// way a cashier expects instead of following the binary representation.
package money

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Fixed renders v with exactly places decimals and no grouping.
func Fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Format renders v as symbol-prefixed, comma-grouped, two-decimal text,
// e.g. "₹12,450.00".
func Format(symbol string, v float64) string {
	return group(symbol, Fixed(v, 2))
}

// Whole renders v rounded to a whole amount, e.g. "₹1,300".
func Whole(symbol string, v float64) string {
	return group(symbol, Fixed(v, 0))
}

func group(symbol, fixed string) string {
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	whole, frac, hasFrac := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		// Beyond int64; fall back to the ungrouped digits.
		return sign(neg) + symbol + fixed
	}

	out := symbol + humanize.Comma(n)
	if hasFrac {
		out += "." + frac
	}
	return sign(neg) + out
}

func sign(neg bool) string {
	if neg {
		return "-"
	}
	return ""
}
