// Package money formats rupee amounts for the estimate.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Symbol = "₹"
	Suffix = "/-"

	// TextSymbol replaces Symbol where only Latin-1 fonts are available.
	TextSymbol = "Rs."
)

// Format renders an amount as whole rupees in Indian digit grouping,
// e.g. "₹ 1,23,456/-". Fractions round half away from zero.
func Format(amount decimal.Decimal) string {
	return Symbol + " " + Group(amount) + Suffix
}

// FormatText is Format with TextSymbol, e.g. "Rs. 1,23,456/-".
func FormatText(amount decimal.Decimal) string {
	return TextSymbol + " " + Group(amount) + Suffix
}

// Group rounds to whole rupees and applies Indian grouping without symbol.
func Group(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	negative := rounded.IsNegative()
	digits := rounded.Abs().String()

	out := applyIndianGrouping(digits)
	if negative {
		out = "-" + out
	}
	return out
}

// applyIndianGrouping inserts commas using the Indian numbering system:
// the rightmost 3 digits form the first group, then every 2 digits.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	head := s[:n-3]
	lead := len(head) % 2
	if lead > 0 {
		b.WriteString(head[:lead])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(s[n-3:])
	return b.String()
}
