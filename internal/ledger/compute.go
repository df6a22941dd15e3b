// Package ledger owns the quotation state and derives row amounts and the
// subtotal from it.
package ledger

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tanakalajayanth/sairam-quotation/internal/model"
)

var (
	one = decimal.NewFromInt(1)

	// Leading decimal literal, as a browser number parse reads it.
	numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// NumericValue parses the leading decimal number of a field's text.
// Text with no leading number yields zero, and so do negative values and
// values outside float64 range.
func NumericValue(text string) decimal.Decimal {
	lit := numericPrefix.FindString(strings.TrimSpace(text))
	if lit == "" {
		return decimal.Zero
	}

	sign := ""
	if lit[0] == '+' || lit[0] == '-' {
		sign, lit = lit[:1], lit[1:]
	}
	if strings.HasPrefix(lit, ".") {
		lit = "0" + lit
	}
	if i := strings.IndexAny(lit, "eE"); i > 0 && lit[i-1] == '.' {
		lit = lit[:i-1] + lit[i:]
	}
	lit = strings.TrimSuffix(lit, ".")

	// Exponents are unbounded in decimal; keep values a float64 can hold so
	// formatting stays proportional to what was typed.
	f, err := strconv.ParseFloat(sign+lit, 64)
	if err != nil || math.IsInf(f, 0) || f <= 0 {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(sign + lit)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// RowAmount computes one row's amount under the given visibility.
// A hidden column contributes a factor of one. A visible rate of exactly
// zero forces the amount to zero.
func RowAmount(item model.LineItem, flags model.VisibilityFlags) decimal.Decimal {
	area := effective(flags.Area, item.Area)
	qty := effective(flags.Quantity, item.Quantity)
	rate := effective(flags.Price, item.Rate)

	if flags.Price && rate.IsZero() {
		return decimal.Zero
	}
	return area.Mul(qty).Mul(rate)
}

// Compute derives every row amount and the subtotal. Only rows with a
// strictly positive amount are summed.
func Compute(items []model.LineItem, flags model.VisibilityFlags) model.Totals {
	totals := model.Totals{
		Rows:     make([]model.RowAmount, 0, len(items)),
		Subtotal: decimal.Zero,
	}
	for _, item := range items {
		amount := RowAmount(item, flags)
		totals.Rows = append(totals.Rows, model.RowAmount{ID: item.ID, Amount: amount})
		if amount.IsPositive() {
			totals.Subtotal = totals.Subtotal.Add(amount)
		}
	}
	return totals
}

func effective(shown bool, text string) decimal.Decimal {
	if !shown {
		return one
	}
	return NumericValue(text)
}
