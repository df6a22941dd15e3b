package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is the quotation being edited: rows in display/print order, the
// column toggles, and the client name used for the export filename.
type Document struct {
	Items      []LineItem
	Visibility VisibilityFlags
	ClientName string
	Date       time.Time
}

// Clone returns a deep copy safe to hand to renderers.
func (d Document) Clone() Document {
	c := d
	c.Items = append([]LineItem(nil), d.Items...)
	return c
}

// RowAmount is the derived amount of one row.
type RowAmount struct {
	ID     string
	Amount decimal.Decimal
}

// Totals is the output of a recompute: amounts in row order plus subtotal.
type Totals struct {
	Rows     []RowAmount
	Subtotal decimal.Decimal
}

// Amount returns the amount computed for a row ID.
func (t Totals) Amount(id string) (decimal.Decimal, bool) {
	for _, r := range t.Rows {
		if r.ID == id {
			return r.Amount, true
		}
	}
	return decimal.Zero, false
}

// Equal reports whether two totals carry the same amounts in the same order.
func (t Totals) Equal(o Totals) bool {
	if len(t.Rows) != len(o.Rows) || !t.Subtotal.Equal(o.Subtotal) {
		return false
	}
	for i := range t.Rows {
		if t.Rows[i].ID != o.Rows[i].ID || !t.Rows[i].Amount.Equal(o.Rows[i].Amount) {
			return false
		}
	}
	return true
}
