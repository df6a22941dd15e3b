package model

import "strings"

// DefaultFieldValue is what an empty numeric field holds when a row is created.
const DefaultFieldValue = "1"

// Field names an editable cell of a line item.
type Field string

const (
	FieldDescription Field = "description"
	FieldArea        Field = "area"
	FieldQuantity    Field = "qty"
	FieldRate        Field = "rate"
)

// ParseField resolves a user-supplied field name. Accepts a few aliases
// ("quantity", "price", "desc").
func ParseField(s string) (Field, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "description", "desc":
		return FieldDescription, true
	case "area":
		return FieldArea, true
	case "qty", "quantity":
		return FieldQuantity, true
	case "rate", "price":
		return FieldRate, true
	}
	return "", false
}

// LineItem is one row of the quotation table. Numeric fields keep the raw
// text the user typed; the amount is never stored here.
type LineItem struct {
	ID          string
	Description string
	Area        string
	Quantity    string
	Rate        string
}

// NewLineItem builds a row, defaulting empty numeric fields to "1".
func NewLineItem(id, description, area, quantity, rate string) LineItem {
	return LineItem{
		ID:          id,
		Description: description,
		Area:        orDefault(area),
		Quantity:    orDefault(quantity),
		Rate:        orDefault(rate),
	}
}

// Get returns the raw text of a field.
func (li LineItem) Get(f Field) string {
	switch f {
	case FieldDescription:
		return li.Description
	case FieldArea:
		return li.Area
	case FieldQuantity:
		return li.Quantity
	case FieldRate:
		return li.Rate
	}
	return ""
}

// Set replaces the raw text of a field. Reports false for an unknown field.
func (li *LineItem) Set(f Field, value string) bool {
	switch f {
	case FieldDescription:
		li.Description = value
	case FieldArea:
		li.Area = value
	case FieldQuantity:
		li.Quantity = value
	case FieldRate:
		li.Rate = value
	default:
		return false
	}
	return true
}

func orDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return DefaultFieldValue
	}
	return s
}
