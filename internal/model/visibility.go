package model

import "strings"

// Column is a toggleable column of the quotation table.
type Column string

const (
	ColumnArea     Column = "area"
	ColumnQuantity Column = "qty"
	ColumnPrice    Column = "price"
)

// Columns lists the toggleable columns in display order.
var Columns = []Column{ColumnArea, ColumnQuantity, ColumnPrice}

// ParseColumn resolves a user-supplied column name.
func ParseColumn(s string) (Column, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "area":
		return ColumnArea, true
	case "qty", "quantity":
		return ColumnQuantity, true
	case "price", "rate":
		return ColumnPrice, true
	}
	return "", false
}

// HiddenClass is the CSS class the rendered table carries while the column is hidden.
func (c Column) HiddenClass() string {
	return "hide-" + string(c)
}

// VisibilityFlags holds the three column toggles. They apply to every row
// and to the subtotal alike.
type VisibilityFlags struct {
	Area     bool
	Quantity bool
	Price    bool
}

// AllVisible returns flags with every column shown.
func AllVisible() VisibilityFlags {
	return VisibilityFlags{Area: true, Quantity: true, Price: true}
}

// Shown reports whether a column is visible.
func (v VisibilityFlags) Shown(c Column) bool {
	switch c {
	case ColumnArea:
		return v.Area
	case ColumnQuantity:
		return v.Quantity
	case ColumnPrice:
		return v.Price
	}
	return false
}

// With returns a copy with one column set. Unknown columns leave v unchanged.
func (v VisibilityFlags) With(c Column, shown bool) VisibilityFlags {
	switch c {
	case ColumnArea:
		v.Area = shown
	case ColumnQuantity:
		v.Quantity = shown
	case ColumnPrice:
		v.Price = shown
	}
	return v
}

// HiddenClasses returns the table classes for the hidden columns.
func (v VisibilityFlags) HiddenClasses() []string {
	var classes []string
	for _, c := range Columns {
		if !v.Shown(c) {
			classes = append(classes, c.HiddenClass())
		}
	}
	return classes
}
