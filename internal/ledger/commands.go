package ledger

import (
	"errors"
	"fmt"

	"github.com/tanakalajayanth/sairam-quotation/internal/model"
)

var (
	ErrRowNotFound   = errors.New("row not found")
	ErrUnknownField  = errors.New("unknown field")
	ErrUnknownColumn = errors.New("unknown column")
)

// Command is a mutation dispatched into the Engine.
type Command interface {
	apply(doc *model.Document, nextID func() string) (recompute bool, err error)
}

// AddRow appends a row. Empty numeric fields default to "1".
type AddRow struct {
	Description string
	Area        string
	Quantity    string
	Rate        string
}

func (c AddRow) apply(doc *model.Document, nextID func() string) (bool, error) {
	doc.Items = append(doc.Items, model.NewLineItem(nextID(), c.Description, c.Area, c.Quantity, c.Rate))
	return true, nil
}

// DeleteRow removes a row immediately.
type DeleteRow struct {
	ID string
}

func (c DeleteRow) apply(doc *model.Document, _ func() string) (bool, error) {
	i := indexOf(doc.Items, c.ID)
	if i < 0 {
		return false, fmt.Errorf("deleting %s: %w", c.ID, ErrRowNotFound)
	}
	doc.Items = append(doc.Items[:i], doc.Items[i+1:]...)
	return true, nil
}

// ToggleColumn shows or hides a column for every row.
type ToggleColumn struct {
	Column model.Column
	Shown  bool
}

func (c ToggleColumn) apply(doc *model.Document, _ func() string) (bool, error) {
	if _, ok := model.ParseColumn(string(c.Column)); !ok {
		return false, fmt.Errorf("toggling %q: %w", c.Column, ErrUnknownColumn)
	}
	doc.Visibility = doc.Visibility.With(c.Column, c.Shown)
	return true, nil
}

// EditField replaces the text of one cell.
type EditField struct {
	ID    string
	Field model.Field
	Value string
}

func (c EditField) apply(doc *model.Document, _ func() string) (bool, error) {
	i := indexOf(doc.Items, c.ID)
	if i < 0 {
		return false, fmt.Errorf("editing %s: %w", c.ID, ErrRowNotFound)
	}
	if !doc.Items[i].Set(c.Field, c.Value) {
		return false, fmt.Errorf("editing %s.%s: %w", c.ID, c.Field, ErrUnknownField)
	}
	return true, nil
}

// SetClientName changes the name used for the export filename. Figures are
// unaffected, so no recompute follows.
type SetClientName struct {
	Name string
}

func (c SetClientName) apply(doc *model.Document, _ func() string) (bool, error) {
	doc.ClientName = c.Name
	return false, nil
}

func indexOf(items []model.LineItem, rowID string) int {
	for i, it := range items {
		if it.ID == rowID {
			return i
		}
	}
	return -1
}
