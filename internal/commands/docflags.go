package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tanakalajayanth/sairam-quotation/internal/id"
	"github.com/tanakalajayanth/sairam-quotation/internal/importer"
	"github.com/tanakalajayanth/sairam-quotation/internal/ledger"
	"github.com/tanakalajayanth/sairam-quotation/internal/model"
)

// docFlags are the edits every document command can apply after loading
// the items file.
type docFlags struct {
	client string
	hide   []string
	set    []string
	drop   []string
}

func (f *docFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.client, "client", "", "client name printed on the estimate and used for the file name")
	cmd.Flags().StringSliceVar(&f.hide, "hide", nil, "columns to hide: area, qty, price")
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "edit a cell, e.g. r002.rate=1450 (repeatable)")
	cmd.Flags().StringSliceVar(&f.drop, "drop", nil, "row IDs to delete, e.g. r003")
}

// loadEngine builds an engine from an items file and applies the flags.
func loadEngine(path string, f docFlags) (*ledger.Engine, error) {
	items, err := importer.DefaultRegistry().ReadFile(path)
	if err != nil {
		return nil, err
	}
	eng := ledger.NewEngine()
	if err := addItems(eng, items); err != nil {
		return nil, err
	}
	if err := f.apply(eng); err != nil {
		return nil, err
	}
	return eng, nil
}

func addItems(eng *ledger.Engine, items []importer.ItemInput) error {
	for _, in := range items {
		if err := eng.Dispatch(ledger.AddRow{
			Description: in.Description,
			Area:        in.Area,
			Quantity:    in.Quantity,
			Rate:        in.Rate,
		}); err != nil {
			return fmt.Errorf("adding %q: %w", in.Description, err)
		}
	}
	return nil
}

func (f docFlags) apply(eng *ledger.Engine) error {
	if f.client != "" {
		if err := eng.Dispatch(ledger.SetClientName{Name: f.client}); err != nil {
			return err
		}
	}
	for _, rowID := range f.drop {
		del, err := parseDelete(rowID)
		if err != nil {
			return err
		}
		if err := eng.Dispatch(del); err != nil {
			return err
		}
	}
	for _, s := range f.set {
		edit, err := parseAssignment(s)
		if err != nil {
			return err
		}
		if err := eng.Dispatch(edit); err != nil {
			return err
		}
	}
	for _, name := range f.hide {
		col, ok := model.ParseColumn(strings.TrimSpace(name))
		if !ok {
			return fmt.Errorf("hiding %q: %w", name, ledger.ErrUnknownColumn)
		}
		if err := eng.Dispatch(ledger.ToggleColumn{Column: col, Shown: false}); err != nil {
			return err
		}
	}
	return nil
}

// parseDelete checks a row ID such as "r003" before it is deleted.
func parseDelete(s string) (ledger.DeleteRow, error) {
	rowID := strings.TrimSpace(s)
	if _, err := id.ParseRowID(rowID); err != nil {
		return ledger.DeleteRow{}, fmt.Errorf("deleting: %w", err)
	}
	return ledger.DeleteRow{ID: rowID}, nil
}

// parseAssignment parses "r002.rate=1450" into an EditField command.
func parseAssignment(s string) (ledger.EditField, error) {
	target, value, ok := strings.Cut(s, "=")
	if !ok {
		return ledger.EditField{}, fmt.Errorf("parsing %q: want <row>.<field>=<value>", s)
	}
	rowID, fieldName, ok := strings.Cut(strings.TrimSpace(target), ".")
	if !ok || rowID == "" {
		return ledger.EditField{}, fmt.Errorf("parsing %q: want <row>.<field>=<value>", s)
	}
	if _, err := id.ParseRowID(rowID); err != nil {
		return ledger.EditField{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	field, ok := model.ParseField(fieldName)
	if !ok {
		return ledger.EditField{}, fmt.Errorf("parsing %q: %w", s, ledger.ErrUnknownField)
	}
	return ledger.EditField{ID: rowID, Field: field, Value: value}, nil
}
