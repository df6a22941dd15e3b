package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Items"

// XLSXParser reads items from the first sheet of a workbook.
type XLSXParser struct{}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Parse reads the first sheet; its first row is the header.
func (p *XLSXParser) Parse(r io.Reader) ([]ItemInput, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return rowsToItems(rows)
}

// WriteXLSX writes items to a single-sheet workbook.
func WriteXLSX(w io.Writer, items []ItemInput) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, in := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		rec := in.record()
		if err := f.SetSheetRow(xlsxSheet, cell, &rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(xlsxSheet, "A", "A", 60); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
