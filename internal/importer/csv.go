package importer

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVParser reads items from a CSV file with a header row.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads a CSV and returns its items. Rows may be shorter than the
// header; missing cells are empty.
func (p *CSVParser) Parse(r io.Reader) ([]ItemInput, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading items CSV: %w", err)
	}
	return rowsToItems(records)
}

// WriteCSV writes items with a header row.
func WriteCSV(w io.Writer, items []ItemInput) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, in := range items {
		if err := cw.Write(in.record()); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
