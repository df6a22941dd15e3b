package importer

import (
	"fmt"
	"strings"
)

// Header is the column order written by WriteCSV and WriteXLSX.
var Header = []string{"description", "area", "qty", "rate"}

const (
	colDescription = iota
	colArea
	colQuantity
	colRate
	numCols
)

var headerAliases = map[string]int{
	"description": colDescription,
	"desc":        colDescription,
	"item":        colDescription,
	"service":     colDescription,
	"area":        colArea,
	"sqft":        colArea,
	"qty":         colQuantity,
	"quantity":    colQuantity,
	"rate":        colRate,
	"price":       colRate,
}

// columnIndex maps item columns to positions in a header row. Missing
// columns map to -1. Unknown headers are ignored.
type columnIndex [numCols]int

func parseHeader(header []string) (columnIndex, error) {
	var idx columnIndex
	for i := range idx {
		idx[i] = -1
	}
	found := false
	for pos, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		col, ok := headerAliases[key]
		if !ok || idx[col] >= 0 {
			continue
		}
		idx[col] = pos
		found = true
	}
	if !found {
		return idx, fmt.Errorf("no item columns in header %q", strings.Join(header, ","))
	}
	return idx, nil
}

func (idx columnIndex) item(rec []string) ItemInput {
	get := func(col int) string {
		pos := idx[col]
		if pos < 0 || pos >= len(rec) {
			return ""
		}
		return rec[pos]
	}
	return ItemInput{
		Description: get(colDescription),
		Area:        strings.TrimSpace(get(colArea)),
		Quantity:    strings.TrimSpace(get(colQuantity)),
		Rate:        strings.TrimSpace(get(colRate)),
	}
}

func (in ItemInput) record() []string {
	return []string{in.Description, in.Area, in.Quantity, in.Rate}
}

// rowsToItems turns header + data rows into items, skipping blank rows.
func rowsToItems(rows [][]string) ([]ItemInput, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	idx, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}
	var items []ItemInput
	for _, rec := range rows[1:] {
		in := idx.item(rec)
		if in.IsBlank() {
			continue
		}
		items = append(items, in)
	}
	return items, nil
}
