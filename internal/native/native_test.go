package native

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanakalajayanth/sairam-quotation/internal/document"
	"github.com/tanakalajayanth/sairam-quotation/internal/ledger"
	"github.com/tanakalajayanth/sairam-quotation/internal/model"
)

func TestColumnsFillGrid(t *testing.T) {
	tests := []struct {
		name     string
		flags    model.VisibilityFlags
		wantCols int
		wantDesc int
	}{
		{"all visible", model.AllVisible(), 6, 4},
		{"price hidden", model.AllVisible().With(model.ColumnPrice, false), 5, 6},
		{"all hidden", model.VisibilityFlags{}, 3, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := columns(tt.flags)
			assert.Len(t, cols, tt.wantCols)
			assert.Equal(t, tt.wantDesc, cols[1].size)
			total := 0
			for _, c := range cols {
				total += c.size
			}
			assert.Equal(t, gridSize, total)
			assert.Equal(t, "Amount", cols[len(cols)-1].title)
		})
	}
}

func TestSave(t *testing.T) {
	e := ledger.NewEngine()
	require.NoError(t, e.Dispatch(ledger.AddRow{Description: "T.V. UNIT (GROUND FLOOR)", Area: "80", Quantity: "1", Rate: "1050"}))
	require.NoError(t, e.Dispatch(ledger.AddRow{Description: "GROUND MASTER BEDROOM", Quantity: "0"}))
	require.NoError(t, e.Dispatch(ledger.SetClientName{Name: "Mr. Rao"}))

	dir := t.TempDir()
	p := document.Profile{
		Business: document.Business{Name: "Sai Ram Interiors", Phone: "+91 90000 00000"},
		Title:    "ESTIMATE",
		Notes:    []string{"50% advance."},
	}
	a, err := NewEngine(dir, p, nil).Save(e.Snapshot(), e.Totals(), "Interior_Estimate.pdf")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Mr_Rao_Estimate.pdf"), a.Path)
	assert.Equal(t, 1, a.Pages)
	data, err := os.ReadFile(a.Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, len(data), a.Bytes)
}

func TestGenerateManyRowsSpansPages(t *testing.T) {
	e := ledger.NewEngine()
	for i := 0; i < 80; i++ {
		require.NoError(t, e.Dispatch(ledger.AddRow{Description: "WARDROBE WITH SLIDING DOORS INCLUDES 6 SHELFS AND 2 DRAWERS", Area: "120", Quantity: "1", Rate: "1450"}))
	}
	data, err := Generate(document.Profile{Business: document.Business{Name: "Sai Ram Interiors"}}, e.Snapshot(), e.Totals())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestGenerateCustomPageSize(t *testing.T) {
	e := ledger.NewEngine()
	require.NoError(t, e.Dispatch(ledger.AddRow{Description: "Door", Area: "21", Quantity: "2", Rate: "900"}))
	p := document.Profile{Business: document.Business{Name: "Sai Ram Interiors"}, PageWidthMM: 215.9, PageHeightMM: 279.4}
	data, err := Generate(p, e.Snapshot(), e.Totals())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
