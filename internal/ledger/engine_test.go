package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanakalajayanth/sairam-quotation/internal/model"
)

func TestEngineAddRowAssignsIDsAndDefaults(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Dispatch(AddRow{Description: "T.V. unit"}))
	require.NoError(t, e.Dispatch(AddRow{Description: "Kitchen", Area: "220", Quantity: "1", Rate: "1550"}))

	doc := e.Snapshot()
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "r001", doc.Items[0].ID)
	assert.Equal(t, "r002", doc.Items[1].ID)
	assert.Equal(t, "1", doc.Items[0].Area)

	totals := e.Totals()
	assert.True(t, totals.Subtotal.Equal(dec("341001")), "subtotal %s", totals.Subtotal)
}

func TestEngineEditField(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Dispatch(AddRow{Area: "10", Quantity: "2", Rate: "5"}))
	require.NoError(t, e.Dispatch(EditField{ID: "r001", Field: model.FieldRate, Value: "0"}))

	amount, ok := e.Totals().Amount("r001")
	require.True(t, ok)
	assert.True(t, amount.IsZero())

	err := e.Dispatch(EditField{ID: "r009", Field: model.FieldRate, Value: "1"})
	assert.ErrorIs(t, err, ErrRowNotFound)

	err = e.Dispatch(EditField{ID: "r001", Field: model.Field("amount"), Value: "1"})
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestEngineDeleteRow(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Dispatch(AddRow{Area: "1", Quantity: "1", Rate: "100"}))
	require.NoError(t, e.Dispatch(AddRow{Area: "1", Quantity: "1", Rate: "50"}))
	require.NoError(t, e.Dispatch(DeleteRow{ID: "r001"}))

	doc := e.Snapshot()
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "r002", doc.Items[0].ID)
	assert.True(t, e.Totals().Subtotal.Equal(dec("50")))

	// IDs are never reused.
	require.NoError(t, e.Dispatch(AddRow{}))
	assert.Equal(t, "r003", e.Snapshot().Items[1].ID)

	assert.ErrorIs(t, e.Dispatch(DeleteRow{ID: "r001"}), ErrRowNotFound)
}

func TestEngineToggleColumn(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Dispatch(AddRow{Area: "10", Quantity: "2", Rate: "0"}))
	assert.True(t, e.Totals().Subtotal.IsZero())

	require.NoError(t, e.Dispatch(ToggleColumn{Column: model.ColumnPrice, Shown: false}))
	assert.True(t, e.Totals().Subtotal.Equal(dec("20")))
	assert.False(t, e.Snapshot().Visibility.Price)

	assert.ErrorIs(t, e.Dispatch(ToggleColumn{Column: "amount"}), ErrUnknownColumn)
}

func TestEngineNotifiesListeners(t *testing.T) {
	e := NewEngine()
	var calls int
	var last model.Totals
	e.Subscribe(func(doc model.Document, totals model.Totals) {
		calls++
		last = totals
		assert.Len(t, totals.Rows, len(doc.Items))
	})

	require.NoError(t, e.Dispatch(AddRow{Area: "2", Quantity: "2", Rate: "2"}))
	require.NoError(t, e.Dispatch(SetClientName{Name: "Raj & Sons"}))
	assert.Equal(t, 1, calls, "client name does not recompute")
	assert.True(t, last.Subtotal.Equal(dec("8")))
	assert.Equal(t, "Raj & Sons", e.Snapshot().ClientName)

	e.Recompute()
	assert.Equal(t, 2, calls)
}

func TestEngineRecomputeIdempotent(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Dispatch(AddRow{Area: "120", Quantity: "1", Rate: "1450"}))
	require.NoError(t, e.Dispatch(AddRow{Area: "", Quantity: "2", Rate: "10"}))

	first := e.Recompute()
	second := e.Recompute()
	assert.True(t, first.Equal(second))
}

func TestEngineSnapshotIsCopy(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Dispatch(AddRow{Description: "a"}))
	snap := e.Snapshot()
	snap.Items[0].Description = "changed"
	assert.Equal(t, "a", e.Snapshot().Items[0].Description)
}
