package importer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParser_Parse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/items.csv")
	require.NoError(t, err)

	p := &CSVParser{}
	items, err := p.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, items, 4, "blank row skipped")

	assert.Equal(t, ItemInput{Description: "T.V. UNIT (GROUND FLOOR)", Area: "80", Quantity: "1", Rate: "1050"}, items[0])
	assert.Equal(t, "MODULAR KITCHEN - 3 TANDOMS, 2 WICKER BASKET", items[1].Description)
	assert.Equal(t, ItemInput{Description: "GROUND MASTER BEDROOM", Quantity: "0"}, items[2])
	assert.Equal(t, "     WARDROBE WITH SLIDING DOORS", items[3].Description, "indent kept")
	assert.Equal(t, "1450", items[3].Rate)
}

func TestCSVParser_MissingColumns(t *testing.T) {
	items, err := (&CSVParser{}).Parse(strings.NewReader("desc,price\nPainting,45\n"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ItemInput{Description: "Painting", Rate: "45"}, items[0])
}

func TestCSVParser_NoItemHeader(t *testing.T) {
	_, err := (&CSVParser{}).Parse(strings.NewReader("foo,bar\n1,2\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no item columns")
}

func TestCSVParser_Empty(t *testing.T) {
	items, err := (&CSVParser{}).Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, SampleItems()))
	assert.True(t, strings.HasPrefix(buf.String(), "description,area,qty,rate\n"))

	items, err := (&CSVParser{}).Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, SampleItems(), items)
}

func TestXLSXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, SampleItems()))

	items, err := (&XLSXParser{}).Parse(&buf)
	require.NoError(t, err)
	require.Len(t, items, len(SampleItems()))
	assert.Equal(t, SampleItems()[1], items[1])
	assert.Equal(t, "0", items[0].Quantity)
}

func TestXLSXParser_NotAWorkbook(t *testing.T) {
	_, err := (&XLSXParser{}).Parse(strings.NewReader("plain text"))
	assert.Error(t, err)
}

func TestYAMLParser_Parse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/items.yaml")
	require.NoError(t, err)

	items, err := (&YAMLParser{}).Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, ItemInput{Description: "T.V. UNIT (GROUND FLOOR)", Area: "80", Quantity: "1", Rate: "1050"}, items[0])
	assert.Equal(t, ItemInput{Description: "GROUND MASTER BEDROOM", Quantity: "0"}, items[1])
	assert.Equal(t, ItemInput{Description: "FALSE CEILING", Area: "12.5ft", Rate: "95"}, items[2])
}

func TestYAMLParser_BareList(t *testing.T) {
	items, err := (&YAMLParser{}).Parse(strings.NewReader("- {description: Door, rate: 2500}\n- {}\n"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2500", items[0].Rate)
}

func TestYAMLParser_Errors(t *testing.T) {
	_, err := (&YAMLParser{}).Parse(strings.NewReader("- description: [nested]\n"))
	assert.Error(t, err)

	items, err := (&YAMLParser{}).Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("ods"))
}

func TestRegistry_CaseInsensitiveAndDot(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("CSV"))
	assert.NotNil(t, r.Get(".xlsx"))
	assert.Equal(t, "yaml", r.Get("yml").Format())
	assert.Equal(t, []string{"csv", "xlsx", "yaml", "yml"}, r.Formats())
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVParser{})
	assert.Panics(t, func() { r.Register(&CSVParser{}) })
}

func TestReadFile(t *testing.T) {
	r := DefaultRegistry()
	items, err := r.ReadFile("../../testdata/items.yaml")
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, err = r.ReadFile("../../testdata/items.ods")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = r.ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yml"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("data"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "old.csv"), 0o755))

	files, err := DefaultRegistry().Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "extra.yml", files[0].Name)
	assert.Equal(t, "yaml", files[0].Format)
	assert.Equal(t, "items.csv", files[1].Name)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := DefaultRegistry().Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestYAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "yaml", SampleItems()))
	assert.True(t, strings.HasPrefix(buf.String(), "items:\n"))

	items, err := (&YAMLParser{}).Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, SampleItems(), items)
}

func TestWriteUnsupported(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, "ods", nil))
}
