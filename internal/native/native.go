// Package native renders the quotation straight to a vector PDF without a
// browser. Hidden columns are left out of the table.
package native

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"go.uber.org/zap"

	"github.com/tanakalajayanth/sairam-quotation/internal/compositor"
	"github.com/tanakalajayanth/sairam-quotation/internal/document"
	"github.com/tanakalajayanth/sairam-quotation/internal/id"
	"github.com/tanakalajayanth/sairam-quotation/internal/model"
	"github.com/tanakalajayanth/sairam-quotation/internal/money"
	"github.com/tanakalajayanth/sairam-quotation/internal/pdf"
)

const gridSize = 12

var (
	brown     = &props.Color{Red: 122, Green: 92, Blue: 46}
	headerBg  = &props.Color{Red: 243, Green: 236, Blue: 225}
	mutedText = &props.Color{Red: 90, Green: 90, Blue: 90}
)

// column is one table column with its grid width.
type column struct {
	title string
	size  int
	align align.Type
	value func(it model.LineItem, amount string) string
}

// columns returns the visible table columns. The description takes whatever
// grid width the others leave.
func columns(v model.VisibilityFlags) []column {
	cols := []column{
		{title: "S.No", size: 1, align: align.Center},
		{title: "Description", align: align.Left, value: func(it model.LineItem, _ string) string { return it.Description }},
	}
	if v.Shown(model.ColumnArea) {
		cols = append(cols, column{title: "Area (sq.ft)", size: 2, align: align.Right,
			value: func(it model.LineItem, _ string) string { return it.Area }})
	}
	if v.Shown(model.ColumnQuantity) {
		cols = append(cols, column{title: "Qty", size: 1, align: align.Right,
			value: func(it model.LineItem, _ string) string { return it.Quantity }})
	}
	if v.Shown(model.ColumnPrice) {
		cols = append(cols, column{title: "Rate", size: 2, align: align.Right,
			value: func(it model.LineItem, _ string) string { return it.Rate }})
	}
	cols = append(cols, column{title: "Amount", size: 2, align: align.Right,
		value: func(_ model.LineItem, amount string) string { return amount }})

	used := 0
	for _, c := range cols {
		used += c.size
	}
	cols[1].size = gridSize - used
	return cols
}

// Generate returns the PDF bytes for doc.
func Generate(p document.Profile, doc model.Document, totals model.Totals) ([]byte, error) {
	b := config.NewBuilder().WithOrientation(orientation.Vertical)
	if p.PageWidthMM > 0 && p.PageHeightMM > 0 {
		b = b.WithDimensions(p.PageWidthMM, p.PageHeightMM)
	} else {
		b = b.WithPageSize(pagesize.A4)
	}
	cfg := b.
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   mutedText,
		}).
		Build()

	m := maroto.New(cfg)
	addLetterhead(m, p, doc)
	addTable(m, doc, totals)
	addNotes(m, p)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating pdf: %w", err)
	}
	return out.GetBytes(), nil
}

// Engine saves native PDFs into Dir.
type Engine struct {
	Dir     string
	Profile document.Profile
	logger  *zap.Logger
}

// NewEngine creates an Engine.
func NewEngine(dir string, p document.Profile, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{Dir: dir, Profile: p, logger: logger}
}

// Save writes doc under the export filename for its client.
func (e *Engine) Save(doc model.Document, totals model.Totals, fallback string) (*compositor.Artifact, error) {
	data, err := Generate(e.Profile, doc, totals)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(e.Dir, compositor.Filename(doc.ClientName, fallback))
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	a := &compositor.Artifact{Path: path, Pages: pdf.CountPages(data), Bytes: len(data)}
	e.logger.Info("native pdf saved", zap.String("path", a.Path), zap.Int("pages", a.Pages))
	return a, nil
}

func addLetterhead(m core.Maroto, p document.Profile, doc model.Document) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(text.New(p.Business.Name, props.Text{
				Size: 18, Style: fontstyle.Bold, Align: align.Center, Color: brown,
			})),
		),
	)
	if p.Business.Tagline != "" {
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New(p.Business.Tagline, props.Text{
			Size: 9, Style: fontstyle.Italic, Align: align.Center,
		}))))
	}
	contact := p.Business.Address
	if p.Business.Phone != "" {
		contact += "  Ph: " + p.Business.Phone
	}
	if p.Business.Email != "" {
		contact += "  " + p.Business.Email
	}
	if contact != "" {
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New(contact, props.Text{
			Size: 8, Align: align.Center, Color: mutedText,
		}))))
	}
	m.AddRow(4, line.NewCol(12, props.Line{Color: brown, Thickness: 0.6}))
	m.AddRows(row.New(10).Add(col.New(12).Add(text.New(p.Title, props.Text{
		Size: 13, Style: fontstyle.Bold, Align: align.Center, Top: 3,
	}))))

	date := doc.Date
	if date.IsZero() {
		date = time.Now()
	}
	seq := max(p.EstimateSeq, 1)
	m.AddRows(
		row.New(8).Add(
			col.New(7).Add(text.New("To: "+doc.ClientName, props.Text{Size: 10, Style: fontstyle.Bold})),
			col.New(5).Add(text.New(fmt.Sprintf("No: %s   Date: %s",
				id.FormatEstimateNumber(p.EstimatePrefix, date, seq), date.Format("02/01/2006")),
				props.Text{Size: 9, Align: align.Right})),
		),
	)
	m.AddRows(row.New(3))
}

func addTable(m core.Maroto, doc model.Document, totals model.Totals) {
	cols := columns(doc.Visibility)
	headerCell := &props.Cell{BackgroundColor: headerBg}

	header := make([]core.Col, len(cols))
	for i, c := range cols {
		header[i] = col.New(c.size).Add(text.New(c.title, props.Text{
			Size: 8, Style: fontstyle.Bold, Align: c.align, Top: 1.5, Left: 1, Right: 1,
		})).WithStyle(headerCell)
	}
	m.AddRows(row.New(8).Add(header...))

	for i, it := range doc.Items {
		amount, _ := totals.Amount(it.ID)
		cells := make([]core.Col, len(cols))
		for j, c := range cols {
			value := fmt.Sprint(i + 1)
			if c.value != nil {
				value = c.value(it, money.FormatText(amount))
			}
			cells[j] = col.New(c.size).Add(text.New(value, props.Text{
				Size: 8, Align: c.align, Top: 1.5, Bottom: 1.5, Left: 1, Right: 1,
			}))
		}
		m.AddAutoRow(cells...)
	}

	labelSize := gridSize - cols[len(cols)-1].size
	m.AddRows(
		row.New(9).Add(
			col.New(labelSize).Add(text.New("Sub Total", props.Text{
				Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 2, Right: 2,
			})).WithStyle(headerCell),
			col.New(cols[len(cols)-1].size).Add(text.New(money.FormatText(totals.Subtotal), props.Text{
				Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 2, Right: 1,
			})).WithStyle(headerCell),
		),
	)
}

func addNotes(m core.Maroto, p document.Profile) {
	if len(p.Notes) > 0 {
		m.AddRows(row.New(6))
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New("Terms & Conditions", props.Text{
			Size: 9, Style: fontstyle.Bold,
		}))))
		for i, n := range p.Notes {
			m.AddAutoRow(col.New(12).Add(text.New(fmt.Sprintf("%d. %s", i+1, n), props.Text{
				Size: 8, Left: 3, Color: mutedText,
			})))
		}
	}
	m.AddRows(row.New(16))
	m.AddRows(row.New(6).Add(col.New(12).Add(text.New("For "+p.Business.Name, props.Text{
		Size: 9, Style: fontstyle.Bold, Align: align.Right,
	}))))
	m.AddRows(row.New(14).Add(col.New(12).Add(text.New("Authorised Signatory", props.Text{
		Size: 8, Align: align.Right, Top: 9,
	}))))
}
