// Package document renders the quotation as a printable HTML page.
package document

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tanakalajayanth/sairam-quotation/internal/id"
	"github.com/tanakalajayanth/sairam-quotation/internal/model"
	"github.com/tanakalajayanth/sairam-quotation/internal/money"
)

// ElementID is the id of the sheet element the export measures.
const ElementID = "quotation"

// Selector finds the sheet element.
const Selector = "#" + ElementID

// SubtotalSelector finds the subtotal cell.
const SubtotalSelector = "#subtotal"

const dateLayout = "02/01/2006"

const (
	defaultPageWidthMM  = 210.0
	defaultPageHeightMM = 297.0
)

//go:embed templates/quotation.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.New("quotation.html.tmpl").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	ParseFS(templateFS, "templates/quotation.html.tmpl"))

// Business is the letterhead.
type Business struct {
	Name    string
	Tagline string
	Address string
	Phone   string
	Email   string
}

// Profile is everything printed on the sheet that is not part of the ledger.
type Profile struct {
	Business       Business
	Title          string
	EstimatePrefix string
	EstimateSeq    int
	Notes          []string

	// Sheet size in millimetres. Zero means A4 portrait.
	PageWidthMM  float64
	PageHeightMM float64
}

// PageSize returns the sheet size in millimetres.
func (p Profile) PageSize() (width, height float64) {
	width, height = p.PageWidthMM, p.PageHeightMM
	if width <= 0 {
		width = defaultPageWidthMM
	}
	if height <= 0 {
		height = defaultPageHeightMM
	}
	return width, height
}

// Figure is one text update for a rendered page.
type Figure struct {
	Selector string
	Text     string
}

type rowView struct {
	ID          string
	Description string
	Area        string
	Quantity    string
	Rate        string
	Amount      string
}

type pageView struct {
	PageWidth      template.CSS
	PageHeight     template.CSS
	Business       Business
	Title          string
	EstimateNumber string
	Client         string
	Date           string
	HiddenClasses  []string
	Rows           []rowView
	LabelSpan      int
	Subtotal       string
	Notes          []string
}

// Render writes the full HTML page for doc and totals.
func Render(p Profile, doc model.Document, totals model.Totals) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, newPageView(p, doc, totals)); err != nil {
		return nil, fmt.Errorf("rendering quotation: %w", err)
	}
	return buf.Bytes(), nil
}

func newPageView(p Profile, doc model.Document, totals model.Totals) pageView {
	date := doc.Date
	if date.IsZero() {
		date = time.Now()
	}
	seq := p.EstimateSeq
	if seq < 1 {
		seq = 1
	}
	width, height := p.PageSize()
	v := pageView{
		PageWidth:      millimetres(width),
		PageHeight:     millimetres(height),
		Business:       p.Business,
		Title:          p.Title,
		EstimateNumber: id.FormatEstimateNumber(p.EstimatePrefix, date, seq),
		Client:         doc.ClientName,
		Date:           date.Format(dateLayout),
		HiddenClasses:  doc.Visibility.HiddenClasses(),
		Subtotal:       money.Format(totals.Subtotal),
		Notes:          p.Notes,
		LabelSpan:      2,
	}
	for _, c := range model.Columns {
		if doc.Visibility.Shown(c) {
			v.LabelSpan++
		}
	}
	for _, it := range doc.Items {
		amount, _ := totals.Amount(it.ID)
		v.Rows = append(v.Rows, rowView{
			ID:          it.ID,
			Description: it.Description,
			Area:        it.Area,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      money.Format(amount),
		})
	}
	return v
}

func millimetres(v float64) template.CSS {
	return template.CSS(strconv.FormatFloat(v, 'f', -1, 64) + "mm")
}

// Figures returns the amount and subtotal texts for a rendered page.
func Figures(totals model.Totals) []Figure {
	out := make([]Figure, 0, len(totals.Rows)+1)
	for _, r := range totals.Rows {
		out = append(out, Figure{
			Selector: fmt.Sprintf(`[data-row=%q]`, r.ID),
			Text:     money.Format(r.Amount),
		})
	}
	return append(out, Figure{Selector: SubtotalSelector, Text: money.Format(totals.Subtotal)})
}

// Renderer keeps the HTML for the engine's latest recompute.
type Renderer struct {
	profile Profile
	logger  *zap.Logger

	mu      sync.RWMutex
	html    []byte
	totals  model.Totals
	version int
	err     error
}

// NewRenderer creates a Renderer for the given letterhead.
func NewRenderer(p Profile, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{profile: p, logger: logger}
}

// Update re-renders the page. It matches ledger.Listener.
func (r *Renderer) Update(doc model.Document, totals model.Totals) {
	html, err := Render(r.profile, doc, totals)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.version++
	r.err = err
	if err != nil {
		r.logger.Error("render failed", zap.Error(err))
		return
	}
	r.html = html
	r.totals = totals
	r.logger.Debug("rendered quotation",
		zap.Int("version", r.version),
		zap.Int("rows", len(doc.Items)),
		zap.String("subtotal", totals.Subtotal.String()))
}

// HTML returns the latest page and the error of the latest render, if any.
func (r *Renderer) HTML() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.html == nil {
		return nil, fmt.Errorf("rendering quotation: nothing rendered yet")
	}
	return append([]byte(nil), r.html...), nil
}

// Figures returns the text updates for the latest recompute.
func (r *Renderer) Figures() []Figure {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Figures(r.totals)
}

// Version counts renders so far.
func (r *Renderer) Version() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}
