package ledger

import (
	"sync"
	"time"

	"github.com/tanakalajayanth/sairam-quotation/internal/id"
	"github.com/tanakalajayanth/sairam-quotation/internal/model"
)

// Listener receives the document and its freshly computed totals.
type Listener func(doc model.Document, totals model.Totals)

// Engine owns the quotation document. Every mutation goes through Dispatch
// and is followed by a synchronous recompute.
type Engine struct {
	mu        sync.RWMutex
	doc       model.Document
	totals    model.Totals
	seq       int
	listeners []Listener
}

// NewEngine creates an empty document with every column visible.
func NewEngine() *Engine {
	e := &Engine{
		doc: model.Document{
			Visibility: model.AllVisible(),
			Date:       time.Now(),
		},
	}
	e.totals = Compute(nil, e.doc.Visibility)
	return e
}

// Subscribe registers a listener called after every recompute.
func (e *Engine) Subscribe(l Listener) {
	e.mu.Lock()
	e.listeners = append(e.listeners, l)
	e.mu.Unlock()
}

// Dispatch applies a command and recomputes when the command affects figures.
func (e *Engine) Dispatch(cmd Command) error {
	e.mu.Lock()
	recompute, err := cmd.apply(&e.doc, e.nextID)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	if recompute {
		e.Recompute()
	}
	return nil
}

// Recompute derives amounts and subtotal from the current state, stores
// them and notifies listeners. Calling it twice without a mutation in
// between yields identical totals.
func (e *Engine) Recompute() model.Totals {
	e.mu.Lock()
	e.totals = Compute(e.doc.Items, e.doc.Visibility)
	doc := e.doc.Clone()
	totals := e.totals
	listeners := append([]Listener(nil), e.listeners...)
	e.mu.Unlock()

	for _, l := range listeners {
		l(doc, totals)
	}
	return totals
}

// Totals returns the result of the last recompute.
func (e *Engine) Totals() model.Totals {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.totals
}

// Snapshot returns a copy of the current document.
func (e *Engine) Snapshot() model.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Clone()
}

// SetDate sets the document date printed on the estimate.
func (e *Engine) SetDate(t time.Time) {
	e.mu.Lock()
	e.doc.Date = t
	e.mu.Unlock()
}

func (e *Engine) nextID() string {
	e.seq++
	return id.FormatRowID(e.seq)
}
