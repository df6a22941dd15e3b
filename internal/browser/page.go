package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/tanakalajayanth/sairam-quotation/internal/document"
)

// Page is one loaded document in its own tab.
type Page struct {
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *zap.Logger
	timeout time.Duration
}

// Element returns a handle to the first element matching a CSS selector.
func (p *Page) Element(ctx context.Context, selector string) (*Element, error) {
	var found bool
	err := p.run(ctx, "finding "+selector,
		call(`function (sel) { return document.querySelector(sel) !== null; }`, &found, selector))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, NewRenderError(ErrCodeElementNotFound, "no element matches "+selector, nil)
	}
	return &Element{page: p, selector: selector}, nil
}

// ApplyFigures writes recomputed amount texts into the loaded document.
// Selectors that match nothing are skipped.
func (p *Page) ApplyFigures(ctx context.Context, figs []document.Figure) error {
	type update struct {
		Selector string `json:"selector"`
		Text     string `json:"text"`
	}
	updates := make([]update, len(figs))
	for i, f := range figs {
		updates[i] = update{Selector: f.Selector, Text: f.Text}
	}
	var applied int
	err := p.run(ctx, "applying figures",
		call(`function (updates) {
			let n = 0;
			for (const u of updates) {
				const el = document.querySelector(u.selector);
				if (el) { el.textContent = u.text; n++; }
			}
			return n;
		}`, &applied, updates))
	if err != nil {
		return err
	}
	p.logger.Debug("applied figures", zap.Int("requested", len(figs)), zap.Int("applied", applied))
	return nil
}

// Close closes the tab.
func (p *Page) Close() error {
	p.cancel()
	return nil
}

// run executes actions bounded by both ctx and the page timeout.
func (p *Page) run(ctx context.Context, what string, actions ...chromedp.Action) error {
	c, cancel := context.WithTimeout(p.ctx, p.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(c, actions...); err != nil {
		if ctx.Err() != nil {
			return wrap(ctx, what, ctx.Err())
		}
		return wrap(c, what, err)
	}
	return nil
}

// call evaluates a JavaScript function applied to JSON-encoded args.
func call(fn string, res any, args ...any) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		expr, err := callExpression(fn, args...)
		if err != nil {
			return err
		}
		return chromedp.Evaluate(expr, res, awaitPromise).Do(ctx)
	})
}

func callExpression(fn string, args ...any) (string, error) {
	encoded := make([]string, len(args))
	for i, a := range args {
		b, err := json.Marshal(a)
		if err != nil {
			return "", fmt.Errorf("encoding argument %d: %w", i, err)
		}
		encoded[i] = string(b)
	}
	return "(" + fn + ")(" + strings.Join(encoded, ", ") + ")", nil
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}
