package browser

import (
	"context"

	"github.com/tanakalajayanth/sairam-quotation/internal/compositor"
)

// Element is a live element in a Page. It satisfies compositor.Element and
// compositor.LayoutStabilizer.
type Element struct {
	page     *Page
	selector string
}

var (
	_ compositor.Element          = (*Element)(nil)
	_ compositor.LayoutStabilizer = (*Element)(nil)
)

type inlineStyle struct {
	Height    string `json:"height"`
	MinHeight string `json:"minHeight"`
	Margin    string `json:"margin"`
	BoxShadow string `json:"boxShadow"`
}

type rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Selector returns the CSS selector the element was found by.
func (e *Element) Selector() string {
	return e.selector
}

// InlineStyle reads the element's inline height, min-height, margin and
// box-shadow.
func (e *Element) InlineStyle(ctx context.Context) (compositor.Style, error) {
	var s inlineStyle
	err := e.page.run(ctx, "reading style",
		call(`function (sel) {
			const el = document.querySelector(sel);
			if (!el) throw new Error("element not found: " + sel);
			return {height: el.style.height, minHeight: el.style.minHeight,
				margin: el.style.margin, boxShadow: el.style.boxShadow};
		}`, &s, e.selector))
	if err != nil {
		return compositor.Style{}, err
	}
	return compositor.Style(s), nil
}

// SetInlineStyle writes all four properties. Empty values clear the inline
// property so the stylesheet applies again.
func (e *Element) SetInlineStyle(ctx context.Context, s compositor.Style) error {
	var ok bool
	return e.page.run(ctx, "writing style",
		call(`function (sel, s) {
			const el = document.querySelector(sel);
			if (!el) throw new Error("element not found: " + sel);
			el.style.height = s.height;
			el.style.minHeight = s.minHeight;
			el.style.margin = s.margin;
			el.style.boxShadow = s.boxShadow;
			return true;
		}`, &ok, e.selector, inlineStyle(s)))
}

// Bounds returns the rendered size in CSS pixels.
func (e *Element) Bounds(ctx context.Context) (compositor.Rect, error) {
	r, err := e.box(ctx)
	if err != nil {
		return compositor.Rect{}, err
	}
	return compositor.Rect{Width: r.Width, Height: r.Height}, nil
}

// WaitLayoutStable resolves after fonts are loaded and two animation frames
// have been produced, so style changes are laid out and painted.
func (e *Element) WaitLayoutStable(ctx context.Context) error {
	var ok bool
	return e.page.run(ctx, "waiting for layout",
		call(`function () {
			const frames = () => new Promise(r => requestAnimationFrame(() => requestAnimationFrame(() => r(true))));
			return (document.fonts ? document.fonts.ready : Promise.resolve()).then(frames);
		}`, &ok))
}

// box returns the element's rectangle in document coordinates.
func (e *Element) box(ctx context.Context) (rect, error) {
	var r rect
	err := e.page.run(ctx, "measuring element",
		call(`function (sel) {
			const el = document.querySelector(sel);
			if (!el) throw new Error("element not found: " + sel);
			const b = el.getBoundingClientRect();
			return {x: b.left + window.scrollX, y: b.top + window.scrollY, width: b.width, height: b.height};
		}`, &r, e.selector))
	return r, err
}
