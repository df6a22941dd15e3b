package browser

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanakalajayanth/sairam-quotation/internal/compositor"
	"github.com/tanakalajayanth/sairam-quotation/internal/document"
	"github.com/tanakalajayanth/sairam-quotation/internal/ledger"
	"github.com/tanakalajayanth/sairam-quotation/internal/pdf"
)

func TestRenderErrorCode(t *testing.T) {
	cause := errors.New("boom")
	err := NewRenderError(ErrCodeElementNotFound, "no element matches #x", cause)
	assert.Equal(t, "no element matches #x: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrCodeElementNotFound, Code(err))
	assert.Equal(t, "", Code(cause))
}

func TestWrapTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	err := wrap(ctx, "printing pdf", ctx.Err())
	assert.Equal(t, ErrCodeRenderTimeout, Code(err))

	err = wrap(context.Background(), "printing pdf", errors.New("target closed"))
	assert.Equal(t, ErrCodeRenderFailed, Code(err))
}

func TestToInches(t *testing.T) {
	assert.InDelta(t, 8.2677, toInches(210, "mm"), 0.0001)
	assert.InDelta(t, 11.6929, toInches(29.7, "cm"), 0.0001)
	assert.InDelta(t, 2, toInches(2, "in"), 0.0001)
}

type foreignElement struct{}

func (foreignElement) InlineStyle(context.Context) (compositor.Style, error) {
	return compositor.Style{}, nil
}
func (foreignElement) SetInlineStyle(context.Context, compositor.Style) error { return nil }
func (foreignElement) Bounds(context.Context) (compositor.Rect, error) {
	return compositor.Rect{}, nil
}

func TestRasterizerRejectsForeignElement(t *testing.T) {
	r := NewRasterizer(t.TempDir(), nil)
	_, err := r.Save(context.Background(), foreignElement{}, compositor.RasterOptions{})
	assert.Equal(t, ErrCodeRenderFailed, Code(err))
}

// openTestPage loads a rendered quotation in headless Chrome, skipping the
// test when no browser is available.
func openTestPage(t *testing.T, rows int) (*Page, *document.Renderer) {
	t.Helper()
	found := false
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell", "chrome"} {
		if _, err := exec.LookPath(name); err == nil {
			found = true
			break
		}
	}
	if !found {
		t.Skip("chrome not installed")
	}

	s := NewSession(Config{NoSandbox: true, Timeout: 30 * time.Second})
	t.Cleanup(func() { _ = s.Close() })

	e := ledger.NewEngine()
	r := document.NewRenderer(document.Profile{Business: document.Business{Name: "Sai Ram Interiors"}, Title: "ESTIMATE"}, nil)
	e.Subscribe(r.Update)
	for i := 0; i < rows; i++ {
		require.NoError(t, e.Dispatch(ledger.AddRow{Description: "WARDROBE WITH SLIDING DOORS", Area: "120", Quantity: "1", Rate: "1450"}))
	}
	html, err := r.HTML()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	p, err := s.Open(ctx, html)
	if err != nil {
		t.Skipf("chrome unavailable: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p, r
}

func TestPageElementNotFound(t *testing.T) {
	p, _ := openTestPage(t, 1)
	_, err := p.Element(context.Background(), "#missing")
	assert.Equal(t, ErrCodeElementNotFound, Code(err))
}

func TestElementStyleRoundTrip(t *testing.T) {
	p, _ := openTestPage(t, 1)
	ctx := context.Background()
	el, err := p.Element(ctx, document.Selector)
	require.NoError(t, err)

	orig, err := el.InlineStyle(ctx)
	require.NoError(t, err)
	assert.Equal(t, compositor.Style{}, orig)

	before, err := el.Bounds(ctx)
	require.NoError(t, err)
	assert.Greater(t, before.Width, 0.0)

	require.NoError(t, el.SetInlineStyle(ctx, compositor.Style{Height: "594mm", MinHeight: "594mm", Margin: "0 auto", BoxShadow: "none"}))
	require.NoError(t, el.WaitLayoutStable(ctx))
	got, err := el.InlineStyle(ctx)
	require.NoError(t, err)
	assert.Equal(t, "594mm", got.Height)

	after, err := el.Bounds(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 2*before.Width*297/210, after.Height, 2)
}

func TestExportThroughChrome(t *testing.T) {
	for _, mode := range []compositor.PageBreakMode{compositor.PageBreakCSS, compositor.PageBreakNone} {
		t.Run(string(mode), func(t *testing.T) {
			p, r := openTestPage(t, 30)
			ctx := context.Background()
			el, err := p.Element(ctx, document.Selector)
			require.NoError(t, err)

			dir := t.TempDir()
			cfg := compositor.DefaultConfig()
			cfg.PageBreak = mode
			c := compositor.New(cfg, NewRasterizer(dir, nil),
				compositor.WithFlusher(func(ctx context.Context) error { return p.ApplyFigures(ctx, r.Figures()) }))

			res, err := c.Export(ctx, el, "Raj & Sons")
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "Raj_Sons_Estimate.pdf"), res.Path)
			assert.GreaterOrEqual(t, res.Pages, 2)

			data, err := os.ReadFile(res.Path)
			require.NoError(t, err)
			assert.Equal(t, res.Pages, pdf.CountPages(data))

			style, err := el.InlineStyle(ctx)
			require.NoError(t, err)
			assert.Equal(t, compositor.Style{}, style, "style restored after export")
		})
	}
}

func TestCallExpression(t *testing.T) {
	expr, err := callExpression(`function (sel, s) { return s; }`, "#quotation", inlineStyle{Height: "10mm"})
	require.NoError(t, err)
	assert.Equal(t,
		`(function (sel, s) { return s; })("#quotation", {"height":"10mm","minHeight":"","margin":"","boxShadow":""})`,
		expr)
}
