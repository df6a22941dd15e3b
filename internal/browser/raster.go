package browser

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/tanakalajayanth/sairam-quotation/internal/compositor"
	"github.com/tanakalajayanth/sairam-quotation/internal/pdf"
)

// Rasterizer saves browser elements as PDF files in Dir.
type Rasterizer struct {
	Dir    string
	logger *zap.Logger
}

var _ compositor.Rasterizer = (*Rasterizer)(nil)

// NewRasterizer creates a Rasterizer writing into dir.
func NewRasterizer(dir string, logger *zap.Logger) *Rasterizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rasterizer{Dir: dir, logger: logger}
}

// Save renders el according to opts.PageBreak. With PageBreakCSS the page
// goes through Chrome's print engine, which honours break-inside rules.
// With PageBreakNone the element is captured as one image and sliced into
// pages at fixed intervals.
func (r *Rasterizer) Save(ctx context.Context, el compositor.Element, opts compositor.RasterOptions) (*compositor.Artifact, error) {
	be, ok := el.(*Element)
	if !ok {
		return nil, NewRenderError(ErrCodeRenderFailed, fmt.Sprintf("cannot rasterize %T", el), nil)
	}

	var (
		data  []byte
		pages int
		err   error
	)
	switch opts.PageBreak {
	case compositor.PageBreakNone:
		data, pages, err = be.captureSliced(ctx, opts)
	default:
		data, pages, err = be.print(ctx, opts)
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	path := filepath.Join(r.Dir, opts.Filename)
	if err := writeFile(path, data); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "saving "+path, err)
	}
	r.logger.Info("pdf saved",
		zap.String("path", path),
		zap.Int("pages", pages),
		zap.Int("bytes", len(data)),
		zap.String("page_break", string(opts.PageBreak)))
	return &compositor.Artifact{Path: path, Pages: pages, Bytes: len(data)}, nil
}

func (e *Element) print(ctx context.Context, opts compositor.RasterOptions) ([]byte, int, error) {
	var data []byte
	margin := toInches(opts.Margin, opts.Page.Unit)
	err := e.page.run(ctx, "printing pdf", chromedp.ActionFunc(func(ctx context.Context) error {
		buf, _, err := page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(toInches(opts.Page.Width, opts.Page.Unit)).
			WithPaperHeight(toInches(opts.Page.Height, opts.Page.Unit)).
			WithMarginTop(margin).
			WithMarginRight(margin).
			WithMarginBottom(margin).
			WithMarginLeft(margin).
			WithLandscape(strings.EqualFold(opts.Page.Orientation, "landscape")).
			WithScale(1).
			Do(ctx)
		if err != nil {
			return err
		}
		data = buf
		return nil
	}))
	if err != nil {
		return nil, 0, err
	}
	return data, pdf.CountPages(data), nil
}

func (e *Element) captureSliced(ctx context.Context, opts compositor.RasterOptions) ([]byte, int, error) {
	box, err := e.box(ctx)
	if err != nil {
		return nil, 0, err
	}
	height := opts.Capture.CaptureHeight
	if height <= 0 {
		height = box.Height
	}
	clip := &page.Viewport{
		X:      box.X + opts.Capture.ScrollX,
		Y:      box.Y + opts.Capture.ScrollY,
		Width:  box.Width,
		Height: height,
		Scale:  opts.Capture.PixelScale,
	}

	format := page.CaptureScreenshotFormatJpeg
	if strings.EqualFold(opts.Image.Format, "png") {
		format = page.CaptureScreenshotFormatPng
	}
	var img []byte
	err = e.page.run(ctx, "capturing element", chromedp.ActionFunc(func(ctx context.Context) error {
		shot := page.CaptureScreenshot().
			WithFormat(format).
			WithClip(clip).
			WithCaptureBeyondViewport(true).
			WithFromSurface(true)
		if format == page.CaptureScreenshotFormatJpeg {
			shot = shot.WithQuality(int64(opts.Image.Quality * 100))
		}
		buf, err := shot.Do(ctx)
		if err != nil {
			return err
		}
		img = buf
		return nil
	}))
	if err != nil {
		return nil, 0, err
	}

	var out bytes.Buffer
	pages, err := pdf.Compose(&out, img, pdf.Layout{
		PageWidth:   opts.Page.Width,
		PageHeight:  opts.Page.Height,
		Orientation: opts.Page.Orientation,
		ImageType:   opts.Image.Format,
		Title:       strings.TrimSuffix(opts.Filename, ".pdf"),
	})
	if err != nil {
		return nil, 0, NewRenderError(ErrCodeRenderFailed, "slicing capture", err)
	}
	return out.Bytes(), pages, nil
}

func toInches(v float64, unit string) float64 {
	switch unit {
	case "in":
		return v
	case "cm":
		return v / 2.54
	default:
		return v / 25.4
	}
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
