// Package browser drives headless Chrome to lay out the quotation and save
// it as PDF.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultTimeout        = 60 * time.Second
	defaultViewportWidth  = 1000
	defaultViewportHeight = 1400
)

// Config controls how Chrome is started.
type Config struct {
	// RemoteURL connects to a running Chrome instead of launching one.
	RemoteURL string
	// NoSandbox is needed when running as root in containers.
	NoSandbox bool
	// Timeout bounds each page operation.
	Timeout        time.Duration
	ViewportWidth  int64
	ViewportHeight int64
	Logger         *zap.Logger
}

// Session owns one Chrome allocator. Pages opened from it share the browser.
type Session struct {
	cfg         Config
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewSession prepares a Chrome allocator. Chrome itself starts on the first Open.
func NewSession(cfg Config) *Session {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.ViewportWidth <= 0 {
		cfg.ViewportWidth = defaultViewportWidth
	}
	if cfg.ViewportHeight <= 0 {
		cfg.ViewportHeight = defaultViewportHeight
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{cfg: cfg, logger: logger}
	if cfg.RemoteURL != "" {
		s.allocCtx, s.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return s
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return s
}

// Timeout is the per-operation bound.
func (s *Session) Timeout() time.Duration {
	return s.cfg.Timeout
}

// Open loads html into a new tab.
func (s *Session) Open(ctx context.Context, html []byte) (*Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(s.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			s.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	p := &Page{ctx: tabCtx, cancel: tabCancel, logger: s.logger, timeout: s.cfg.Timeout}

	// The first Run starts the browser and the tab, and ties both to tabCtx.
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		return nil, NewRenderError(ErrCodeRenderFailed, "starting chrome", err)
	}
	err := p.run(ctx, "loading document",
		chromedp.EmulateViewport(s.cfg.ViewportWidth, s.cfg.ViewportHeight),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		tabCancel()
		return nil, err
	}
	s.logger.Debug("document loaded", zap.Int("bytes", len(html)))
	return p, nil
}

// Close shuts the browser down.
func (s *Session) Close() error {
	if s.allocCancel != nil {
		s.allocCancel()
	}
	return nil
}
