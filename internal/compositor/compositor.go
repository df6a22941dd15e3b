// Package compositor reflows a rendered quotation element into whole print
// pages and drives its export, restoring the element's layout afterwards.
package compositor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageWidth  = 210.0
	defaultPageHeight = 297.0
	defaultEpsilon    = 0.2

	// DefaultSettleDelay is the fixed wait for the height change to settle
	// when the element offers no layout-stable signal.
	DefaultSettleDelay = 400 * time.Millisecond
)

// Style is the subset of inline style the compositor overrides.
type Style struct {
	Height    string
	MinHeight string
	Margin    string
	BoxShadow string
}

// Element is a rendered document fragment that can be measured and restyled.
type Element interface {
	InlineStyle(ctx context.Context) (Style, error)
	SetInlineStyle(ctx context.Context, s Style) error
	Bounds(ctx context.Context) (Rect, error)
}

// LayoutStabilizer is implemented by elements that can signal when layout
// has settled after a style change.
type LayoutStabilizer interface {
	WaitLayoutStable(ctx context.Context) error
}

// Artifact describes the saved output.
type Artifact struct {
	Path  string
	Pages int
	Bytes int
}

// Rasterizer renders the element and saves it as a paginated file.
type Rasterizer interface {
	Save(ctx context.Context, el Element, opts RasterOptions) (*Artifact, error)
}

// Flusher brings the element's figures up to date before capture.
type Flusher func(ctx context.Context) error

// Config holds page geometry and capture settings.
type Config struct {
	PageWidth       float64 // mm
	PageHeight      float64 // mm
	Epsilon         float64 // mm shaved off the stretched height
	SettleDelay     time.Duration
	PixelScale      float64
	ImageFormat     string
	ImageQuality    float64
	PageBreak       PageBreakMode
	DefaultFilename string
}

// DefaultConfig returns A4 portrait settings.
func DefaultConfig() Config {
	return Config{
		PageWidth:       defaultPageWidth,
		PageHeight:      defaultPageHeight,
		Epsilon:         defaultEpsilon,
		SettleDelay:     DefaultSettleDelay,
		PixelScale:      2,
		ImageFormat:     "jpeg",
		ImageQuality:    1.0,
		PageBreak:       PageBreakCSS,
		DefaultFilename: DefaultFilename,
	}
}

func (cfg Config) withDefaults() Config {
	def := DefaultConfig()
	if cfg.PageWidth <= 0 {
		cfg.PageWidth = def.PageWidth
	}
	if cfg.PageHeight <= 0 {
		cfg.PageHeight = def.PageHeight
	}
	if cfg.Epsilon < 0 {
		cfg.Epsilon = def.Epsilon
	}
	if cfg.SettleDelay < 0 {
		cfg.SettleDelay = def.SettleDelay
	}
	if cfg.PixelScale <= 0 {
		cfg.PixelScale = def.PixelScale
	}
	if cfg.ImageFormat == "" {
		cfg.ImageFormat = def.ImageFormat
	}
	if cfg.ImageQuality <= 0 || cfg.ImageQuality > 1 {
		cfg.ImageQuality = def.ImageQuality
	}
	if cfg.PageBreak == "" {
		cfg.PageBreak = def.PageBreak
	}
	if cfg.DefaultFilename == "" {
		cfg.DefaultFilename = def.DefaultFilename
	}
	return cfg
}

// Result reports a finished export.
type Result struct {
	ID           string
	Filename     string
	Path         string
	Pages        int
	TargetHeight float64
	Duration     time.Duration
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithFlusher sets the figure flush run before capture.
func WithFlusher(f Flusher) Option {
	return func(c *Compositor) { c.flush = f }
}

// WithNotifier sets where failure messages go.
func WithNotifier(n Notifier) Option {
	return func(c *Compositor) { c.notify = n }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Compositor) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTransitionHook observes every state change.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(c *Compositor) { c.onTransition = fn }
}

// WithSleep replaces the settle timer, for tests.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Compositor) { c.sleep = fn }
}

// Compositor runs exports one at a time.
type Compositor struct {
	cfg          Config
	raster       Rasterizer
	flush        Flusher
	notify       Notifier
	logger       *zap.Logger
	onTransition func(from, to State)
	sleep        func(ctx context.Context, d time.Duration) error

	busy  atomic.Bool
	mu    sync.Mutex
	state State
}

// New creates a Compositor that saves through raster.
func New(cfg Config, raster Rasterizer, opts ...Option) *Compositor {
	c := &Compositor{
		cfg:    cfg.withDefaults(),
		raster: raster,
		notify: nopNotifier{},
		logger: zap.NewNop(),
		sleep:  sleepCtx,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the effective configuration.
func (c *Compositor) Config() Config {
	return c.cfg
}

// State returns the current state.
func (c *Compositor) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether an export is in flight.
func (c *Compositor) Busy() bool {
	return c.busy.Load()
}

// Export stretches el to a whole number of pages, flushes figures, waits
// for layout to settle and saves it through the rasterizer. The element's
// original inline style is restored whether or not the export succeeds.
// A concurrent call returns ErrExportInProgress without touching el.
func (c *Compositor) Export(ctx context.Context, el Element, clientName string) (*Result, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrExportInProgress
	}
	defer c.busy.Store(false)

	start := time.Now()
	res := &Result{
		ID:       uuid.NewString(),
		Filename: Filename(clientName, c.cfg.DefaultFilename),
	}
	log := c.logger.With(zap.String("export_id", res.ID), zap.String("filename", res.Filename))
	log.Info("export started")

	c.transition(StateMeasuring)
	original, err := el.InlineStyle(ctx)
	if err != nil {
		err = c.fail(log, StageSnapshot, err)
		c.transition(StateIdle)
		return nil, err
	}

	restored := false
	restore := func() error {
		if restored {
			return nil
		}
		restored = true
		if err := el.SetInlineStyle(context.WithoutCancel(ctx), original); err != nil {
			log.Error("restoring element style failed", zap.Error(err))
			return fmt.Errorf("restoring style: %w", err)
		}
		return nil
	}
	defer func() {
		_ = restore()
		c.transition(StateIdle)
	}()

	artifact, fit, err := c.run(ctx, el, res.Filename, log)
	if err != nil {
		err = c.fail(log, stageOf(err), err)
		if rerr := restore(); rerr != nil {
			return nil, errors.Join(err, rerr)
		}
		return nil, err
	}
	c.transition(StateSucceeded)
	if err := restore(); err != nil {
		return nil, c.fail(log, StageRestore, err)
	}

	res.TargetHeight = fit.TargetHeight
	res.Pages = fit.TotalPages
	if artifact != nil {
		res.Path = artifact.Path
		if artifact.Pages > 0 {
			res.Pages = artifact.Pages
		}
	}
	res.Duration = time.Since(start)
	log.Info("export finished",
		zap.Int("pages", res.Pages),
		zap.String("path", res.Path),
		zap.Duration("duration", res.Duration))
	return res, nil
}

func (c *Compositor) run(ctx context.Context, el Element, filename string, log *zap.Logger) (*Artifact, Fit, error) {
	rect, err := el.Bounds(ctx)
	if err != nil {
		return nil, Fit{}, &ExportError{Stage: StageMeasure, Err: err}
	}
	fit, err := c.cfg.Measure(rect)
	if err != nil {
		return nil, Fit{}, &ExportError{Stage: StageMeasure, Err: err}
	}
	log.Debug("measured element",
		zap.Float64("width_px", rect.Width),
		zap.Float64("height_px", rect.Height),
		zap.Float64("height_units", fit.HeightUnits),
		zap.Int("pages", fit.TotalPages))

	target := Length(fit.TargetHeight, "mm")
	stretched := Style{Height: target, MinHeight: target, Margin: "0 auto", BoxShadow: "none"}
	if err := el.SetInlineStyle(ctx, stretched); err != nil {
		return nil, fit, &ExportError{Stage: StageStretch, Err: err}
	}
	c.transition(StateStretched)

	if c.flush != nil {
		if err := c.flush(ctx); err != nil {
			return nil, fit, &ExportError{Stage: StageFlush, Err: err}
		}
	}

	if err := c.settle(ctx, el); err != nil {
		return nil, fit, &ExportError{Stage: StageSettle, Err: err}
	}

	c.transition(StateExporting)
	artifact, err := c.raster.Save(ctx, el, c.rasterOptions(filename, fit, rect))
	if err != nil {
		return nil, fit, &ExportError{Stage: StageRasterize, Err: err}
	}
	return artifact, fit, nil
}

func (c *Compositor) rasterOptions(filename string, fit Fit, rect Rect) RasterOptions {
	pxPerUnit := rect.Width / c.cfg.PageWidth
	return RasterOptions{
		Margin:   0,
		Filename: filename,
		Image:    ImageEncoding{Format: c.cfg.ImageFormat, Quality: c.cfg.ImageQuality},
		Capture: CaptureOptions{
			PixelScale:    c.cfg.PixelScale,
			CrossOrigin:   true,
			Logging:       false,
			ScrollX:       0,
			ScrollY:       0,
			CaptureHeight: fit.TargetHeight * pxPerUnit,
		},
		Page: PageFormat{
			Unit:        "mm",
			Width:       c.cfg.PageWidth,
			Height:      c.cfg.PageHeight,
			Orientation: "portrait",
		},
		PageBreak: c.cfg.PageBreak,
		Pages:     fit.TotalPages,
	}
}

func (c *Compositor) settle(ctx context.Context, el Element) error {
	if ls, ok := el.(LayoutStabilizer); ok {
		return ls.WaitLayoutStable(ctx)
	}
	return c.sleep(ctx, c.cfg.SettleDelay)
}

func (c *Compositor) fail(log *zap.Logger, stage Stage, err error) error {
	c.transition(StateFailed)
	var ee *ExportError
	if !errors.As(err, &ee) {
		ee = &ExportError{Stage: stage, Err: err}
	}
	log.Error("export failed", zap.String("stage", string(ee.Stage)), zap.Error(ee.Err))
	c.notify.Alert("PDF export failed: " + ee.Err.Error())
	return ee
}

func (c *Compositor) transition(to State) {
	c.mu.Lock()
	from := c.state
	c.state = to
	c.mu.Unlock()
	if c.onTransition != nil && from != to {
		c.onTransition(from, to)
	}
}

func stageOf(err error) Stage {
	var ee *ExportError
	if errors.As(err, &ee) {
		return ee.Stage
	}
	return StageRasterize
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
