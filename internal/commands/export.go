package commands

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tanakalajayanth/sairam-quotation/internal/browser"
	"github.com/tanakalajayanth/sairam-quotation/internal/compositor"
	"github.com/tanakalajayanth/sairam-quotation/internal/document"
	"github.com/tanakalajayanth/sairam-quotation/internal/ledger"
	"github.com/tanakalajayanth/sairam-quotation/internal/native"
)

const (
	engineBrowser = "browser"
	engineNative  = "native"
)

type exportOptions struct {
	engine    string
	outDir    string
	pageBreak string
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var flags docFlags
	var xo exportOptions

	cmd := &cobra.Command{
		Use:   "export <items-file>",
		Short: "Save the estimate as a PDF sized to whole A4 pages",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(opts, func(cmd *cobra.Command, args []string, e *env) error {
			eng, err := loadEngine(args[0], flags)
			if err != nil {
				return err
			}
			path, pages, err := newExporter(e, eng).export(cmd.Context(), xo, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d %s)\n", path, pages, plural(pages, "page", "pages"))
			return nil
		}),
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&xo.engine, "engine", engineBrowser, "PDF engine: browser (headless Chrome) or native")
	cmd.Flags().StringVarP(&xo.outDir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&xo.pageBreak, "page-break", "", "override page break mode: css or none")

	return cmd
}

// exporter saves an engine's document as PDF. It keeps one renderer
// subscribed to the engine and one compositor for its whole life, and acts
// as that compositor's rasterizer and notifier for the export in flight.
type exporter struct {
	env      *env
	eng      *ledger.Engine
	renderer *document.Renderer
	comp     *compositor.Compositor

	mu  sync.Mutex
	cur exportRun
}

// exportRun is the state of one browser export.
type exportRun struct {
	page      *browser.Page
	raster    *browser.Rasterizer
	pageBreak compositor.PageBreakMode
	notifier  compositor.Notifier
}

func newExporter(e *env, eng *ledger.Engine) *exporter {
	r := document.NewRenderer(e.profile, e.log)
	eng.Subscribe(r.Update)
	x := &exporter{env: e, eng: eng, renderer: r}
	x.comp = compositor.New(e.cfg.Compositor(), x,
		compositor.WithFlusher(x.flush),
		compositor.WithNotifier(x),
		compositor.WithLogger(e.log.Named("compositor")),
		compositor.WithTransitionHook(func(from, to compositor.State) {
			e.log.Debug("export state", zap.Stringer("from", from), zap.Stringer("to", to))
		}),
	)
	return x
}

// export returns the saved file path and page count. Failures are also
// reported on alerts. An export started while another runs returns
// compositor.ErrExportInProgress.
func (x *exporter) export(ctx context.Context, xo exportOptions, alerts io.Writer) (string, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	switch compositor.PageBreakMode(xo.pageBreak) {
	case "", compositor.PageBreakCSS, compositor.PageBreakNone:
	default:
		return "", 0, fmt.Errorf("unknown page break mode %q: want css or none", xo.pageBreak)
	}
	if !x.mu.TryLock() {
		return "", 0, compositor.ErrExportInProgress
	}
	defer x.mu.Unlock()
	notifier := compositor.WriterNotifier{W: alerts}

	switch xo.engine {
	case engineNative:
		x.eng.Recompute()
		a, err := native.NewEngine(x.env.outputDir(xo.outDir), x.env.profile, x.env.log).
			Save(x.eng.Snapshot(), x.eng.Totals(), x.env.cfg.Export.DefaultFilename)
		if err != nil {
			notifier.Alert("PDF export failed: " + err.Error())
			return "", 0, err
		}
		return a.Path, a.Pages, nil
	case engineBrowser, "":
		res, err := x.viaBrowser(ctx, xo, notifier)
		if err != nil {
			return "", 0, err
		}
		return res.Path, res.Pages, nil
	default:
		return "", 0, fmt.Errorf("unknown engine %q: want %s or %s", xo.engine, engineBrowser, engineNative)
	}
}

func (x *exporter) viaBrowser(ctx context.Context, xo exportOptions, notifier compositor.Notifier) (*compositor.Result, error) {
	e := x.env
	x.eng.Recompute()
	html, err := x.renderer.HTML()
	if err != nil {
		return nil, err
	}

	session := browser.NewSession(browser.Config{
		RemoteURL:     e.cfg.Browser.RemoteURL,
		ViewportWidth: viewportWidth(e.cfg.Export.PageWidthMM),
		NoSandbox:     e.cfg.Browser.NoSandbox,
		Timeout:       e.cfg.Browser.Timeout,
		Logger:        e.log.Named("browser"),
	})
	defer session.Close()

	page, err := session.Open(ctx, html)
	if err != nil {
		notifier.Alert("PDF export failed: " + err.Error())
		return nil, err
	}
	defer page.Close()

	el, err := page.Element(ctx, document.Selector)
	if err != nil {
		notifier.Alert("PDF export failed: " + err.Error())
		return nil, err
	}

	x.cur = exportRun{
		page:      page,
		raster:    browser.NewRasterizer(e.outputDir(xo.outDir), e.log.Named("raster")),
		pageBreak: compositor.PageBreakMode(xo.pageBreak),
		notifier:  notifier,
	}
	defer func() { x.cur = exportRun{} }()

	return x.comp.Export(ctx, el, x.eng.Snapshot().ClientName)
}

func (x *exporter) flush(ctx context.Context) error {
	x.eng.Recompute()
	if x.cur.page == nil {
		return nil
	}
	return x.cur.page.ApplyFigures(ctx, x.renderer.Figures())
}

// Save implements compositor.Rasterizer for the export in flight.
func (x *exporter) Save(ctx context.Context, el compositor.Element, opts compositor.RasterOptions) (*compositor.Artifact, error) {
	if x.cur.raster == nil {
		return nil, fmt.Errorf("saving PDF: no export in progress")
	}
	if x.cur.pageBreak != "" {
		opts.PageBreak = x.cur.pageBreak
	}
	return x.cur.raster.Save(ctx, el, opts)
}

// Alert implements compositor.Notifier for the export in flight.
func (x *exporter) Alert(message string) {
	if x.cur.notifier != nil {
		x.cur.notifier.Alert(message)
	}
}

// viewportWidth leaves room around a sheet of the given width at 96 dpi.
func viewportWidth(pageWidthMM float64) int64 {
	const minWidth = 1000
	px := int64(math.Ceil(pageWidthMM*96/25.4)) + 120
	if px < minWidth {
		return minWidth
	}
	return px
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
