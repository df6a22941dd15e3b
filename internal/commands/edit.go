package commands

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tanakalajayanth/sairam-quotation/internal/importer"
	"github.com/tanakalajayanth/sairam-quotation/internal/ledger"
	"github.com/tanakalajayanth/sairam-quotation/internal/model"
	"github.com/tanakalajayanth/sairam-quotation/internal/money"
)

const editHelp = `commands:
  list                          print the ledger
  add <desc> [| area | qty | rate]
  del <row>                     delete a row, e.g. del r003
  set <row>.<field>=<value>     edit a cell, e.g. set r002.rate=1450
  hide <column> / show <column> area, qty or price
  client <name>                 set the client name
  export [browser|native]       save the PDF
  save <file>                   write items as csv, xlsx or yaml
  quit
`

func newEditCommand(opts *rootOptions) *cobra.Command {
	var flags docFlags
	var xo exportOptions

	cmd := &cobra.Command{
		Use:   "edit [items-file]",
		Short: "Edit a quotation interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: withEnv(opts, func(cmd *cobra.Command, args []string, e *env) error {
			eng := ledger.NewEngine()
			if len(args) > 0 {
				items, err := importer.DefaultRegistry().ReadFile(args[0])
				if err != nil {
					return err
				}
				if err := addItems(eng, items); err != nil {
					return err
				}
			}
			if err := flags.apply(eng); err != nil {
				return err
			}

			ed := &editor{
				eng:    eng,
				exp:    newExporter(e, eng),
				xo:     xo,
				out:    cmd.OutOrStdout(),
				alerts: cmd.ErrOrStderr(),
			}
			eng.Subscribe(func(_ model.Document, t model.Totals) {
				fmt.Fprintf(ed.out, "subtotal %s\n", money.Format(t.Subtotal))
			})
			return ed.run(cmd.Context(), cmd.InOrStdin())
		}),
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&xo.engine, "engine", engineBrowser, "PDF engine: browser or native")
	cmd.Flags().StringVarP(&xo.outDir, "out", "o", "", "output directory (default from config)")

	return cmd
}

type editor struct {
	eng    *ledger.Engine
	exp    *exporter
	xo     exportOptions
	out    io.Writer
	alerts io.Writer
}

func (ed *editor) run(ctx context.Context, in io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}
	fmt.Fprint(ed.out, "type help for commands\n> ")
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "quit" || line == "exit" {
			return nil
		}
		if line != "" {
			if err := ed.exec(ctx, line); err != nil {
				fmt.Fprintf(ed.out, "error: %v\n", err)
			}
		}
		fmt.Fprint(ed.out, "> ")
	}
	return sc.Err()
}

func (ed *editor) exec(ctx context.Context, line string) error {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch verb {
	case "help", "?":
		fmt.Fprint(ed.out, editHelp)
		return nil
	case "list", "ls":
		return printLedger(ed.out, ed.eng.Snapshot(), ed.eng.Totals())
	case "add":
		return ed.eng.Dispatch(parseAddRow(rest))
	case "del", "rm":
		if rest == "" {
			return fmt.Errorf("del needs a row ID")
		}
		del, err := parseDelete(rest)
		if err != nil {
			return err
		}
		return ed.eng.Dispatch(del)
	case "set":
		edit, err := parseAssignment(rest)
		if err != nil {
			return err
		}
		return ed.eng.Dispatch(edit)
	case "hide", "show":
		col, ok := model.ParseColumn(rest)
		if !ok {
			return fmt.Errorf("%s %q: %w", verb, rest, ledger.ErrUnknownColumn)
		}
		return ed.eng.Dispatch(ledger.ToggleColumn{Column: col, Shown: verb == "show"})
	case "client":
		return ed.eng.Dispatch(ledger.SetClientName{Name: rest})
	case "export":
		xo := ed.xo
		if rest != "" {
			xo.engine = rest
		}
		path, pages, err := ed.exp.export(ctx, xo, ed.alerts)
		if err != nil {
			return err
		}
		fmt.Fprintf(ed.out, "Saved %s (%d %s)\n", path, pages, plural(pages, "page", "pages"))
		return nil
	case "save":
		return ed.save(rest)
	default:
		return fmt.Errorf("unknown command %q (try help)", verb)
	}
}

func (ed *editor) save(path string) error {
	if path == "" {
		return fmt.Errorf("save needs a file name")
	}
	doc := ed.eng.Snapshot()
	items := make([]importer.ItemInput, len(doc.Items))
	for i, it := range doc.Items {
		items[i] = importer.ItemInput{
			Description: it.Description,
			Area:        savedNumber(it.Area),
			Quantity:    savedNumber(it.Quantity),
			Rate:        savedNumber(it.Rate),
		}
	}
	var buf bytes.Buffer
	if err := importer.Write(&buf, strings.TrimPrefix(filepath.Ext(path), "."), items); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing items: %w", err)
	}
	fmt.Fprintf(ed.out, "Wrote %d rows to %s\n", len(items), path)
	return nil
}

// savedNumber writes a cleared numeric field as "0". Reloading adds rows,
// and an added row would read the empty cell as 1.
func savedNumber(s string) string {
	if strings.TrimSpace(s) == "" {
		return "0"
	}
	return s
}

// parseAddRow reads "desc | area | qty | rate"; trailing fields may be
// omitted and default to 1.
func parseAddRow(s string) ledger.AddRow {
	parts := strings.Split(s, "|")
	get := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	return ledger.AddRow{Description: get(0), Area: get(1), Quantity: get(2), Rate: get(3)}
}
