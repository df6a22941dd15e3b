package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tanakalajayanth/sairam-quotation/internal/model"
	"github.com/tanakalajayanth/sairam-quotation/internal/money"
)

const maxDescription = 48

func newCalcCommand(opts *rootOptions) *cobra.Command {
	var flags docFlags

	cmd := &cobra.Command{
		Use:   "calc <items-file>",
		Short: "Print row amounts and the subtotal",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(opts, func(cmd *cobra.Command, args []string, e *env) error {
			eng, err := loadEngine(args[0], flags)
			if err != nil {
				return err
			}
			return printLedger(cmd.OutOrStdout(), eng.Snapshot(), eng.Totals())
		}),
	}
	flags.register(cmd)

	return cmd
}

// printLedger writes the table the way it prints: hidden columns are left out.
func printLedger(out io.Writer, doc model.Document, totals model.Totals) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := []string{"ID", "Description"}
	for _, c := range model.Columns {
		if doc.Visibility.Shown(c) {
			header = append(header, columnTitle(c))
		}
	}
	header = append(header, "Amount")
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for _, it := range doc.Items {
		amount, _ := totals.Amount(it.ID)
		cells := []string{it.ID, truncate(it.Description, maxDescription)}
		for _, c := range model.Columns {
			if doc.Visibility.Shown(c) {
				cells = append(cells, it.Get(columnField(c)))
			}
		}
		cells = append(cells, money.Format(amount))
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if doc.ClientName != "" {
		fmt.Fprintf(out, "Client: %s\n", doc.ClientName)
	}
	_, err := fmt.Fprintf(out, "Subtotal: %s\n", money.Format(totals.Subtotal))
	return err
}

func columnTitle(c model.Column) string {
	switch c {
	case model.ColumnArea:
		return "Area"
	case model.ColumnQuantity:
		return "Qty"
	default:
		return "Rate"
	}
}

func columnField(c model.Column) model.Field {
	switch c {
	case model.ColumnArea:
		return model.FieldArea
	case model.ColumnQuantity:
		return model.FieldQuantity
	default:
		return model.FieldRate
	}
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}
