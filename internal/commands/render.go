package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tanakalajayanth/sairam-quotation/internal/document"
)

func newRenderCommand(opts *rootOptions) *cobra.Command {
	var flags docFlags
	var out string

	cmd := &cobra.Command{
		Use:   "render <items-file>",
		Short: "Write the estimate as an HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(opts, func(cmd *cobra.Command, args []string, e *env) error {
			eng, err := loadEngine(args[0], flags)
			if err != nil {
				return err
			}
			r := document.NewRenderer(e.profile, e.log)
			eng.Subscribe(r.Update)
			eng.Recompute()

			html, err := r.HTML()
			if err != nil {
				return err
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(out, html, 0o644); err != nil {
				return fmt.Errorf("writing html: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		}),
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "quotation.html", "output file, or - for stdout")

	return cmd
}
