package commands

import (
	"github.com/spf13/cobra"

	"github.com/tanakalajayanth/sairam-quotation/internal/buildinfo"
	"github.com/tanakalajayanth/sairam-quotation/internal/config"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:     "quotation",
		Short:   "Interior work estimates with column toggles and page-exact PDF export",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "path to quotation.yaml")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCommand(),
		newCalcCommand(opts),
		newRenderCommand(opts),
		newExportCommand(opts),
		newEditCommand(opts),
	)

	return rootCmd
}
