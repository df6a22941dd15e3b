package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tanakalajayanth/sairam-quotation/internal/config"
	"github.com/tanakalajayanth/sairam-quotation/internal/importer"
)

func newInitCommand() *cobra.Command {
	var name, format string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create quotation.yaml and a sample items file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, name, format, force)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name printed on the letterhead")
	cmd.Flags().StringVar(&format, "format", "csv", "items file format: csv, xlsx or yaml")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")

	return cmd
}

func runInit(out io.Writer, dir, name, format string, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	}
	cfg := config.Default(name)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	existing, err := importer.DefaultRegistry().Scan(dir)
	if err != nil {
		return err
	}
	itemsPath := filepath.Join(dir, "items."+format)
	if len(existing) > 0 && !force {
		fmt.Fprintf(out, "Keeping existing items file %s\n", existing[0].Name)
		itemsPath = existing[0].Path
	} else {
		var buf bytes.Buffer
		if err := importer.Write(&buf, format, importer.SampleItems()); err != nil {
			return err
		}
		if err := os.WriteFile(itemsPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing items: %w", err)
		}
	}

	fmt.Fprintf(out, "Initialized quotation workspace at %s\n", dir)
	fmt.Fprintf(out, "Next: quotation calc %s --config %s\n", itemsPath, cfgPath)
	return nil
}
