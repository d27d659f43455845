package root

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"hearth/internal/pantry"
	"hearth/internal/ui"
)

func newPantryExportCmd(opts *rootOptions) *cobra.Command {
	var dir string
	var compressed bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the inventory to pantry-inventory-YYYY-MM-DD.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if !cmd.Flags().Changed("dir") {
				dir = a.cfg.Pantry.ExportDir
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create export dir: %w", err)
			}
			path := filepath.Join(dir, pantry.ExportFileName(time.Now(), compressed))
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create export: %w", err)
			}
			n, err := a.pantry.Export(ctx, f, compressed)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Exported %d items to %s", ui.IconDone, n, path)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write into (default from config pantry.export_dir)")
	cmd.Flags().BoolVar(&compressed, "zstd", false, "Write a zstd-compressed .json.zst")
	return cmd
}

func newPantryImportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the inventory with the items in a JSON (or .json.zst) file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			n, ok, err := a.pantry.Import(ctx, data, confirmer(cmd, opts))
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Import successful! %d items.", ui.IconDone, n)))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Import cancelled."))
			}
			return nil
		},
	}

	return cmd
}
