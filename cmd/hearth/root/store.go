package root

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"hearth/internal/storage"
	"hearth/internal/ui"
)

func newStoreCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Show where data is kept and which collections exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			keys, err := storage.NewKVRepo(a.db).List(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBox, "Store"))
			fmt.Fprintln(out, ui.LabelValue("Path", a.dbPath))
			if len(keys) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty)"))
				return nil
			}
			for _, k := range keys {
				updated := "never"
				if k.UpdatedAt != nil {
					updated = humanize.Time(*k.UpdatedAt)
				}
				fmt.Fprintf(out, "- %s %s\n", ui.Key.Render(k.Key), ui.Muted.Render(fmt.Sprintf("(%s, updated %s)", humanize.Bytes(uint64(k.Size)), updated)))
			}
			return nil
		},
	}

	return cmd
}
