package root

import (
	"context"

	"github.com/spf13/cobra"

	"hearth/internal/tui"
)

func newBoardCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI board (pantry and scores)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, a.pantry, a.scores, cmd.OutOrStdout())
		},
	}

	return cmd
}
