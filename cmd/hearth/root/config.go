package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"hearth/internal/config"
	"hearth/internal/ui"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write ~/.config/hearth/config.yaml with defaults if missing",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, logger, err := loadConfig(cmd, opts)
				if err != nil {
					return err
				}
				path, created, err := config.NewLoader(logger).EnsureUserConfig()
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Created "+path))
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconInfo+" Already exists: "+path))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, _, err := loadConfig(cmd, opts)
				if err != nil {
					return err
				}
				out, err := cfg.YAML()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			},
		},
	)

	return cmd
}
