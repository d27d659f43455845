package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hearth/internal/ui"
)

const Version = "0.1.0"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	dbPath     string
	logLevel   string
	logFormat  string
	yes        bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "hearth",
		Short:         "Hearth: Everdell scores and a kitchen pantry, local-first",
		Long:          "Hearth keeps Everdell game scores and a kitchen pantry inventory in a local SQLite file.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (YAML) layered over ~/.config/hearth/config.yaml")
	pf.StringVar(&opts.dbPath, "db", "", "SQLite file (overrides config and $HEARTH_DB)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format (auto|text|json)")
	pf.BoolVarP(&opts.yes, "yes", "y", false, "Answer yes to every confirmation")

	cmd.AddCommand(
		newScoreCmd(opts),
		newPantryCmd(opts),
		newBoardCmd(opts),
		newConfigCmd(opts),
		newStoreCmd(opts),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
