package root

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"hearth/internal/config"
	"hearth/internal/logging"
	"hearth/internal/pantry"
	"hearth/internal/prompt"
	"hearth/internal/score"
	"hearth/internal/storage"
)

// app is everything a command needs for one run.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
	dbPath string
	scores *score.Service
	pantry *pantry.Service
}

// loadConfig layers the config files and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, *slog.Logger, error) {
	boot, err := logging.New("warn", "auto", cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.NewLoader(boot).Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.dbPath != "" {
		cfg.Store.Path = opts.dbPath
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func openApp(ctx context.Context, cmd *cobra.Command, opts *rootOptions) (*app, func(), error) {
	cfg, logger, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, nil, err
	}
	path, err := storage.ResolveDBPath(cfg.Store.Path)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("store opened", "path", path)
	cleanup := func() {
		_ = db.Close()
	}
	return &app{
		cfg:    cfg,
		logger: logger,
		db:     db,
		dbPath: path,
		scores: score.NewService(score.NewStore(db), logger),
		pantry: pantry.NewService(pantry.NewStore(db), logger),
	}, cleanup, nil
}

// confirmer picks how destructive steps are confirmed: --yes approves
// everything, an injected input stream is read directly, and otherwise
// the real terminal is asked.
func confirmer(cmd *cobra.Command, opts *rootOptions) prompt.Confirmer {
	if opts.yes {
		return prompt.Always
	}
	if in := cmd.InOrStdin(); in != os.Stdin {
		return prompt.NewTerminal(in, cmd.OutOrStdout())
	}
	return prompt.ForStdio(false, cmd.OutOrStdout())
}
