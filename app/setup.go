package app

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayoisaiah/studyfocus/internal/config"
	"github.com/ayoisaiah/studyfocus/internal/osutil"
	"github.com/ayoisaiah/studyfocus/internal/pathutil"
	"github.com/ayoisaiah/studyfocus/internal/ui"
	"github.com/ayoisaiah/studyfocus/method"
	"github.com/ayoisaiah/studyfocus/stats"
	"github.com/ayoisaiah/studyfocus/store"
)

// env bundles what every command needs once config is loaded.
type env struct {
	cfg      *config.Config
	catalog  *method.Catalog
	db       store.DB
	sessions *stats.SessionStore
	agg      *stats.Aggregator
	logger   *slog.Logger
	log      *lumberjack.Logger
}

// loadConfig reads the config file (prompting on first run) and applies
// command-line overrides.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	configPath := pathutil.ConfigFilePath()

	return config.New(
		config.WithPromptConfig(configPath),
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
}

// newLogger returns a JSON logger writing to the rotating log file.
func newLogger(cfg *config.Config, path string) (*slog.Logger, *lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), osutil.DirPermission); err != nil {
		return nil, nil, err
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		Compress:   true,
	}

	l := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))

	return l, w, nil
}

// setup loads config, logging and storage.
func setup(ctx *cli.Context) (*env, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	logger, lj, err := newLogger(cfg, pathutil.LogFilePath())
	if err != nil {
		return nil, err
	}

	slog.SetDefault(logger)

	if logger.Enabled(ctx.Context, slog.LevelDebug) {
		logger.Debug("loaded config", "config", spew.Sdump(cfg))
	}

	catalog, err := cfg.BuildCatalog()
	if err != nil {
		_ = lj.Close()
		return nil, err
	}

	db, err := store.Open(cfg.Storage.Driver, pathutil.DataDir(), pathutil.DBName())
	if err != nil {
		_ = lj.Close()
		return nil, err
	}

	sessions := stats.NewSessionStore(db, stats.WithLogger(logger))

	return &env{
		cfg:      cfg,
		catalog:  catalog,
		db:       db,
		sessions: sessions,
		agg:      stats.NewAggregator(sessions, stats.WithLogger(logger)),
		logger:   logger,
		log:      lj,
	}, nil
}

func (e *env) Close() {
	if err := e.db.Close(); err != nil {
		e.logger.Error("closing database failed", "error", err)
	}

	_ = e.log.Close()
}
