package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/repolist/internal/api"
	"github.com/five82/repolist/internal/collection"
	"github.com/five82/repolist/internal/config"
	"github.com/five82/repolist/internal/logging"
	"github.com/five82/repolist/internal/prefs"
	"github.com/five82/repolist/internal/reposync"
	"github.com/five82/repolist/internal/ui"
)

// Services holds the wired client, store and controller shared by the TUI
// and the headless commands.
type Services struct {
	Client     *api.Client
	Store      *collection.Store
	Controller *reposync.Controller
}

// Build wires an API client, an empty store and a controller from cfg.
func Build(cfg config.Config, logger *slog.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	client, err := api.NewClient(cfg.APIURL,
		api.WithTimeout(cfg.Timeout),
		api.WithUserAgent(cfg.UserAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}

	store := &collection.Store{}
	controller, err := reposync.New(client, store, reposync.Options{
		Logger:      logger,
		StrictLikes: cfg.StrictLikes,
	})
	if err != nil {
		return nil, fmt.Errorf("init controller: %w", err)
	}
	return &Services{Client: client, Store: store, Controller: controller}, nil
}

// Options configure the TUI application.
type Options struct {
	Config    config.Config
	PrefsPath string       // empty uses default ~/.config/repolist/prefs.toml
	Logger    *slog.Logger // nil logs to Config.LogFile
}

// Run boots the repolist TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config

	logger := opts.Logger
	if logger == nil {
		fileLogger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = closer.Close() }()
		logger = fileLogger
	}

	services, err := Build(cfg, logger)
	if err != nil {
		return err
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	logger.Info("starting tui", "api_url", services.Client.BaseURL(), "refresh", cfg.Refresh)
	StartRefresher(ctx, services.Controller, cfg.Refresh, logger.With("op", "auto_refresh"))

	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: services.Controller,
		Logger:     logger,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
		Locale:     cfg.Locale,
		NewRepoURL: cfg.NewRepoURL,
		Source:     services.Client.BaseURL(),
	})
}
