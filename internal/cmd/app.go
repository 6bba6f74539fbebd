package cmd

import (
	"context"
	"fmt"

	"news_reader/internal/browser"
	"news_reader/internal/config"
	"news_reader/internal/db"
	"news_reader/internal/fetcher"
	"news_reader/internal/logger"
	"news_reader/internal/metrics"
	"news_reader/internal/network"
	"news_reader/internal/prefs"
	"news_reader/internal/screen"
)

// newOpener создаёт способ открытия ссылок. Тесты подменяют его на browser.Recorder.
var newOpener = func() browser.Opener { return browser.System{} }

type app struct {
	cfg     *config.Config
	screen  *screen.Screen
	metrics *metrics.Metrics
	close   func()
}

// newApp читает конфигурацию и собирает экран со всеми зависимостями.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("config load error: %w", err)
	}
	logger.Init(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	closer := func() {}
	var store prefs.Store
	if cfg.DatabaseURL != "" {
		database, err := db.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		store = db.NewPrefsStore(database)
		closer = database.Close
	} else {
		store = prefs.NewFileStore(cfg.PrefsPath)
	}

	var checker network.Checker = network.Static(false)
	if !offline {
		dc, err := network.NewDialChecker(cfg.Endpoint, cfg.HTTPTimeout)
		if err != nil {
			closer()
			return nil, err
		}
		checker = dc
	}

	m := metrics.New()
	loader := fetcher.NewLoader(fetcher.NewClient(cfg.HTTPTimeout), m)
	sc := screen.New(screen.Options{
		Endpoint: cfg.Endpoint,
		APIKey:   cfg.APIKey,
		FromDate: cfg.FromDate,
	}, store, checker, loader, newOpener(), m)

	return &app{cfg: cfg, screen: sc, metrics: m, close: closer}, nil
}
