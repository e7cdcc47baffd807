package main

import (
	"fmt"
	"time"

	"github.com/kursadbilgin/albumbot/internal/config"
	"github.com/kursadbilgin/albumbot/internal/observability"
	"github.com/kursadbilgin/albumbot/internal/provider"
	"github.com/kursadbilgin/albumbot/internal/retry"
	"github.com/kursadbilgin/albumbot/internal/service"
	"go.uber.org/zap"
)

type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	location  *time.Location
	announcer *service.Announcer
}

func newApp(envFile string) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	announcer, err := buildAnnouncer(cfg, location, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		location:  location,
		announcer: announcer,
	}, nil
}

func buildAnnouncer(cfg *config.Config, location *time.Location, logger *zap.Logger) (*service.Announcer, error) {
	executor, err := retry.NewExecutor(cfg.RetryPolicy(), provider.IsTransient, logger)
	if err != nil {
		return nil, err
	}

	// One HTTP client serves both outbound calls of a run.
	client := provider.NewRestyClient(cfg.HTTPTimeout())

	generator, err := provider.NewGeneratorClient(client)
	if err != nil {
		return nil, fmt.Errorf("generator client initialization failed: %w", err)
	}
	fetcher, err := service.NewAlbumFetcher(generator, executor, cfg.GroupAPIURL(), cfg.SpotifyURL)
	if err != nil {
		return nil, err
	}

	groupMe, err := provider.NewGroupMeProvider(cfg.GroupMeAPIURL, client)
	if err != nil {
		return nil, fmt.Errorf("webhook provider initialization failed: %w", err)
	}
	notifier, err := service.NewNotifier(groupMe, executor)
	if err != nil {
		return nil, err
	}

	return service.NewAnnouncer(fetcher, notifier, cfg.BotID, cfg.GroupPageURL(), location, logger)
}
