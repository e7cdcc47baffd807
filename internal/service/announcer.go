package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kursadbilgin/albumbot/internal/announce"
	"github.com/kursadbilgin/albumbot/internal/domain"
	"github.com/kursadbilgin/albumbot/internal/observability"
	"go.uber.org/zap"
)

// Announcer runs one fetch, format and send sequence.
type Announcer struct {
	fetcher      *AlbumFetcher
	notifier     *Notifier
	botID        string
	groupPageURL string
	location     *time.Location
	logger       *zap.Logger
	now          func() time.Time
	newRunID     func() string
}

func NewAnnouncer(
	fetcher *AlbumFetcher,
	notifier *Notifier,
	botID string,
	groupPageURL string,
	location *time.Location,
	logger *zap.Logger,
) (*Announcer, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("album fetcher is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if strings.TrimSpace(botID) == "" {
		return nil, fmt.Errorf("bot id is required")
	}
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Announcer{
		fetcher:      fetcher,
		notifier:     notifier,
		botID:        botID,
		groupPageURL: groupPageURL,
		location:     location,
		logger:       logger,
		now:          time.Now,
		newRunID:     uuid.NewString,
	}, nil
}

// Run performs a single announcement. Errors name the stage that failed; nothing is
// sent unless the album was fetched and validated.
func (a *Announcer) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx = observability.WithCorrelationID(ctx, a.newRunID())
	logger := observability.WithContextLogger(a.logger, ctx)
	logger.Debug("album announcement started")

	album, err := a.fetcher.Fetch(ctx, logger)
	if err != nil {
		return fmt.Errorf("fetch album: %w", err)
	}
	logger.Debug("album fetched",
		zap.String("title", album.Title),
		zap.String("artist", album.Artist),
	)

	message := domain.OutboundMessage{
		BotID: a.botID,
		Text:  announce.Format(album, a.now().In(a.location), a.groupPageURL),
	}

	if err := a.notifier.Notify(ctx, message, logger); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
