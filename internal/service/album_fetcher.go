package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kursadbilgin/albumbot/internal/domain"
	"github.com/kursadbilgin/albumbot/internal/provider"
	"github.com/kursadbilgin/albumbot/internal/retry"
	"go.uber.org/zap"
)

const fetchOperation = "fetch album"

// AlbumFetcher resolves the group's current album through the generator API.
type AlbumFetcher struct {
	source           provider.AlbumSource
	executor         *retry.Executor
	groupURL         string
	streamingBaseURL string
}

func NewAlbumFetcher(
	source provider.AlbumSource,
	executor *retry.Executor,
	groupURL string,
	streamingBaseURL string,
) (*AlbumFetcher, error) {
	if source == nil {
		return nil, fmt.Errorf("album source is required")
	}
	if executor == nil {
		return nil, fmt.Errorf("retry executor is required")
	}
	if strings.TrimSpace(groupURL) == "" {
		return nil, fmt.Errorf("group url is required")
	}
	if strings.TrimSpace(streamingBaseURL) == "" {
		return nil, fmt.Errorf("streaming base url is required")
	}

	return &AlbumFetcher{
		source:           source,
		executor:         executor,
		groupURL:         groupURL,
		streamingBaseURL: streamingBaseURL,
	}, nil
}

// Fetch retries the HTTP exchange per the executor policy. Field extraction runs once,
// after a successful exchange, and its failures are never retried.
func (f *AlbumFetcher) Fetch(ctx context.Context, logger *zap.Logger) (domain.Album, error) {
	group, err := retry.Do(ctx, f.executor.WithLogger(logger), fetchOperation,
		func(ctx context.Context) (*provider.GroupResponse, error) {
			return f.source.FetchGroup(ctx, f.groupURL)
		},
	)
	if err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			return domain.Album{}, fmt.Errorf("%w: %w", domain.ErrTransportExhausted, err)
		}
		return domain.Album{}, err
	}

	album, err := group.Album(f.streamingBaseURL)
	if err != nil {
		return domain.Album{}, err
	}

	return album, nil
}
