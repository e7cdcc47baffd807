package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kursadbilgin/albumbot/internal/domain"
	"github.com/kursadbilgin/albumbot/internal/provider"
)

type fakeAlbumSource struct {
	calls        int
	fetchGroupFn func(ctx context.Context, groupURL string) (*provider.GroupResponse, error)
}

func (f *fakeAlbumSource) FetchGroup(ctx context.Context, groupURL string) (*provider.GroupResponse, error) {
	f.calls++
	if f.fetchGroupFn != nil {
		return f.fetchGroupFn(ctx, groupURL)
	}
	return nil, nil
}

type fakeMessageSender struct {
	calls  int
	sendFn func(ctx context.Context, message domain.OutboundMessage) (*provider.ProviderResponse, error)
}

func (f *fakeMessageSender) Send(ctx context.Context, message domain.OutboundMessage) (*provider.ProviderResponse, error) {
	f.calls++
	if f.sendFn != nil {
		return f.sendFn(ctx, message)
	}
	return &provider.ProviderResponse{StatusCode: 202}, nil
}

type fakeRunner struct {
	runFn func(ctx context.Context) error
}

func (f *fakeRunner) Run(ctx context.Context) error {
	if f.runFn != nil {
		return f.runFn(ctx)
	}
	return nil
}

func groupResponse(t *testing.T, body string) *provider.GroupResponse {
	t.Helper()

	var group provider.GroupResponse
	if err := json.Unmarshal([]byte(body), &group); err != nil {
		t.Fatalf("unmarshal group fixture: %v", err)
	}
	return &group
}

const okComputerGroup = `{"currentAlbum": {"name": "OK Computer", "artist": "Radiohead", "releaseDate": "1997-05-21", "spotifyId": "XYZ"}}`
