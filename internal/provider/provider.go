package provider

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kursadbilgin/albumbot/internal/domain"
)

const defaultRequestTimeout = 30 * time.Second

// MessageSender is the outbound chat delivery port.
type MessageSender interface {
	Send(ctx context.Context, message domain.OutboundMessage) (*ProviderResponse, error)
}

// AlbumSource is the album-of-the-day lookup port. One call is one HTTP exchange.
type AlbumSource interface {
	FetchGroup(ctx context.Context, groupURL string) (*GroupResponse, error)
}

// ProviderResponse stores provider call metadata for logging.
type ProviderResponse struct {
	StatusCode int
	Body       string
	MessageID  string
}

// NewRestyClient returns a client with the given per-request timeout and resty's own
// retry loop disabled; retries are owned by the caller's policy.
func NewRestyClient(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	return client
}

func prepareClient(client *resty.Client) {
	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultRequestTimeout)
	}
	client.SetRetryCount(0)
}
