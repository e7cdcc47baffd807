package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/kursadbilgin/albumbot/internal/domain"
)

const DefaultGroupMeEndpoint = "https://api.groupme.com/v3/bots/post"

type groupMeRequest struct {
	BotID string `json:"bot_id"`
	Text  string `json:"text"`
}

// GroupMeProvider posts messages through the GroupMe bots API.
type GroupMeProvider struct {
	client   *resty.Client
	endpoint string
}

func NewGroupMeProvider(endpoint string, client *resty.Client) (*GroupMeProvider, error) {
	trimmedEndpoint := strings.TrimSpace(endpoint)
	if trimmedEndpoint == "" {
		return nil, fmt.Errorf("webhook endpoint is required")
	}
	if _, err := url.ParseRequestURI(trimmedEndpoint); err != nil {
		return nil, fmt.Errorf("invalid webhook endpoint: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}
	prepareClient(client)

	return &GroupMeProvider{
		client:   client,
		endpoint: trimmedEndpoint,
	}, nil
}

// Send performs exactly one POST. The bots API has no idempotency key, so a caller
// retrying after a lost response may post the same text twice.
func (p *GroupMeProvider) Send(ctx context.Context, message domain.OutboundMessage) (*ProviderResponse, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("provider is not initialized")
	}
	if err := message.Validate(); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}

	response, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(groupMeRequest{
			BotID: message.BotID,
			Text:  message.Text,
		}).
		Post(p.endpoint)
	if err != nil {
		return nil, requestError(err)
	}
	if response == nil {
		return nil, &ProviderError{
			Message:   "provider returned empty response",
			Transient: true,
		}
	}

	statusCode := response.StatusCode()
	responseBody := strings.TrimSpace(response.String())

	if !isSuccessStatus(statusCode) {
		return nil, statusError(statusCode, responseBody)
	}

	return &ProviderResponse{
		StatusCode: statusCode,
		Body:       responseBody,
		MessageID:  providerMessageID(response),
	}, nil
}

func providerMessageID(response *resty.Response) string {
	if response == nil {
		return ""
	}

	for _, key := range []string{"X-Request-ID", "X-Request-Id", "X-Correlation-ID", "X-Correlation-Id"} {
		if value := strings.TrimSpace(response.Header().Get(key)); value != "" {
			return value
		}
	}

	return ""
}
