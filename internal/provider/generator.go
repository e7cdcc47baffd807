package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/kursadbilgin/albumbot/internal/domain"
)

const (
	DefaultGeneratorBaseURL = "https://1001albumsgenerator.com"
	DefaultSpotifyAlbumURL  = "https://open.spotify.com/album"
)

// GroupResponse is the subset of the generator's group document the bot reads. Album
// fields are kept raw so that absent and mistyped values can be told apart.
type GroupResponse struct {
	CurrentAlbum map[string]json.RawMessage `json:"currentAlbum"`
}

// Album extracts the current album. Every field must be present and a JSON string.
func (r *GroupResponse) Album(streamingBaseURL string) (domain.Album, error) {
	if r == nil || r.CurrentAlbum == nil {
		return domain.Album{}, fmt.Errorf("%w: currentAlbum is missing", domain.ErrMalformedResponse)
	}

	title, err := r.stringField("name")
	if err != nil {
		return domain.Album{}, err
	}
	artist, err := r.stringField("artist")
	if err != nil {
		return domain.Album{}, err
	}
	releaseDate, err := r.stringField("releaseDate")
	if err != nil {
		return domain.Album{}, err
	}
	spotifyID, err := r.stringField("spotifyId")
	if err != nil {
		return domain.Album{}, err
	}
	if strings.TrimSpace(spotifyID) == "" {
		return domain.Album{}, fmt.Errorf("%w: currentAlbum.spotifyId is empty", domain.ErrMalformedResponse)
	}

	album := domain.Album{
		Title:         title,
		Artist:        artist,
		ReleaseYear:   releaseDate,
		StreamingLink: joinURL(streamingBaseURL, spotifyID),
	}
	if err := album.Validate(); err != nil {
		return domain.Album{}, err
	}

	return album, nil
}

func (r *GroupResponse) stringField(name string) (string, error) {
	raw, ok := r.CurrentAlbum[name]
	if !ok {
		return "", fmt.Errorf("%w: currentAlbum.%s is missing", domain.ErrMalformedResponse, name)
	}

	var value *string
	if err := json.Unmarshal(raw, &value); err != nil || value == nil {
		return "", fmt.Errorf("%w: currentAlbum.%s is not a string", domain.ErrMalformedResponse, name)
	}

	return *value, nil
}

// GeneratorClient reads group state from the 1001 Albums Generator API.
type GeneratorClient struct {
	client *resty.Client
}

func NewGeneratorClient(client *resty.Client) (*GeneratorClient, error) {
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}
	prepareClient(client)

	return &GeneratorClient{client: client}, nil
}

// FetchGroup performs exactly one GET. Transport failures and non-2xx statuses are
// transient; a 2xx body that is not a group document is not.
func (c *GeneratorClient) FetchGroup(ctx context.Context, groupURL string) (*GroupResponse, error) {
	if c == nil || c.client == nil {
		return nil, fmt.Errorf("generator client is not initialized")
	}

	response, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(groupURL)
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
	if !isSuccessStatus(statusCode) {
		return nil, statusError(statusCode, strings.TrimSpace(response.String()))
	}

	var group GroupResponse
	if err := json.Unmarshal(response.Body(), &group); err != nil {
		return nil, &ProviderError{
			StatusCode: statusCode,
			Message:    "undecodable group document",
			Transient:  false,
			Cause:      fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err),
		}
	}

	return &group, nil
}

// GroupAPIURL returns the generator API endpoint for group.
func GroupAPIURL(baseURL, group string) string {
	return joinURL(baseURL, "api/v1/groups", group)
}

// GroupPageURL returns the public web page for group.
func GroupPageURL(baseURL, group string) string {
	return joinURL(baseURL, "groups", group)
}

func joinURL(base string, parts ...string) string {
	out := strings.TrimRight(base, "/")
	for _, part := range parts {
		out += "/" + strings.Trim(part, "/")
	}
	return out
}
