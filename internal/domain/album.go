package domain

import (
	"fmt"
	"strings"
)

// Album is the album-of-the-day selected by the generator for a group.
type Album struct {
	Title         string
	Artist        string
	ReleaseYear   string
	StreamingLink string
}

func (a Album) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: album title is empty", ErrMalformedResponse)
	}
	if strings.TrimSpace(a.Artist) == "" {
		return fmt.Errorf("%w: album artist is empty", ErrMalformedResponse)
	}
	if strings.TrimSpace(a.ReleaseYear) == "" {
		return fmt.Errorf("%w: album release date is empty", ErrMalformedResponse)
	}
	if strings.TrimSpace(a.StreamingLink) == "" {
		return fmt.Errorf("%w: album streaming link is empty", ErrMalformedResponse)
	}
	return nil
}
