// Package announce renders the daily album announcement posted to the group chat.
package announce

import (
	"fmt"
	"time"

	"github.com/kursadbilgin/albumbot/internal/domain"
)

const header = "1001albumsgenerator"

// Format builds the announcement for album on date. It performs no I/O and returns the
// same text for the same inputs.
func Format(album domain.Album, date time.Time, groupURL string) string {
	return fmt.Sprintf(
		"%s %d/%d/%d\n\n%s by %s (%s)\n\n%s\n\nGroup: %s\n",
		header,
		int(date.Month()),
		date.Day(),
		date.Year(),
		album.Title,
		album.Artist,
		album.ReleaseYear,
		album.StreamingLink,
		groupURL,
	)
}
