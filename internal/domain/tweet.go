package domain

import (
	"regexp"
	"strings"
)

// tweetURLPattern matches canonical tweet URLs on twitter.com and x.com,
// including the legacy /statuses/ path and mobile hosts.
var tweetURLPattern = regexp.MustCompile(
	`^https?://(?:www\.|mobile\.)?(?:twitter\.com|x\.com)/([A-Za-z0-9_]{1,15})/status(?:es)?/(\d+)`)

// TweetRef is the identity extracted from a tweet URL.
type TweetRef struct {
	// TweetID is the numeric status identifier. Example: "123"
	TweetID string

	// AuthorUsername is the handle owning the status. Example: "user"
	AuthorUsername string
}

// ParseTweetURL extracts the tweet identity from a status URL.
// Returns a ValidationError when the URL does not match the platform pattern.
func ParseTweetURL(rawURL string) (TweetRef, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return TweetRef{}, NewValidationError("url", "url is required")
	}

	m := tweetURLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return TweetRef{}, NewValidationError("url", "url is not a recognized tweet URL")
	}

	return TweetRef{
		AuthorUsername: m[1],
		TweetID:        m[2],
	}, nil
}
