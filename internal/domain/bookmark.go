package domain

import "time"

// TweetMetadata is the optional structured payload captured alongside a
// bookmark, typically filled in by the browser extension.
type TweetMetadata struct {
	// AuthorName is the display name of the tweet author.
	AuthorName string `json:"authorName,omitempty"`

	// Text is a snippet of the tweet body captured at save time.
	Text string `json:"text,omitempty"`
}

// Bookmark is a saved reference to an external tweet.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the store-generated unique identifier.
	ID string `json:"id"`

	// URL is the source tweet URL.
	URL string `json:"url"`

	// TweetID is the platform identifier, derived from the URL.
	// Example: "1234567890"
	TweetID string `json:"tweetId"`

	// AuthorUsername is the handle extracted from the URL.
	// Example: "user"
	AuthorUsername string `json:"authorUsername"`

	// SavedAt is the creation timestamp. Never changes.
	SavedAt time.Time `json:"savedAt"`

	// ─────────────────────────────
	// Mutable annotation
	// ─────────────────────────────

	// Tags attached by the admin. Order is preserved for display.
	Tags []string `json:"tags"`

	// Notes is free-text annotation.
	Notes string `json:"notes,omitempty"`

	// IsPublic controls visibility in unauthenticated listings.
	IsPublic bool `json:"isPublic"`

	// Metadata is an optional captured payload.
	Metadata *TweetMetadata `json:"metadata,omitempty"`
}

// HasTag reports whether the bookmark carries the exact tag.
func (b *Bookmark) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
