package domain

import "time"

// Post is a published article from the content catalog.
//
// Posts are read-only inside the API: the catalog loads them from the
// content directory and the analytics aggregator joins them against the
// view-count map. The catalog is the only writer.
type Post struct {
	// Slug is the canonical unique identifier, also used as the
	// view-counter key suffix. Example: "going-faster-with-redis"
	Slug string `json:"slug"`

	// Title as written in the frontmatter.
	Title string `json:"title"`

	// Date is the publication date.
	Date time.Time `json:"date"`

	// Tags attached in the frontmatter, preserved in file order.
	Tags []string `json:"tags,omitempty"`

	// Description is the short summary used in listings.
	Description string `json:"description,omitempty"`

	// Draft posts are kept out of the catalog snapshot.
	Draft bool `json:"-"`
}
