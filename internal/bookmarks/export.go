package bookmarks

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"blog-api/internal/domain"
)

// untaggedSection is the trailing group for bookmarks without tags.
const untaggedSection = "Untagged"

// ExportEnvelope is the JSON export format.
type ExportEnvelope struct {
	Tweets     []*domain.Bookmark `json:"tweets"`
	ExportedAt time.Time          `json:"exportedAt"`
	TotalCount int                `json:"totalCount"`
}

// NewExportEnvelope wraps a full dump for JSON export.
func NewExportEnvelope(tweets []*domain.Bookmark, now time.Time) ExportEnvelope {
	return ExportEnvelope{
		Tweets:     tweets,
		ExportedAt: now.UTC(),
		TotalCount: len(tweets),
	}
}

// RenderMarkdown renders the full dump as a Markdown document grouped by
// tag. Tags are ordered alphabetically; a bookmark appears once under each
// of its tags; untagged bookmarks land in a trailing section.
func RenderMarkdown(tweets []*domain.Bookmark, now time.Time) string {
	groups := make(map[string][]*domain.Bookmark)
	var untagged []*domain.Bookmark
	for _, t := range tweets {
		if len(t.Tags) == 0 {
			untagged = append(untagged, t)
			continue
		}
		for _, tag := range t.Tags {
			groups[tag] = append(groups[tag], t)
		}
	}

	tags := make([]string, 0, len(groups))
	for tag := range groups {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var sb strings.Builder
	sb.WriteString("# Saved Tweets\n\n")
	fmt.Fprintf(&sb, "Exported %s — %d tweets\n", now.UTC().Format("2006-01-02 15:04 UTC"), len(tweets))

	for _, tag := range tags {
		fmt.Fprintf(&sb, "\n## %s\n", tag)
		for _, t := range groups[tag] {
			writeMarkdownEntry(&sb, t)
		}
	}

	if len(untagged) > 0 {
		fmt.Fprintf(&sb, "\n## %s\n", untaggedSection)
		for _, t := range untagged {
			writeMarkdownEntry(&sb, t)
		}
	}

	return sb.String()
}

func writeMarkdownEntry(sb *strings.Builder, t *domain.Bookmark) {
	fmt.Fprintf(sb, "\n### @%s\n\n", t.AuthorUsername)
	fmt.Fprintf(sb, "- URL: %s\n", t.URL)
	fmt.Fprintf(sb, "- Saved: %s\n", t.SavedAt.UTC().Format("2006-01-02 15:04 UTC"))
	if len(t.Tags) > 0 {
		fmt.Fprintf(sb, "- Tags: %s\n", strings.Join(t.Tags, ", "))
	}
	if t.Notes != "" {
		fmt.Fprintf(sb, "- Notes: %s\n", t.Notes)
	}
}
