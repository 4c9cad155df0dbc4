package bookmarks

import (
	"strings"

	"blog-api/internal/domain"
)

// Match scores, highest first.
const (
	scoreExactMatch     = 100.0
	scorePrefixMatch    = 80.0
	scoreSubstringMatch = 60.0
	scorePositionBonus  = 10.0
	scoreAllWordsMatch  = 40.0
)

// MatchScore rates how well a free-text query matches a bookmark. The
// haystack is the notes, author username, URL and any captured metadata.
// Zero means no match.
func MatchScore(query string, b *domain.Bookmark) float64 {
	if b == nil {
		return 0
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0
	}

	best := 0.0
	for _, field := range searchFields(b) {
		if score := scoreField(query, field); score > best {
			best = score
		}
	}
	return best
}

// Matches reports whether the query hits the bookmark at all.
func Matches(query string, b *domain.Bookmark) bool {
	return MatchScore(query, b) > 0
}

func searchFields(b *domain.Bookmark) []string {
	fields := []string{
		strings.ToLower(b.Notes),
		strings.ToLower(b.AuthorUsername),
		strings.ToLower(b.URL),
	}
	if b.Metadata != nil {
		fields = append(fields,
			strings.ToLower(b.Metadata.AuthorName),
			strings.ToLower(b.Metadata.Text))
	}
	return fields
}

func scoreField(query, field string) float64 {
	if field == "" {
		return 0
	}

	if query == field {
		return scoreExactMatch
	}
	if strings.HasPrefix(field, query) {
		return scorePrefixMatch
	}
	if idx := strings.Index(field, query); idx >= 0 {
		// Earlier matches score higher.
		return scoreSubstringMatch + scorePositionBonus*(1.0-float64(idx)/float64(len(field)))
	}

	// Multi-word query: every word must appear somewhere in the field.
	words := strings.Fields(query)
	if len(words) > 1 {
		for _, word := range words {
			if !strings.Contains(field, word) {
				return 0
			}
		}
		return scoreAllWordsMatch
	}

	return 0
}
