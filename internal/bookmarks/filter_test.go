package bookmarks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blog-api/internal/domain"
)

func TestMatchScore(t *testing.T) {
	b := &domain.Bookmark{
		URL:            "https://x.com/rsc/status/123456",
		AuthorUsername: "rsc",
		Notes:          "generics proposal walkthrough",
		Metadata: &domain.TweetMetadata{
			AuthorName: "Russ Cox",
			Text:       "type parameters are landing in go 1.18",
		},
	}

	tests := []struct {
		name  string
		query string
		want  float64
	}{
		{"exact field match", "rsc", scoreExactMatch},
		{"prefix match", "generics prop", scorePrefixMatch},
		{"case insensitive", "RSC", scoreExactMatch},
		{"metadata author", "russ cox", scoreExactMatch},
		{"empty query", "", 0},
		{"whitespace query", "   ", 0},
		{"no match", "kubernetes", 0},
		{"all words scattered", "landing type", scoreAllWordsMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchScore(tt.query, b))
		})
	}
}

func TestMatchScoreSubstringPosition(t *testing.T) {
	b := &domain.Bookmark{Notes: "the raft paper, annotated"}

	score := MatchScore("raft", b)
	assert.Greater(t, score, scoreSubstringMatch)
	assert.LessOrEqual(t, score, scoreSubstringMatch+scorePositionBonus)

	// A later occurrence scores lower than an earlier one.
	early := MatchScore("raft", &domain.Bookmark{Notes: "the raft paper"})
	late := MatchScore("raft", &domain.Bookmark{Notes: "a long preamble before raft"})
	assert.Greater(t, early, late)
}

func TestMatches(t *testing.T) {
	b := &domain.Bookmark{Notes: "sqlite internals"}

	assert.True(t, Matches("sqlite", b))
	assert.False(t, Matches("postgres", b))
	assert.False(t, Matches("sqlite", nil))
}
