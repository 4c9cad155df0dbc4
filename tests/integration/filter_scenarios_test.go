package integration

import (
	"context"
	"testing"

	"blog-api/internal/bookmarks"
	"blog-api/internal/kvstore"
	"blog-api/internal/logger"
)

// TestFilterScenarios tests free-text bookmark matching end to end through
// the service: save real records, then list with queries.
func TestFilterScenarios(t *testing.T) {
	svc := bookmarks.NewService(kvstore.NewMemoryStore(), logger.NewNop())
	ctx := context.Background()

	seed := []bookmarks.SaveTweetInput{
		{
			URL:   "https://x.com/rsc/status/1",
			Notes: "generics design retrospective",
			Tags:  []string{"go"},
		},
		{
			URL:   "https://x.com/mitchellh/status/2",
			Notes: "terraform plugin internals",
			Tags:  []string{"infra"},
		},
		{
			URL:   "https://x.com/b0rk/status/3",
			Notes: "how dns resolution actually works",
			Tags:  []string{"networking", "go"},
		},
	}
	for _, input := range seed {
		if _, err := svc.SaveTweet(ctx, input); err != nil {
			t.Fatalf("SaveTweet(%s): %v", input.URL, err)
		}
	}

	tests := []struct {
		name        string
		query       string
		wantAuthor  string
		wantMatches int
		description string
	}{
		{
			name:        "notes substring",
			query:       "generics",
			wantAuthor:  "rsc",
			wantMatches: 1,
			description: "single hit in notes",
		},
		{
			name:        "author username",
			query:       "b0rk",
			wantAuthor:  "b0rk",
			wantMatches: 1,
			description: "author field is searchable",
		},
		{
			name:        "multi word scattered",
			query:       "dns works",
			wantAuthor:  "b0rk",
			wantMatches: 1,
			description: "all query words must appear",
		},
		{
			name:        "case insensitive",
			query:       "TERRAFORM",
			wantAuthor:  "mitchellh",
			wantMatches: 1,
			description: "query casing is irrelevant",
		},
		{
			name:        "no hit",
			query:       "kubernetes",
			wantMatches: 0,
			description: "unrelated query matches nothing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.ListTweets(ctx, bookmarks.ListParams{Query: tt.query})
			if err != nil {
				t.Fatalf("ListTweets: %v", err)
			}
			if result.Total != tt.wantMatches {
				t.Fatalf("%s: got %d matches, want %d", tt.description, result.Total, tt.wantMatches)
			}
			if tt.wantMatches > 0 && result.Items[0].AuthorUsername != tt.wantAuthor {
				t.Fatalf("%s: top result author = %s, want %s",
					tt.description, result.Items[0].AuthorUsername, tt.wantAuthor)
			}
		})
	}
}

// TestTagFilterScenarios checks exact-tag filtering combined with text
// queries.
func TestTagFilterScenarios(t *testing.T) {
	svc := bookmarks.NewService(kvstore.NewMemoryStore(), logger.NewNop())
	ctx := context.Background()

	for _, input := range []bookmarks.SaveTweetInput{
		{URL: "https://x.com/a/status/1", Tags: []string{"go"}, Notes: "channels"},
		{URL: "https://x.com/b/status/2", Tags: []string{"go"}, Notes: "slices"},
		{URL: "https://x.com/c/status/3", Tags: []string{"rust"}, Notes: "channels"},
	} {
		if _, err := svc.SaveTweet(ctx, input); err != nil {
			t.Fatalf("SaveTweet: %v", err)
		}
	}

	result, err := svc.ListTweets(ctx, bookmarks.ListParams{Tag: "go"})
	if err != nil {
		t.Fatalf("ListTweets: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("tag filter: got %d, want 2", result.Total)
	}

	result, err = svc.ListTweets(ctx, bookmarks.ListParams{Tag: "go", Query: "channels"})
	if err != nil {
		t.Fatalf("ListTweets: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("tag+query filter: got %d, want 1", result.Total)
	}
	if got := result.Items[0].AuthorUsername; got != "a" {
		t.Fatalf("tag+query filter: author = %s, want a", got)
	}
}
