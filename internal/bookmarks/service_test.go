package bookmarks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-api/internal/domain"
	"blog-api/internal/kvstore"
	"blog-api/internal/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(kvstore.NewMemoryStore(), logger.NewNop())
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	svc.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return svc
}

func mustSave(t *testing.T, svc *Service, input SaveTweetInput) *domain.Bookmark {
	t.Helper()
	b, err := svc.SaveTweet(context.Background(), input)
	require.NoError(t, err)
	return b
}

func TestSaveTweet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	b, err := svc.SaveTweet(ctx, SaveTweetInput{
		URL:   "https://x.com/rsc/status/123456",
		Tags:  []string{"go", "go", " compilers "},
		Notes: "  worth rereading  ",
	})
	require.NoError(t, err)

	assert.Len(t, b.ID, idLength)
	assert.Equal(t, "123456", b.TweetID)
	assert.Equal(t, "rsc", b.AuthorUsername)
	assert.Equal(t, []string{"go", "compilers"}, b.Tags)
	assert.Equal(t, "worth rereading", b.Notes)
	assert.True(t, b.IsPublic, "public by default")
	assert.False(t, b.SavedAt.IsZero())

	got, err := svc.GetTweet(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestSaveTweetValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SaveTweet(ctx, SaveTweetInput{URL: "   "})
	assert.True(t, domain.IsValidation(err), "blank url: %v", err)

	_, err = svc.SaveTweet(ctx, SaveTweetInput{URL: "https://example.com/not-a-tweet"})
	assert.True(t, domain.IsValidation(err), "non-tweet url: %v", err)
}

func TestSaveTweetDuplicate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustSave(t, svc, SaveTweetInput{URL: "https://x.com/rsc/status/123456"})

	// Same tweet under the other host spelling is still a duplicate.
	_, err := svc.SaveTweet(ctx, SaveTweetInput{URL: "https://twitter.com/rsc/status/123456"})
	assert.True(t, domain.IsValidation(err), "expected duplicate rejection, got %v", err)
}

func TestGetTweetNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetTweet(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateTweet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	b := mustSave(t, svc, SaveTweetInput{
		URL:  "https://x.com/rsc/status/123456",
		Tags: []string{"go"},
	})

	notes := "updated notes"
	private := false
	updated, err := svc.UpdateTweet(ctx, b.ID, UpdateTweetInput{
		Tags:     &[]string{"plan9"},
		Notes:    &notes,
		IsPublic: &private,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"plan9"}, updated.Tags)
	assert.Equal(t, "updated notes", updated.Notes)
	assert.False(t, updated.IsPublic)

	// Identity fields never change.
	assert.Equal(t, b.ID, updated.ID)
	assert.Equal(t, b.URL, updated.URL)
	assert.Equal(t, b.SavedAt, updated.SavedAt)

	got, err := svc.GetTweet(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateTweetPartial(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	b := mustSave(t, svc, SaveTweetInput{
		URL:   "https://x.com/rsc/status/123456",
		Tags:  []string{"go"},
		Notes: "original",
	})

	notes := "only notes change"
	updated, err := svc.UpdateTweet(ctx, b.ID, UpdateTweetInput{Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, []string{"go"}, updated.Tags, "nil field left alone")
	assert.Equal(t, "only notes change", updated.Notes)
	assert.True(t, updated.IsPublic)
}

func TestUpdateTweetNotFound(t *testing.T) {
	svc := newTestService(t)

	notes := "nope"
	_, err := svc.UpdateTweet(context.Background(), "missing", UpdateTweetInput{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteTweet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	b := mustSave(t, svc, SaveTweetInput{URL: "https://x.com/rsc/status/123456"})

	existed, err := svc.DeleteTweet(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	_, err = svc.GetTweet(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Second delete is a no-op, not an error.
	existed, err = svc.DeleteTweet(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, existed)

	list, err := svc.ListTweets(ctx, ListParams{})
	require.NoError(t, err)
	assert.Zero(t, list.Total, "deleted bookmark must leave the index")
}

func TestListTweetsOrdering(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := mustSave(t, svc, SaveTweetInput{URL: "https://x.com/alice/status/1"})
	second := mustSave(t, svc, SaveTweetInput{URL: "https://x.com/bob/status/2"})
	third := mustSave(t, svc, SaveTweetInput{URL: "https://x.com/carol/status/3"})

	list, err := svc.ListTweets(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, list.Items, 3)

	assert.Equal(t, third.ID, list.Items[0].ID, "newest first")
	assert.Equal(t, second.ID, list.Items[1].ID)
	assert.Equal(t, first.ID, list.Items[2].ID)
}

func TestListTweetsFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	private := false
	mustSave(t, svc, SaveTweetInput{
		URL:      "https://x.com/alice/status/1",
		Tags:     []string{"go"},
		IsPublic: &private,
	})
	mustSave(t, svc, SaveTweetInput{
		URL:   "https://x.com/bob/status/2",
		Tags:  []string{"go", "distsys"},
		Notes: "raft explained",
	})
	mustSave(t, svc, SaveTweetInput{
		URL:  "https://x.com/carol/status/3",
		Tags: []string{"design"},
	})

	tests := []struct {
		name   string
		params ListParams
		want   int
	}{
		{"no filter", ListParams{}, 3},
		{"public only", ListParams{PublicOnly: true}, 2},
		{"by tag", ListParams{Tag: "go"}, 2},
		{"by tag and public", ListParams{Tag: "go", PublicOnly: true}, 1},
		{"by query", ListParams{Query: "raft"}, 1},
		{"query misses", ListParams{Query: "zzzz"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.ListTweets(ctx, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, list.Total)
			assert.Len(t, list.Items, tt.want)
		})
	}
}

func TestListTweetsPagination(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		mustSave(t, svc, SaveTweetInput{
			URL: "https://x.com/user/status/" + string(rune('1'+i)),
		})
	}

	page1, err := svc.ListTweets(ctx, ListParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page1.Items, 2)
	assert.Equal(t, 5, page1.Total)

	page3, err := svc.ListTweets(ctx, ListParams{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page3.Items, 1)

	// No overlap across pages.
	page2, err := svc.ListTweets(ctx, ListParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, b := range append(append(page1.Items, page2.Items...), page3.Items...) {
		assert.False(t, seen[b.ID], "bookmark %s appears twice", b.ID)
		seen[b.ID] = true
	}

	// Out-of-range page is empty, not an error.
	page9, err := svc.ListTweets(ctx, ListParams{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page9.Items)
	assert.Equal(t, 5, page9.Total)

	// Zero values fall back to defaults; oversized limits clamp.
	defaults, err := svc.ListTweets(ctx, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.Page)
	assert.Equal(t, defaultPageLimit, defaults.Limit)

	clamped, err := svc.ListTweets(ctx, ListParams{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, maxPageLimit, clamped.Limit)
}

func TestAllTags(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tags, err := svc.AllTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)

	mustSave(t, svc, SaveTweetInput{URL: "https://x.com/a/status/1", Tags: []string{"go", "distsys"}})
	mustSave(t, svc, SaveTweetInput{URL: "https://x.com/b/status/2", Tags: []string{"go", "design"}})
	mustSave(t, svc, SaveTweetInput{URL: "https://x.com/c/status/3"})

	tags, err = svc.AllTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"design", "distsys", "go"}, tags)
}

func TestLoadAllSkipsCorruptRecords(t *testing.T) {
	store := kvstore.NewMemoryStore()
	svc := NewService(store, logger.NewNop())
	ctx := context.Background()

	good := mustSave(t, svc, SaveTweetInput{URL: "https://x.com/a/status/1"})

	require.NoError(t, store.SetIndexed(ctx, BookmarkKey("bad"), "{not json", AllKey, "bad"))

	list, err := svc.ListTweets(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, good.ID, list.Items[0].ID)
}

func TestSaveTweetStoreFailure(t *testing.T) {
	svc := NewService(&failingStore{MemoryStore: kvstore.NewMemoryStore()}, logger.NewNop())

	_, err := svc.SaveTweet(context.Background(), SaveTweetInput{URL: "https://x.com/a/status/1"})
	require.Error(t, err)
	assert.False(t, domain.IsValidation(err))
}

type failingStore struct {
	*kvstore.MemoryStore
}

func (f *failingStore) SetIndexed(ctx context.Context, key, value, indexKey, member string) error {
	return errors.New("write refused")
}
