package bookmarks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"blog-api/internal/domain"
	"blog-api/internal/kvstore"
	"blog-api/internal/logger"
	"blog-api/internal/validation"
)

const (
	// KeyPrefix is the key-value namespace for bookmark records.
	KeyPrefix = "blog:bookmark:"
	// AllKey is the set holding every bookmark ID.
	AllKey = "blog:bookmarks:all"

	idLength = 12

	defaultPageLimit = 20
	maxPageLimit     = 100
)

// BookmarkKey returns the store key for a bookmark ID.
func BookmarkKey(id string) string {
	return KeyPrefix + id
}

// SaveTweetInput is the create payload.
type SaveTweetInput struct {
	URL      string                `json:"url" validate:"required,notblank"`
	Tags     []string              `json:"tags" validate:"omitempty,dive,max=64"`
	Notes    string                `json:"notes" validate:"max=2000"`
	IsPublic *bool                 `json:"isPublic"`
	Metadata *domain.TweetMetadata `json:"metadata"`
}

// UpdateTweetInput is the partial-update payload. Nil fields stay unchanged;
// url, id and savedAt are immutable.
type UpdateTweetInput struct {
	Tags     *[]string `json:"tags" validate:"omitempty,dive,max=64"`
	Notes    *string   `json:"notes" validate:"omitempty,max=2000"`
	IsPublic *bool     `json:"isPublic"`
}

// ListParams select and page the bookmark listing.
type ListParams struct {
	Page       int    // 1-based, default 1
	Limit      int    // default 20, max 100
	Tag        string // exact tag match when non-empty
	Query      string // free-text match over notes/author/url when non-empty
	PublicOnly bool   // restrict to isPublic records
}

// ListResult is one page of bookmarks plus paging metadata.
type ListResult struct {
	Items []*domain.Bookmark `json:"items"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// Service owns bookmark persistence: records as JSON values under
// KeyPrefix plus an ID membership set under AllKey.
type Service struct {
	store  kvstore.Store
	logger logger.Logger
	now    func() time.Time
}

// NewService creates the bookmark store.
func NewService(store kvstore.Store, log logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
		now:    time.Now,
	}
}

// SaveTweet validates and persists a new bookmark, deriving the tweet
// identity from the URL. Duplicate detection (same tweet URL) is best
// effort: the check and the write are not atomic.
func (s *Service) SaveTweet(ctx context.Context, input SaveTweetInput) (*domain.Bookmark, error) {
	if err := validation.Validate(input); err != nil {
		return nil, err
	}

	ref, err := domain.ParseTweetURL(input.URL)
	if err != nil {
		return nil, err
	}

	existing, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range existing {
		if b.TweetID == ref.TweetID && b.AuthorUsername == ref.AuthorUsername {
			return nil, domain.NewValidationError("url", "tweet is already saved")
		}
	}

	id, err := gonanoid.New(idLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate bookmark id: %w", err)
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	bookmark := &domain.Bookmark{
		ID:             id,
		URL:            strings.TrimSpace(input.URL),
		TweetID:        ref.TweetID,
		AuthorUsername: ref.AuthorUsername,
		SavedAt:        s.now().UTC(),
		Tags:           normalizeTags(input.Tags),
		Notes:          strings.TrimSpace(input.Notes),
		IsPublic:       isPublic,
		Metadata:       input.Metadata,
	}

	if err := s.persist(ctx, bookmark); err != nil {
		return nil, err
	}

	s.logger.Info("bookmark saved",
		logger.String("id", bookmark.ID),
		logger.String("author", bookmark.AuthorUsername),
		logger.String("tweet_id", bookmark.TweetID))

	return bookmark, nil
}

// GetTweet returns the bookmark or domain.ErrNotFound.
func (s *Service) GetTweet(ctx context.Context, id string) (*domain.Bookmark, error) {
	data, err := s.store.Get(ctx, BookmarkKey(id))
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bookmark %s: %w", id, err)
	}

	var bookmark domain.Bookmark
	if err := json.Unmarshal([]byte(data), &bookmark); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookmark %s: %w", id, err)
	}
	return &bookmark, nil
}

// UpdateTweet applies a partial update. Only tags, notes and isPublic are
// mutable.
func (s *Service) UpdateTweet(ctx context.Context, id string, input UpdateTweetInput) (*domain.Bookmark, error) {
	if err := validation.Validate(input); err != nil {
		return nil, err
	}

	bookmark, err := s.GetTweet(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Tags != nil {
		bookmark.Tags = normalizeTags(*input.Tags)
	}
	if input.Notes != nil {
		bookmark.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.IsPublic != nil {
		bookmark.IsPublic = *input.IsPublic
	}

	if err := s.persist(ctx, bookmark); err != nil {
		return nil, err
	}
	return bookmark, nil
}

// DeleteTweet removes the record and reports whether it existed.
func (s *Service) DeleteTweet(ctx context.Context, id string) (bool, error) {
	existed, err := s.store.Delete(ctx, BookmarkKey(id))
	if err != nil {
		return false, fmt.Errorf("failed to delete bookmark %s: %w", id, err)
	}
	if err := s.store.SetRemove(ctx, AllKey, id); err != nil {
		return false, fmt.Errorf("failed to unindex bookmark %s: %w", id, err)
	}
	return existed, nil
}

// ListTweets filters, orders (newest-first) and pages the bookmarks.
func (s *Service) ListTweets(ctx context.Context, params ListParams) (*ListResult, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.Bookmark, 0, len(all))
	for _, b := range all {
		if params.PublicOnly && !b.IsPublic {
			continue
		}
		if params.Tag != "" && !b.HasTag(params.Tag) {
			continue
		}
		if params.Query != "" && !Matches(params.Query, b) {
			continue
		}
		filtered = append(filtered, b)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return &ListResult{
		Items: filtered[start:end],
		Total: len(filtered),
		Page:  page,
		Limit: limit,
	}, nil
}

// AllTags returns the sorted union of tags across every bookmark.
func (s *Service) AllTags(ctx context.Context) ([]string, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, b := range all {
		for _, tag := range b.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// ExportAll returns the full unfiltered dump, newest-first.
func (s *Service) ExportAll(ctx context.Context) ([]*domain.Bookmark, error) {
	return s.loadAll(ctx)
}

func (s *Service) persist(ctx context.Context, b *domain.Bookmark) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark %s: %w", b.ID, err)
	}
	if err := s.store.SetIndexed(ctx, BookmarkKey(b.ID), string(data), AllKey, b.ID); err != nil {
		return fmt.Errorf("failed to save bookmark %s: %w", b.ID, err)
	}
	return nil
}

// loadAll reads every indexed bookmark, skipping entries that fail to
// decode, and orders them newest-first.
func (s *Service) loadAll(ctx context.Context) ([]*domain.Bookmark, error) {
	ids, err := s.store.SetMembers(ctx, AllKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmark ids: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Bookmark{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = BookmarkKey(id)
	}

	values, err := s.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to batch read bookmarks: %w", err)
	}

	bookmarks := make([]*domain.Bookmark, 0, len(ids))
	for i, data := range values {
		if data == "" {
			continue
		}
		var b domain.Bookmark
		if err := json.Unmarshal([]byte(data), &b); err != nil {
			s.logger.Warn("skipping corrupt bookmark record",
				logger.String("id", ids[i]), logger.Error(err))
			continue
		}
		bookmarks = append(bookmarks, &b)
	}

	sort.SliceStable(bookmarks, func(i, j int) bool {
		if bookmarks[i].SavedAt.Equal(bookmarks[j].SavedAt) {
			return bookmarks[i].ID < bookmarks[j].ID
		}
		return bookmarks[i].SavedAt.After(bookmarks[j].SavedAt)
	})

	return bookmarks, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
