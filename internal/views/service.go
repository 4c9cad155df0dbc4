package views

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"blog-api/internal/domain"
	"blog-api/internal/kvstore"
	"blog-api/internal/logger"
)

// KeyPrefix is the key-value namespace for per-article view counters.
const KeyPrefix = "blog:views:"

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ViewKey returns the store key for a slug's counter.
func ViewKey(slug string) string {
	return KeyPrefix + slug
}

// Service reads and increments per-article view counters.
//
// There is no server-side dedup: callers are trusted to mark "already
// counted this session" on their side, so concurrent or repeated increments
// from one viewer are counted every time.
type Service struct {
	store  kvstore.Store
	logger logger.Logger
}

// NewService creates a view counter over the given store.
func NewService(store kvstore.Store, log logger.Logger) *Service {
	return &Service{store: store, logger: log}
}

// ValidateSlug rejects slugs that cannot be article identifiers.
func ValidateSlug(slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.NewValidationError("slug", "slug is required")
	}
	if !slugPattern.MatchString(slug) {
		return domain.NewValidationError("slug", "slug must be lowercase letters, digits and hyphens")
	}
	return nil
}

// GetViews returns the view count for slug, 0 when never incremented.
func (s *Service) GetViews(ctx context.Context, slug string) (int64, error) {
	if err := ValidateSlug(slug); err != nil {
		return 0, err
	}

	val, err := s.store.Get(ctx, ViewKey(slug))
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read views for %s: %w", slug, err)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt view counter for %s: %w", slug, err)
	}
	return count, nil
}

// IncrementViews adds one view to slug and returns the new count.
func (s *Service) IncrementViews(ctx context.Context, slug string) (int64, error) {
	if err := ValidateSlug(slug); err != nil {
		return 0, err
	}

	count, err := s.store.Increment(ctx, ViewKey(slug))
	if err != nil {
		return 0, fmt.Errorf("failed to increment views for %s: %w", slug, err)
	}
	return count, nil
}
