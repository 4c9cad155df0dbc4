package views

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"blog-api/internal/catalog"
	"blog-api/internal/domain"
	"blog-api/internal/kvstore"
	"blog-api/internal/logger"
)

const (
	// PopularLimitMax caps the popular-posts ranking size.
	PopularLimitMax = 50
	// PopularLimitDefault is used when the caller passes no limit.
	PopularLimitDefault = 5
)

// PopularPost is one entry of the popular-posts ranking.
type PopularPost struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Views       int64     `json:"views"`
	Date        time.Time `json:"date"`
	Tags        []string  `json:"tags,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Summary is the derived analytics overview.
type Summary struct {
	TotalViews    int64   `json:"totalViews"`
	TotalPosts    int     `json:"totalPosts"`
	AverageViews  int64   `json:"averageViews"`
	MonthlyGrowth float64 `json:"monthlyGrowth"`
}

// Analytics computes derived statistics by joining the view-count namespace
// against the post catalog. Read-only.
type Analytics struct {
	store   kvstore.Store
	catalog *catalog.Catalog
	logger  logger.Logger
}

// NewAnalytics creates the aggregator.
func NewAnalytics(store kvstore.Store, cat *catalog.Catalog, log logger.Logger) *Analytics {
	return &Analytics{store: store, catalog: cat, logger: log}
}

// AllViews scans the view-count namespace and returns slug -> count.
// Any storage failure degrades to an empty map: downstream consumers show
// "zero views" instead of failing the request, which also means a transient
// outage is indistinguishable from no data.
func (a *Analytics) AllViews(ctx context.Context) map[string]int64 {
	keys, err := a.store.KeysByPrefix(ctx, KeyPrefix)
	if err != nil {
		a.logger.Warn("view scan failed, serving empty counts", logger.Error(err))
		return map[string]int64{}
	}
	if len(keys) == 0 {
		return map[string]int64{}
	}

	values, err := a.store.BatchGet(ctx, keys)
	if err != nil {
		a.logger.Warn("view batch read failed, serving empty counts", logger.Error(err))
		return map[string]int64{}
	}

	counts := make(map[string]int64, len(keys))
	for i, key := range keys {
		if values[i] == "" {
			continue
		}
		count, err := strconv.ParseInt(values[i], 10, 64)
		if err != nil {
			a.logger.Warn("skipping corrupt view counter",
				logger.String("key", key), logger.Error(err))
			continue
		}
		counts[strings.TrimPrefix(key, KeyPrefix)] = count
	}
	return counts
}

// TotalViews sums every counter in the namespace.
func (a *Analytics) TotalViews(ctx context.Context) int64 {
	var total int64
	for _, count := range a.AllViews(ctx) {
		total += count
	}
	return total
}

// PopularPosts ranks catalog posts by views, descending. Posts without a
// counter rank with 0 views; ties keep catalog order (newest-first). The
// limit is clamped to [1, PopularLimitMax].
func (a *Analytics) PopularPosts(ctx context.Context, limit int) []PopularPost {
	if limit < 1 {
		limit = 1
	}
	if limit > PopularLimitMax {
		limit = PopularLimitMax
	}

	counts := a.AllViews(ctx)
	posts := a.catalog.Posts()

	ranked := make([]PopularPost, 0, len(posts))
	for _, post := range posts {
		ranked = append(ranked, popularEntry(post, counts[post.Slug]))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Views > ranked[j].Views
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func popularEntry(post domain.Post, views int64) PopularPost {
	return PopularPost{
		Slug:        post.Slug,
		Title:       post.Title,
		Views:       views,
		Date:        post.Date,
		Tags:        post.Tags,
		Description: post.Description,
	}
}

// GetSummary computes the analytics overview.
//
// MonthlyGrowth is a simulated approximation inherited from the original
// dashboard: the total is split 60/40 into two synthetic months and the
// growth is the rounded percentage change between them. It is NOT based on
// time-bucketed data.
func (a *Analytics) GetSummary(ctx context.Context) Summary {
	totalViews := a.TotalViews(ctx)
	totalPosts := a.catalog.Count()

	var average int64
	if totalPosts > 0 {
		average = int64(math.Round(float64(totalViews) / float64(totalPosts)))
	}

	return Summary{
		TotalViews:    totalViews,
		TotalPosts:    totalPosts,
		AverageViews:  average,
		MonthlyGrowth: simulatedGrowth(totalViews),
	}
}

func simulatedGrowth(totalViews int64) float64 {
	current := int64(math.Round(float64(totalViews) * 0.6))
	previous := totalViews - current
	if previous <= 0 {
		return 0
	}
	return math.Round(float64(current-previous) / float64(previous) * 100)
}
