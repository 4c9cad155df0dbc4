package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"blog-api/internal/domain"
)

var frontmatterDelimiter = []byte("---")

// frontmatter is the YAML header of a post file.
type frontmatter struct {
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug"`
	Date        string   `yaml:"date"`
	Tags        []string `yaml:"tags"`
	Description string   `yaml:"description"`
	Draft       bool     `yaml:"draft"`
}

// Catalog reads blog posts from a content directory and serves a cached
// snapshot. Load replaces the snapshot wholesale; readers never see a
// half-loaded state.
type Catalog struct {
	dir string

	mu         sync.RWMutex
	posts      []domain.Post
	lastReload time.Time
}

// New creates a catalog for the given content directory. Call Load before
// first use.
func New(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// Load walks the content directory and rebuilds the post snapshot.
// Posts are ordered newest-first; drafts are skipped.
func (c *Catalog) Load() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("failed to read content dir: %w", err)
	}

	posts := make([]domain.Post, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(c.dir, entry.Name())
		post, err := parsePostFile(path)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		if post.Draft {
			continue
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})

	c.mu.Lock()
	c.posts = posts
	c.lastReload = time.Now()
	c.mu.Unlock()

	return nil
}

// Posts returns the current snapshot, newest-first.
func (c *Catalog) Posts() []domain.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()

	posts := make([]domain.Post, len(c.posts))
	copy(posts, c.posts)
	return posts
}

// Count returns the number of published posts.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.posts)
}

// Tags returns the sorted union of post tags.
func (c *Catalog) Tags() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, post := range c.posts {
		for _, tag := range post.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// LastReload returns when the snapshot was last rebuilt.
func (c *Catalog) LastReload() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastReload
}

func parsePostFile(path string) (domain.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Post{}, err
	}

	meta, err := splitFrontmatter(data)
	if err != nil {
		return domain.Post{}, err
	}

	var fm frontmatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return domain.Post{}, fmt.Errorf("invalid frontmatter: %w", err)
	}

	slug := fm.Slug
	if slug == "" {
		slug = strings.TrimSuffix(filepath.Base(path), ".md")
	}
	if fm.Title == "" {
		return domain.Post{}, fmt.Errorf("missing title")
	}

	date, err := parseDate(fm.Date)
	if err != nil {
		return domain.Post{}, err
	}

	return domain.Post{
		Slug:        slug,
		Title:       fm.Title,
		Date:        date,
		Tags:        fm.Tags,
		Description: fm.Description,
		Draft:       fm.Draft,
	}, nil
}

// splitFrontmatter extracts the YAML block between the leading "---" lines.
func splitFrontmatter(data []byte) ([]byte, error) {
	trimmed := bytes.TrimLeft(data, "\n\r")
	if !bytes.HasPrefix(trimmed, frontmatterDelimiter) {
		return nil, fmt.Errorf("missing frontmatter")
	}

	rest := trimmed[len(frontmatterDelimiter):]
	end := bytes.Index(rest, frontmatterDelimiter)
	if end < 0 {
		return nil, fmt.Errorf("unterminated frontmatter")
	}
	return rest[:end], nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
