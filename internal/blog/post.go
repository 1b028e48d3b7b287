// Package blog loads markdown posts with frontmatter from a directory and keeps them indexed
// newest first.
package blog

import (
	"cmp"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
	"time"
)

const untitled = "Untitled"

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02 15:04",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006/01/02",
}

type Post struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	PublishedAt time.Time `json:"published_at"`
	Description string    `json:"description"`
	Author      string    `json:"author,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Body        string    `json:"body,omitempty"`
}

// Summary drops the body.
func (p Post) Summary() Post {
	p.Body = ""
	return p
}

// ParsePost builds a post from a markdown source. The slug is the file name without ".md".
func ParsePost(name, src string) Post {
	meta, body := ParseFrontmatter(src)
	p := Post{
		Slug:        strings.TrimSuffix(path.Base(name), ".md"),
		Title:       cmp.Or(meta.Title, untitled),
		Date:        meta.Date,
		Description: meta.Description,
		Author:      meta.Author,
		Tags:        meta.Tags,
		Body:        body,
	}
	p.PublishedAt = parseDate(meta.Date)
	return p
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Load reads every *.md file at the root of fsys, newest first. Posts without a usable date
// sort last, ties by slug.
func Load(fsys fs.FS) ([]Post, error) {
	names, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	posts := make([]Post, 0, len(names))
	for _, name := range names {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		posts = append(posts, ParsePost(name, string(b)))
	}

	slices.SortFunc(posts, compare)
	return posts, nil
}

func compare(a, b Post) int {
	switch az, bz := a.PublishedAt.IsZero(), b.PublishedAt.IsZero(); {
	case az && !bz:
		return 1
	case !az && bz:
		return -1
	}
	if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
		return c
	}
	return strings.Compare(a.Slug, b.Slug)
}

// Index is a concurrency safe snapshot of the posts in a directory.
type Index struct {
	fsys fs.FS

	mu    sync.RWMutex
	posts []Post
}

// NewIndex loads fsys once. Call Reload to pick up changes.
func NewIndex(fsys fs.FS) (*Index, error) {
	idx := &Index{fsys: fsys}
	if err := idx.Reload(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Reload replaces the index; on error the previous posts stay.
func (i *Index) Reload() error {
	posts, err := Load(i.fsys)
	if err != nil {
		return err
	}
	i.mu.Lock()
	i.posts = posts
	i.mu.Unlock()
	return nil
}

func (i *Index) All() []Post {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.posts)
}

func (i *Index) Recent(n int) []Post {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.posts[:min(max(n, 0), len(i.posts))])
}

func (i *Index) Find(slug string) (Post, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for _, p := range i.posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}

func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.posts)
}
