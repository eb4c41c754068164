// Package search turns full-text hits over a page corpus into display-ready
// results: where the query matched, the heading breadcrumb, a body snippet
// and grouping by parent section.
package search

import (
	"errors"
	"fmt"

	"github.com/igusev/sitesearch/internal/index"
	"github.com/igusev/sitesearch/internal/logger"
	"github.com/igusev/sitesearch/internal/types"
)

const (
	// DefaultLimit is the per-field, per-index hit cap
	DefaultLimit = 7
	// DefaultSnippetLength is the maximum snippet size in characters, ellipses excluded
	DefaultSnippetLength = 120
)

// ErrNotBuilt is returned when matching against a corpus that was never built
var ErrNotBuilt = errors.New("search index not built")

// Options tunes a corpus build
type Options struct {
	SnippetLength int // Zero means DefaultSnippetLength
}

// Corpus owns the indexes and path lookup of one build.
// It is immutable once built, so Match may be called concurrently;
// a rebuild produces a new Corpus.
type Corpus struct {
	primary  index.Index
	cyrillic index.Index // nil when no page has Cyrillic text
	cjk      index.Index // nil when no page has CJK text

	pagesByPath   map[string]*types.Page
	snippetLength int
}

// Stats holds document counts per index
type Stats struct {
	Pages    int    `json:"pages"`
	Primary  uint64 `json:"default"`
	Cyrillic uint64 `json:"cyrillic"`
	CJK      uint64 `json:"cjk"`
}

// BuildIndex builds a corpus with default options
func BuildIndex(allPages []*types.Page) (*Corpus, error) {
	return BuildIndexWithOptions(allPages, Options{})
}

// BuildIndexWithOptions drops pages opted out of search, fills their derived
// fields and builds the primary index plus the Cyrillic and CJK indexes when
// at least one page carries the matching charset flag.
func BuildIndexWithOptions(allPages []*types.Page, opts Options) (*Corpus, error) {
	pages := make([]*types.Page, 0, len(allPages))
	for _, p := range allPages {
		if p == nil || !p.Searchable() {
			continue
		}
		p.Normalize()
		pages = append(pages, p)
	}

	var cyrillicPages, cjkPages []*types.Page
	for _, p := range pages {
		if p.HasCyrillic() {
			cyrillicPages = append(cyrillicPages, p)
		}
		if p.HasCJK() {
			cjkPages = append(cjkPages, p)
		}
	}

	c := &Corpus{
		pagesByPath:   make(map[string]*types.Page, len(pages)),
		snippetLength: opts.SnippetLength,
	}
	if c.snippetLength <= 0 {
		c.snippetLength = DefaultSnippetLength
	}
	for _, p := range pages {
		c.pagesByPath[p.Path] = p
	}

	var err error
	if c.primary, err = buildProfileIndex(index.ProfileDefault, pages); err != nil {
		return nil, err
	}
	if len(cyrillicPages) > 0 {
		if c.cyrillic, err = buildProfileIndex(index.ProfileCyrillic, cyrillicPages); err != nil {
			_ = c.Close() // Ignore close error on error path
			return nil, err
		}
	} else {
		logger.Debug("No Cyrillic pages, skipping cyrillic index")
	}
	if len(cjkPages) > 0 {
		if c.cjk, err = buildProfileIndex(index.ProfileCJK, cjkPages); err != nil {
			_ = c.Close() // Ignore close error on error path
			return nil, err
		}
	} else {
		logger.Debug("No CJK pages, skipping cjk index")
	}

	logger.Debug("Built corpus: %d searchable of %d pages (%d cyrillic, %d cjk)",
		len(pages), len(allPages), len(cyrillicPages), len(cjkPages))

	return c, nil
}

func buildProfileIndex(profile index.Profile, pages []*types.Page) (index.Index, error) {
	idx, err := index.New(profile)
	if err != nil {
		return nil, err
	}
	if err := idx.Add(pages); err != nil {
		_ = idx.Close() // Ignore close error on error path
		return nil, err
	}
	return idx, nil
}

// indexes returns the indexes in merge priority order, absent ones as nil
func (c *Corpus) indexes() []index.Index {
	return []index.Index{c.primary, c.cyrillic, c.cjk}
}

// Page returns the searchable page stored under path
func (c *Corpus) Page(path string) (*types.Page, bool) {
	if c == nil {
		return nil, false
	}
	p, ok := c.pagesByPath[path]
	return p, ok
}

// Stats returns document counts per index
func (c *Corpus) Stats() (Stats, error) {
	if c == nil {
		return Stats{}, ErrNotBuilt
	}

	stats := Stats{Pages: len(c.pagesByPath)}
	counts := []*uint64{&stats.Primary, &stats.Cyrillic, &stats.CJK}
	for i, idx := range c.indexes() {
		if idx == nil {
			continue
		}
		n, err := idx.Count()
		if err != nil {
			return Stats{}, fmt.Errorf("failed to count documents: %w", err)
		}
		*counts[i] = n
	}
	return stats, nil
}

// Close releases every index of the corpus
func (c *Corpus) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for _, idx := range c.indexes() {
		if idx == nil {
			continue
		}
		if err := idx.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
