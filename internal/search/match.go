package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/igusev/sitesearch/internal/index"
	"github.com/igusev/sitesearch/internal/logger"
	"github.com/igusev/sitesearch/internal/types"
	"golang.org/x/sync/errgroup"
)

// Field boosts of the search plan
const (
	titleBoost   = 10.0
	headingBoost = 7.0
)

// SearchResult is a matched page with its display fields
type SearchResult struct {
	Page *types.Page `json:"page"`

	// ParentPageTitle is the title of the section root page; nil on every
	// result of a group but the first
	ParentPageTitle *string `json:"parentPageTitle"`
	// HeadingStr is the heading breadcrumb, or the page title
	HeadingStr string `json:"headingStr"`
	// Slug is the "#fragment" deep link, empty for page-level results
	Slug string `json:"slug"`
	// ContentStr is the body snippet, nil for heading and title-only results
	ContentStr *string `json:"contentStr"`
}

// searchPlan returns the field queries applied to every index
func searchPlan(queryString string, limit int) []index.FieldQuery {
	return []index.FieldQuery{
		{Field: index.FieldTitle, Query: queryString, Limit: limit, Boost: titleBoost},
		{Field: index.FieldHeaders, Query: queryString, Limit: limit, Boost: headingBoost},
		{Field: index.FieldContent, Query: queryString, Limit: limit},
	}
}

// Match searches all indexes concurrently, keeps the first hit per path
// (primary index hits win over auxiliary ones), locates the query inside each
// page and returns the results grouped by parent page.
// A limit of zero or less means DefaultLimit.
func (c *Corpus) Match(ctx context.Context, queryString string, queryTerms []string, limit int) ([]SearchResult, error) {
	if c == nil {
		return nil, ErrNotBuilt
	}
	if strings.TrimSpace(queryString) == "" {
		return []SearchResult{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	plan := searchPlan(queryString, limit)
	indexes := c.indexes()
	hits := make([][]*types.Page, len(indexes))

	g, gctx := errgroup.WithContext(ctx)
	for i, idx := range indexes {
		if idx == nil {
			continue
		}
		g.Go(func() error {
			pages, err := idx.Search(gctx, plan)
			if err != nil {
				return err
			}
			hits[i] = pages
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	query := strings.ToLower(queryString)
	terms := normalizeTerms(queryTerms)

	seen := make(map[string]bool)
	var results []groupedResult
	for _, pages := range hits {
		for _, p := range pages {
			if seen[p.Path] {
				continue
			}
			seen[p.Path] = true
			results = append(results, groupedResult{
				parentTitle: c.parentPageTitle(p),
				result:      c.describe(p, query, terms),
			})
		}
	}

	logger.Debug("Query %q: %d primary, %d cyrillic, %d cjk hits, %d unique",
		queryString, len(hits[0]), len(hits[1]), len(hits[2]), len(results))

	return groupByParent(results), nil
}

// normalizeTerms lowercases terms and drops empty ones
func normalizeTerms(queryTerms []string) []string {
	terms := make([]string, 0, len(queryTerms))
	for _, t := range queryTerms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// describe fills the display fields of a result for a lowercased query
func (c *Corpus) describe(p *types.Page, query string, terms []string) SearchResult {
	loc, ok := locate(p, query, terms)
	if !ok {
		return SearchResult{Page: p, HeadingStr: FullHeading(p, -1)}
	}

	if loc.InHeading() {
		return SearchResult{
			Page:       p,
			HeadingStr: FullHeading(p, loc.HeaderIndex),
			Slug:       "#" + p.Headers[loc.HeaderIndex].Slug,
		}
	}

	section := sectionHeaderIndex(p, loc.CharIndex)
	snippet := ContentSnippet(p.Content, loc, c.snippetLength)
	result := SearchResult{
		Page:       p,
		HeadingStr: FullHeading(p, section),
		ContentStr: &snippet,
	}
	if section >= 0 {
		result.Slug = "#" + p.Headers[section].Slug
	}
	return result
}
