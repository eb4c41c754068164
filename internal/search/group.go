package search

import (
	"strings"

	"github.com/igusev/sitesearch/internal/types"
)

// groupedResult carries the group key next to a result until grouping
type groupedResult struct {
	parentTitle string
	result      SearchResult
}

// parentPageTitle returns the title of the section root "/{first segment}/",
// or of the page itself when no such root page exists
func (c *Corpus) parentPageTitle(p *types.Page) string {
	parentPath := "/"
	if parts := strings.Split(p.Path, "/"); len(parts) > 1 && parts[1] != "" {
		parentPath = "/" + parts[1] + "/"
	}

	if parent, ok := c.pagesByPath[parentPath]; ok {
		return parent.Title
	}
	return p.Title
}

// groupByParent orders results by parent title, groups in first-seen order
// and members in input order. Only the first result of each group keeps its
// ParentPageTitle.
func groupByParent(entries []groupedResult) []SearchResult {
	var keys []string
	groups := make(map[string][]SearchResult)
	for _, e := range entries {
		if _, ok := groups[e.parentTitle]; !ok {
			keys = append(keys, e.parentTitle)
		}
		groups[e.parentTitle] = append(groups[e.parentTitle], e.result)
	}

	flat := make([]SearchResult, 0, len(entries))
	for _, key := range keys {
		for i, r := range groups[key] {
			if i == 0 {
				title := key
				r.ParentPageTitle = &title
			} else {
				r.ParentPageTitle = nil
			}
			flat = append(flat, r)
		}
	}
	return flat
}
