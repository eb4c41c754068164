package search

import (
	"slices"
	"strings"

	"github.com/igusev/sitesearch/internal/types"
)

// breadcrumbSeparator joins heading titles of a breadcrumb
const breadcrumbSeparator = " > "

// FullHeading returns the breadcrumb of the heading at headerIndex, e.g.
// "Install > Linux > Packages". An index out of range yields the page title.
// Ancestors are found by walking back to the nearest heading one level up;
// the walk stops at the first level with no such heading before it.
func FullHeading(p *types.Page, headerIndex int) string {
	if headerIndex < 0 || headerIndex >= len(p.Headers) {
		return p.Title
	}

	var chain []string
	for i := headerIndex; i >= 0; i = parentHeaderIndex(p.Headers, i) {
		chain = append(chain, p.Headers[i].Title)
	}
	slices.Reverse(chain)

	return strings.Join(chain, breadcrumbSeparator)
}

// parentHeaderIndex returns the nearest heading before i whose level is one
// less than the level of headers[i], or -1
func parentHeaderIndex(headers []types.Header, i int) int {
	level := headers[i].Level - 1
	for j := i - 1; j >= 0; j-- {
		if headers[j].Level == level {
			return j
		}
	}
	return -1
}

// sectionHeaderIndex returns the last heading with a known offset that starts
// before charIndex in the body, or -1
func sectionHeaderIndex(p *types.Page, charIndex int) int {
	for i := len(p.Headers) - 1; i >= 0; i-- {
		h := p.Headers[i]
		if h.CharIndex != nil && *h.CharIndex < charIndex {
			return i
		}
	}
	return -1
}
