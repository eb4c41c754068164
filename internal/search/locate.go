package search

import (
	"strings"

	"github.com/igusev/sitesearch/internal/types"
)

// Location is where a term was found inside a page
type Location struct {
	HeaderIndex int // Index into Page.Headers, -1 for a body match
	CharIndex   int // Byte offset in the header title or in Page.Content
	TermLength  int // Term length in bytes
}

// InHeading reports whether the location is a heading match
func (l Location) InHeading() bool {
	return l.HeaderIndex >= 0
}

// headerMatch finds the first heading whose title contains term
func headerMatch(p *types.Page, term string) (Location, bool) {
	if term == "" {
		return Location{}, false
	}
	for i, h := range p.Headers {
		charIndex := strings.Index(types.LowerPreservingOffsets(h.Title), term)
		if charIndex == -1 {
			continue
		}
		return Location{HeaderIndex: i, CharIndex: charIndex, TermLength: len(term)}, true
	}
	return Location{}, false
}

// contentMatch finds the first occurrence of term in the lowercased body
func contentMatch(p *types.Page, term string) (Location, bool) {
	if term == "" || p.ContentLowercase == "" {
		return Location{}, false
	}
	charIndex := strings.Index(p.ContentLowercase, term)
	if charIndex == -1 {
		return Location{}, false
	}
	return Location{HeaderIndex: -1, CharIndex: charIndex, TermLength: len(term)}, true
}

// locate picks the single location to display for a page.
// Each term is looked up in headings first, then in the body. When every
// matched term hit a heading, the whole query as a heading match wins over
// the first term's heading match. Otherwise the whole query as a body match
// wins over the first term that only matched in the body.
func locate(p *types.Page, query string, terms []string) (Location, bool) {
	matches := make([]Location, 0, len(terms))
	for _, term := range terms {
		if loc, ok := headerMatch(p, term); ok {
			matches = append(matches, loc)
		} else if loc, ok := contentMatch(p, term); ok {
			matches = append(matches, loc)
		}
	}
	if len(matches) == 0 {
		return Location{}, false
	}

	allHeadings := true
	for _, m := range matches {
		if !m.InHeading() {
			allHeadings = false
			break
		}
	}

	if allHeadings {
		if loc, ok := headerMatch(p, query); ok {
			return loc, true
		}
		return matches[0], true
	}

	if loc, ok := contentMatch(p, query); ok {
		return loc, true
	}
	for _, m := range matches {
		if !m.InHeading() {
			return m, true
		}
	}
	return Location{}, false // unreachable: a body match exists
}
