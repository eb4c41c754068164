// Package types defines the page model shared by the index and search layers
package types

import (
	"strings"
	"unicode/utf8"
)

// Header is a single heading inside a page, in document order
type Header struct {
	Title     string `yaml:"title" json:"title"`
	Level     int    `yaml:"level" json:"level"`
	Slug      string `yaml:"slug" json:"slug"`
	CharIndex *int   `yaml:"charIndex,omitempty" json:"charIndex,omitempty"` // Byte offset into Content, nil if not tracked
}

// Charsets flags the presence of scripts that need their own tokenization
type Charsets struct {
	Cyrillic bool `yaml:"cyrillic" json:"cyrillic"`
	CJK      bool `yaml:"cjk" json:"cjk"`
}

// Frontmatter holds arbitrary page metadata produced upstream
type Frontmatter map[string]any

// Page is one document of the site corpus
type Page struct {
	Path             string      `yaml:"path" json:"path"`   // e.g., "/guide/setup"
	Title            string      `yaml:"title" json:"title"` // e.g., "Setup"
	Headers          []Header    `yaml:"headers" json:"headers"`
	Content          string      `yaml:"content" json:"content"` // Plain text, markup already stripped
	ContentLowercase string      `yaml:"contentLowercase,omitempty" json:"contentLowercase,omitempty"`
	HeadersStr       string      `yaml:"headersStr,omitempty" json:"headersStr,omitempty"`
	Charsets         *Charsets   `yaml:"charsets,omitempty" json:"charsets,omitempty"`
	Frontmatter      Frontmatter `yaml:"frontmatter,omitempty" json:"frontmatter,omitempty"`
}

// Searchable reports whether the page takes part in indexing.
// Only an explicit `search: false` in the frontmatter opts a page out.
func (p *Page) Searchable() bool {
	if p.Frontmatter == nil {
		return true
	}
	v, ok := p.Frontmatter["search"].(bool)
	return !ok || v
}

// Normalize fills derived fields that upstream left empty
func (p *Page) Normalize() {
	if p.ContentLowercase == "" && p.Content != "" {
		p.ContentLowercase = LowerPreservingOffsets(p.Content)
	}
	if p.HeadersStr == "" && len(p.Headers) > 0 {
		titles := make([]string, len(p.Headers))
		for i, h := range p.Headers {
			titles[i] = h.Title
		}
		p.HeadersStr = strings.Join(titles, " ")
	}
	if p.Charsets == nil {
		cs := DetectCharsets(p.Title + "\n" + p.HeadersStr + "\n" + p.Content)
		p.Charsets = &cs
	}
}

// HasCyrillic is a nil-safe accessor for the Cyrillic flag
func (p *Page) HasCyrillic() bool {
	return p.Charsets != nil && p.Charsets.Cyrillic
}

// HasCJK is a nil-safe accessor for the CJK flag
func (p *Page) HasCJK() bool {
	return p.Charsets != nil && p.Charsets.CJK
}

// LowerPreservingOffsets lowercases s rune by rune, keeping every rune whose
// lowercase form has a different UTF-8 width (and every invalid byte) as is,
// so that byte offsets in the result are valid in s and vice versa.
func LowerPreservingOffsets(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(s[i])
			i++
			continue
		}
		lower := toLower(r)
		if utf8.RuneLen(lower) == size {
			b.WriteRune(lower)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}

	return b.String()
}
