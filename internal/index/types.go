package index

import (
	"context"

	"github.com/igusev/sitesearch/internal/types"
)

// Indexed field names
const (
	FieldTitle   = "title"
	FieldHeaders = "headersStr"
	FieldContent = "content"
)

// Profile selects the tokenization policy of an index
type Profile int

const (
	// ProfileDefault splits on word boundaries, folds case, matches prefixes
	ProfileDefault Profile = iota
	// ProfileCyrillic splits on whitespace only and folds case
	ProfileCyrillic
	// ProfileCJK emits one token per Hangul/CJK codepoint, no case folding
	ProfileCJK
)

// String returns the profile name used in logs and stats
func (p Profile) String() string {
	switch p {
	case ProfileCyrillic:
		return "cyrillic"
	case ProfileCJK:
		return "cjk"
	default:
		return "default"
	}
}

// FieldQuery is one entry of a search plan
type FieldQuery struct {
	Field string  // One of FieldTitle, FieldHeaders, FieldContent
	Query string  // Raw query string, analyzed per profile
	Limit int     // Max hits taken from this field
	Boost float64 // Score multiplier, 0 means no boost
}

// Index is a full-text index over pages keyed by path
type Index interface {
	// Add bulk-loads pages, indexing title, headersStr and content
	Add(pages []*types.Page) error
	// Search runs every plan entry and returns the matched pages, best first
	Search(ctx context.Context, plan []FieldQuery) ([]*types.Page, error)
	// Count returns the number of indexed pages
	Count() (uint64, error)
	// Close releases the index
	Close() error
}
