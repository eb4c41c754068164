// Package index provides in-memory full-text page indexes using Bleve
package index

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	unicodetokenizer "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/whitespace"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/igusev/sitesearch/internal/logger"
	"github.com/igusev/sitesearch/internal/types"
)

// BleveIndex is an Index backed by a memory-only bleve index
type BleveIndex struct {
	index   bleve.Index
	profile Profile
	pages   map[string]*types.Page // Resolves hit IDs back to the source page
}

// New creates an empty in-memory index with the given tokenization profile
func New(profile Profile) (*BleveIndex, error) {
	indexMapping, err := buildIndexMapping(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s index mapping: %w", profile, err)
	}

	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s index: %w", profile, err)
	}

	return &BleveIndex{
		index:   index,
		profile: profile,
		pages:   make(map[string]*types.Page),
	}, nil
}

// analyzerName returns the custom analyzer name registered for a profile
func analyzerName(profile Profile) string {
	return "sitesearch_" + profile.String()
}

// analyzerConfig describes the custom analyzer of a profile
func analyzerConfig(profile Profile) map[string]interface{} {
	switch profile {
	case ProfileCyrillic:
		// icase + split on whitespace, no word-boundary segmentation
		return map[string]interface{}{
			"type":          custom.Name,
			"tokenizer":     whitespace.Name,
			"token_filters": []string{lowercase.Name},
		}
	case ProfileCJK:
		// CJK scripts have no case
		return map[string]interface{}{
			"type":      custom.Name,
			"tokenizer": CJKTokenizerName,
		}
	default:
		return map[string]interface{}{
			"type":          custom.Name,
			"tokenizer":     unicodetokenizer.Name,
			"token_filters": []string{lowercase.Name},
		}
	}
}

// buildIndexMapping creates the page mapping: title, headersStr and content
// are indexed with the profile analyzer and not stored, pages live in memory
func buildIndexMapping(profile Profile) (mapping.IndexMapping, error) {
	indexMapping := bleve.NewIndexMapping()

	name := analyzerName(profile)
	if err := indexMapping.AddCustomAnalyzer(name, analyzerConfig(profile)); err != nil {
		return nil, err
	}
	indexMapping.DefaultAnalyzer = name

	pageMapping := bleve.NewDocumentMapping()
	for _, field := range []string{FieldTitle, FieldHeaders, FieldContent} {
		fieldMapping := bleve.NewTextFieldMapping()
		fieldMapping.Analyzer = name
		fieldMapping.Store = false
		fieldMapping.Index = true
		fieldMapping.IncludeInAll = false
		pageMapping.AddFieldMappingsAt(field, fieldMapping)
	}
	indexMapping.DefaultMapping = pageMapping

	return indexMapping, nil
}

// Add indexes pages in a single batch, keyed by path
func (bi *BleveIndex) Add(pages []*types.Page) error {
	batch := bi.index.NewBatch()

	for _, p := range pages {
		doc := map[string]interface{}{
			FieldTitle:   p.Title,
			FieldHeaders: p.HeadersStr,
			FieldContent: p.Content,
		}
		if err := batch.Index(p.Path, doc); err != nil {
			return fmt.Errorf("failed to add page %s to batch: %w", p.Path, err)
		}
		bi.pages[p.Path] = p
	}

	if err := bi.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to index %s batch: %w", bi.profile, err)
	}

	logger.Debug("Indexed %d pages into %s index", len(pages), bi.profile)
	return nil
}

// Search executes each plan entry as its own request capped at the entry
// limit, sums the boosted scores per page and returns pages best first,
// equal scores ordered by path.
// Boosts scale hit scores here since bleve normalizes query weights per request.
func (bi *BleveIndex) Search(ctx context.Context, plan []FieldQuery) ([]*types.Page, error) {
	scores := make(map[string]float64)
	var order []string

	for _, fq := range plan {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		boost := fq.Boost
		if boost <= 0 {
			boost = 1
		}

		searchRequest := bleve.NewSearchRequestOptions(bi.buildFieldQuery(fq), fq.Limit, 0, false)

		searchResults, err := bi.index.SearchInContext(ctx, searchRequest)
		if err != nil {
			return nil, fmt.Errorf("%s search on %s failed: %w", bi.profile, fq.Field, err)
		}

		for _, hit := range searchResults.Hits {
			if _, seen := scores[hit.ID]; !seen {
				order = append(order, hit.ID)
			}
			scores[hit.ID] += hit.Score * boost
		}
	}

	sort.Slice(order, func(i, j int) bool {
		si, sj := scores[order[i]], scores[order[j]]
		if si != sj {
			return si > sj
		}
		return order[i] < order[j]
	})

	pages := make([]*types.Page, 0, len(order))
	for _, id := range order {
		if p, ok := bi.pages[id]; ok {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

// buildFieldQuery creates the query of one plan entry.
// Default and Cyrillic profiles: every token must match, each token as
// MatchQuery OR PrefixQuery so partial words find their completions.
// CJK profile: every ideograph of the query must be present.
func (bi *BleveIndex) buildFieldQuery(fq FieldQuery) query.Query {
	if bi.profile == ProfileCJK {
		matchQ := bleve.NewMatchQuery(fq.Query)
		matchQ.SetField(fq.Field)
		matchQ.SetOperator(query.MatchQueryOperatorAnd)
		return matchQ
	}

	tokens := queryTokens(fq.Query, bi.profile)
	if len(tokens) == 0 {
		return bleve.NewMatchNoneQuery()
	}

	tokenQueries := make([]query.Query, 0, len(tokens))
	for _, token := range tokens {
		matchQ := bleve.NewMatchQuery(token)
		matchQ.SetField(fq.Field)

		prefixQ := bleve.NewPrefixQuery(token)
		prefixQ.SetField(fq.Field)

		tokenQueries = append(tokenQueries, bleve.NewDisjunctionQuery(matchQ, prefixQ))
	}

	if len(tokenQueries) == 1 {
		return tokenQueries[0]
	}
	return bleve.NewConjunctionQuery(tokenQueries...)
}

// queryTokens splits a query the way the profile analyzer splits text.
// Prefix queries bypass analysis, so tokens are lowercased here.
func queryTokens(q string, profile Profile) []string {
	q = strings.ToLower(q)
	if profile == ProfileCyrillic {
		return strings.Fields(q)
	}
	return strings.FieldsFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// Profile returns the tokenization profile of the index
func (bi *BleveIndex) Profile() Profile {
	return bi.profile
}

// Count returns the number of indexed pages
func (bi *BleveIndex) Count() (uint64, error) {
	return bi.index.DocCount()
}

// Close closes the index
func (bi *BleveIndex) Close() error {
	return bi.index.Close()
}
