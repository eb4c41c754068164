package index

import (
	"iter"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/registry"
	"github.com/igusev/sitesearch/internal/types"
)

// CJKTokenizerName is the registry name of the CJK unigram tokenizer
const CJKTokenizerName = "cjk_unigram"

func init() {
	registry.RegisterTokenizer(CJKTokenizerName, func(config map[string]interface{}, cache *registry.Cache) (analysis.Tokenizer, error) {
		return cjkTokenizer{}, nil
	})
}

// cjkTokenizer keeps no state between calls, so it is safe for concurrent use
type cjkTokenizer struct{}

// Tokenize implements analysis.Tokenizer
func (cjkTokenizer) Tokenize(input []byte) analysis.TokenStream {
	stream := make(analysis.TokenStream, 0, len(input)/3)
	position := 1
	for start, end := range cjkSpans(input) {
		stream = append(stream, &analysis.Token{
			Term:     input[start:end],
			Start:    start,
			End:      end,
			Position: position,
			Type:     analysis.Ideographic,
		})
		position++
	}
	return stream
}

// CJKTokens returns every Hangul/CJK codepoint of text as its own token.
// The sequence can be ranged over any number of times.
func CJKTokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for start, end := range cjkSpans([]byte(text)) {
			if !yield(text[start:end]) {
				return
			}
		}
	}
}

// cjkSpans yields the byte span of each CJK rune in input
func cjkSpans(input []byte) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i := 0; i < len(input); {
			r, size := utf8.DecodeRune(input[i:])
			if types.IsCJK(r) {
				if !yield(i, i+size) {
					return
				}
			}
			i += size
		}
	}
}
