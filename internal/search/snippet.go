package search

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// ContentSnippet returns the line of content holding the body match at loc.
// Lines longer than snippetLength characters are cut to a window of that
// size centered on the match, with "..." marking each truncated side.
func ContentSnippet(content string, loc Location, snippetLength int) string {
	if loc.CharIndex < 0 || loc.CharIndex > len(content) {
		return ""
	}

	lineStart := strings.LastIndexByte(content[:loc.CharIndex], '\n') + 1
	lineEnd := strings.IndexByte(content[loc.CharIndex:], '\n')
	if lineEnd == -1 {
		lineEnd = len(content)
	} else {
		lineEnd += loc.CharIndex
	}

	line := []rune(content[lineStart:lineEnd])
	if len(line) <= snippetLength {
		return string(line)
	}

	termEnd := min(loc.CharIndex+loc.TermLength, lineEnd)
	termLength := utf8.RuneCountInString(content[loc.CharIndex:termEnd])
	lineCharIndex := utf8.RuneCountInString(content[lineStart:loc.CharIndex])

	// floor(lineCharIndex - (snippetLength-termLength)/2)
	start := max((2*lineCharIndex-(snippetLength-termLength))/2, 0)
	end := min(start+snippetLength, len(line))

	var b strings.Builder
	if start > 0 {
		b.WriteString(ellipsis)
	}
	b.WriteString(string(line[start:end]))
	if end < len(line) {
		b.WriteString(ellipsis)
	}
	return b.String()
}
