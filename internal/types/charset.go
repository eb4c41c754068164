package types

import "unicode"

// cjkTable covers Hangul jamo and syllables plus the CJK Unified Ideographs
// blocks (BMP, compatibility exceptions and Extensions B through D)
var cjkTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3131, Hi: 0x3163, Stride: 1}, // Hangul compatibility jamo
		{Lo: 0x3400, Hi: 0x4db5, Stride: 1}, // Extension A
		{Lo: 0x4e00, Hi: 0x9fcc, Stride: 1}, // Unified Ideographs
		{Lo: 0xac00, Hi: 0xd7a3, Stride: 1}, // Hangul syllables
		{Lo: 0xfa0e, Hi: 0xfa0f, Stride: 1},
		{Lo: 0xfa11, Hi: 0xfa11, Stride: 1},
		{Lo: 0xfa13, Hi: 0xfa14, Stride: 1},
		{Lo: 0xfa1f, Hi: 0xfa1f, Stride: 1},
		{Lo: 0xfa21, Hi: 0xfa21, Stride: 1},
		{Lo: 0xfa23, Hi: 0xfa24, Stride: 1},
		{Lo: 0xfa27, Hi: 0xfa29, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x20000, Hi: 0x2a6d6, Stride: 1}, // Extension B
		{Lo: 0x2a700, Hi: 0x2b734, Stride: 1}, // Extension C
		{Lo: 0x2b740, Hi: 0x2b81d, Stride: 1}, // Extension D
	},
}

// IsCJK reports whether r is a Hangul or CJK ideograph codepoint
func IsCJK(r rune) bool {
	return unicode.Is(cjkTable, r)
}

// IsCyrillic reports whether r belongs to the Cyrillic script
func IsCyrillic(r rune) bool {
	return unicode.Is(unicode.Cyrillic, r)
}

// DetectCharsets scans text once and flags Cyrillic and CJK content
func DetectCharsets(text string) Charsets {
	var cs Charsets
	for _, r := range text {
		if r < 0x0400 {
			continue
		}
		if !cs.Cyrillic && IsCyrillic(r) {
			cs.Cyrillic = true
		}
		if !cs.CJK && IsCJK(r) {
			cs.CJK = true
		}
		if cs.Cyrillic && cs.CJK {
			break
		}
	}
	return cs
}

func toLower(r rune) rune {
	if r < unicode.MaxASCII {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}
	return unicode.ToLower(r)
}
