package types

import "testing"

func TestIsCJK(t *testing.T) {
	tests := []struct {
		name     string
		r        rune
		expected bool
	}{
		{name: "han ideograph", r: '搜', expected: true},
		{name: "hangul syllable", r: '한', expected: true},
		{name: "hangul jamo", r: 'ㄱ', expected: true},
		{name: "extension A", r: '㐀', expected: true},
		{name: "compatibility ideograph", r: '\uFA11', expected: true},
		{name: "compatibility gap", r: '晴', expected: false},
		{name: "extension B", r: '\U00020000', expected: true},
		{name: "extension C end", r: '\U0002B734', expected: true},
		{name: "between C and D", r: '\U0002B735', expected: false},
		{name: "hiragana", r: 'あ', expected: false},
		{name: "latin", r: 'a', expected: false},
		{name: "cyrillic", r: 'ж', expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCJK(tt.r); got != tt.expected {
				t.Errorf("IsCJK(%U) = %v, want %v", tt.r, got, tt.expected)
			}
		})
	}
}

func TestDetectCharsets(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Charsets
	}{
		{name: "latin only", text: "plain english text", expected: Charsets{}},
		{name: "cyrillic", text: "документация", expected: Charsets{Cyrillic: true}},
		{name: "cjk", text: "文档 docs", expected: Charsets{CJK: true}},
		{name: "korean", text: "검색", expected: Charsets{CJK: true}},
		{name: "both", text: "поиск 搜索", expected: Charsets{Cyrillic: true, CJK: true}},
		{name: "empty", text: "", expected: Charsets{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCharsets(tt.text); got != tt.expected {
				t.Errorf("DetectCharsets(%q) = %+v, want %+v", tt.text, got, tt.expected)
			}
		})
	}
}
