package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/igusev/sitesearch/internal/types"
)

func TestStore_WriteAndRead(t *testing.T) {
	tempDir := t.TempDir()
	store := New(filepath.Join(tempDir, "nested", "pages.yaml"))

	charIndex := 22
	pages := []*types.Page{
		{
			Path:    "/guide/setup",
			Title:   "Setup",
			Content: "Install the CLI tool.\nRun setup after install.",
			Headers: []types.Header{{Title: "Run", Level: 2, Slug: "run", CharIndex: &charIndex}},
		},
		{
			Path:        "/draft",
			Title:       "Draft",
			Frontmatter: types.Frontmatter{"search": false},
		},
	}

	if err := store.Write(pages); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !store.Exists() {
		t.Fatal("Dump file should exist after Write")
	}

	got, err := store.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(got))
	}

	if got[0].Content != pages[0].Content {
		t.Errorf("Content = %q, want %q", got[0].Content, pages[0].Content)
	}
	if len(got[0].Headers) != 1 || got[0].Headers[0].CharIndex == nil || *got[0].Headers[0].CharIndex != 22 {
		t.Errorf("Header charIndex not preserved: %+v", got[0].Headers)
	}
	if got[1].Searchable() {
		t.Error("Frontmatter search: false should survive a round trip")
	}
}

func TestStore_ReadJSON(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "pages.json")

	data := `[
  {"path": "/", "title": "Home", "content": "Welcome", "charsets": {"cyrillic": false, "cjk": true}},
  {"path": "/about/", "title": "About", "headers": [{"title": "Team", "level": 2, "slug": "team"}]},
  {"title": "No path"}
]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	pages, err := New(path).Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("Expected 2 pages (entry without path dropped), got %d", len(pages))
	}
	if !pages[0].HasCJK() {
		t.Error("Charsets from dump should be kept")
	}
	if pages[1].Headers[0].Slug != "team" {
		t.Errorf("Header slug = %q, want team", pages[1].Headers[0].Slug)
	}
}

func TestStore_ReadMissing(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.yaml")).Read()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Read() error = %v, want ErrNotFound", err)
	}
}

func TestStore_ReadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("path: [unterminated"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	_, err := New(path).Read()
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("Read() error = %v, want parse error", err)
	}
}

func TestFilter(t *testing.T) {
	pages := []*types.Page{
		{Path: "/guide/a"},
		{Path: "/internal/b"},
		{Path: "/guide/c"},
	}

	tests := []struct {
		name     string
		excluded func(string) bool
		expected []string
	}{
		{
			name:     "nil keeps all",
			excluded: nil,
			expected: []string{"/guide/a", "/internal/b", "/guide/c"},
		},
		{
			name:     "prefix excluded",
			excluded: func(p string) bool { return strings.HasPrefix(p, "/internal/") },
			expected: []string{"/guide/a", "/guide/c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(pages, tt.excluded)
			if len(got) != len(tt.expected) {
				t.Fatalf("Filter() returned %d pages, want %d", len(got), len(tt.expected))
			}
			for i, p := range got {
				if p.Path != tt.expected[i] {
					t.Errorf("Position %d: got %q, want %q", i, p.Path, tt.expected[i])
				}
			}
		})
	}
}
