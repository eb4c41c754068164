package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/igusev/sitesearch/internal/config"
	"github.com/igusev/sitesearch/internal/corpus"
	"github.com/igusev/sitesearch/internal/types"
	"github.com/spf13/viper"
)

func intPtr(i int) *int {
	return &i
}

func bufioReader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func testPages() []*types.Page {
	return []*types.Page{
		{Path: "/guide/", Title: "Guide", Content: "The guide explains everything."},
		{
			Path:    "/guide/setup",
			Title:   "Setup",
			Content: "Install the CLI tool.\nRun setup after install.",
		},
		{
			Path:  "/guide/deploy",
			Title: "Deploy",
			Headers: []types.Header{
				{Title: "Targets", Level: 2, Slug: "targets", CharIndex: intPtr(0)},
				{Title: "Docker", Level: 3, Slug: "docker", CharIndex: intPtr(33)},
			},
			Content: "Targets\nPick a target to deploy.\nDocker\nBuild the image and install it on the host.",
		},
		{Path: "/drafts/wip", Title: "Docker notes", Content: "Unfinished docker page."},
		{Path: "/ru/", Title: "Руководство", Content: "Установка и настройка."},
	}
}

// writeTestDump writes the test pages to a temp YAML dump
func writeTestDump(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pages.yaml")
	if err := corpus.New(path).Write(testPages()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return path
}

func testConfig(t *testing.T, excluded ...string) *config.Config {
	t.Helper()
	return &config.Config{
		Pages:         config.PagesConfig{File: writeTestDump(t)},
		Search:        config.SearchConfig{Limit: 7, SnippetLength: 120},
		ExcludedPaths: excluded,
	}
}

func TestOpenCorpusAppliesExclusions(t *testing.T) {
	tests := []struct {
		name      string
		excluded  []string
		wantPages int
	}{
		{name: "no exclusions", excluded: nil, wantPages: 5},
		{name: "drafts subtree", excluded: []string{"/drafts/*"}, wantPages: 4},
		{name: "exact path", excluded: []string{"/guide/setup"}, wantPages: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := openCorpus(testConfig(t, tt.excluded...))
			if err != nil {
				t.Fatalf("openCorpus() error = %v", err)
			}
			defer c.Close()

			s, err := c.Stats()
			if err != nil {
				t.Fatalf("Stats() error = %v", err)
			}
			if s.Pages != tt.wantPages {
				t.Errorf("Stats().Pages = %d, want %d", s.Pages, tt.wantPages)
			}
		})
	}
}

func TestOpenCorpusMissingDump(t *testing.T) {
	cfg := &config.Config{Pages: config.PagesConfig{File: filepath.Join(t.TempDir(), "missing.yaml")}}

	if _, err := openCorpus(cfg); err == nil {
		t.Fatal("openCorpus() expected error for a missing dump")
	}
}

func TestRunQueryJSON(t *testing.T) {
	c, err := openCorpus(testConfig(t, "/drafts/*"))
	if err != nil {
		t.Fatalf("openCorpus() error = %v", err)
	}
	defer c.Close()

	var buf bytes.Buffer
	if err := runQuery(context.Background(), &buf, c, "docker", 7, true); err != nil {
		t.Fatalf("runQuery() error = %v", err)
	}

	var results []jsonResult
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\n%s", err, buf.String())
	}

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d: %+v", len(results), results)
	}
	r := results[0]
	if r.Link != "/guide/deploy#docker" {
		t.Errorf("Link = %q, want /guide/deploy#docker", r.Link)
	}
	if r.Heading != "Targets > Docker" {
		t.Errorf("Heading = %q, want %q", r.Heading, "Targets > Docker")
	}
	if r.ParentPageTitle == nil || *r.ParentPageTitle != "Guide" {
		t.Errorf("ParentPageTitle = %v, want Guide", r.ParentPageTitle)
	}
	if r.Snippet != nil {
		t.Errorf("Snippet = %q, want nil for a heading match", *r.Snippet)
	}
}

func TestRunQueryText(t *testing.T) {
	c, err := openCorpus(testConfig(t))
	if err != nil {
		t.Fatalf("openCorpus() error = %v", err)
	}
	defer c.Close()

	var buf bytes.Buffer
	if err := runQuery(context.Background(), &buf, c, "install", 7, false); err != nil {
		t.Fatalf("runQuery() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Guide", "/guide/setup", "Install the CLI tool.", "results"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q:\n%s", want, output)
		}
	}
}

func TestRunQueryNoResults(t *testing.T) {
	c, err := openCorpus(testConfig(t))
	if err != nil {
		t.Fatalf("openCorpus() error = %v", err)
	}
	defer c.Close()

	var buf bytes.Buffer
	if err := runQuery(context.Background(), &buf, c, "kubernetes", 7, false); err != nil {
		t.Fatalf("runQuery() error = %v", err)
	}
	if !strings.Contains(buf.String(), `No results for "kubernetes"`) {
		t.Errorf("Output = %q, want a no-results notice", buf.String())
	}
}

func TestRunQueryJSONEmptyIsArray(t *testing.T) {
	c, err := openCorpus(testConfig(t))
	if err != nil {
		t.Fatalf("openCorpus() error = %v", err)
	}
	defer c.Close()

	var buf bytes.Buffer
	if err := runQuery(context.Background(), &buf, c, "kubernetes", 7, true); err != nil {
		t.Fatalf("runQuery() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("Output = %q, want []", got)
	}
}

func TestPrintStats(t *testing.T) {
	c, err := openCorpus(testConfig(t))
	if err != nil {
		t.Fatalf("openCorpus() error = %v", err)
	}
	defer c.Close()

	s, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if s.Cyrillic != 1 {
		t.Errorf("Stats().Cyrillic = %d, want 1", s.Cyrillic)
	}
	if s.CJK != 0 {
		t.Errorf("Stats().CJK = %d, want 0", s.CJK)
	}

	var buf bytes.Buffer
	printStats(&buf, "pages.yaml", s)
	output := buf.String()
	for _, want := range []string{"pages.yaml", "pages", "default", "cyrillic", "cjk"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q:\n%s", want, output)
		}
	}
}

func TestPrompt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		current  string
		expected string
	}{
		{name: "new value", input: "/srv/pages.yaml\n", current: "", expected: "/srv/pages.yaml"},
		{name: "keep current", input: "\n", current: "/old.yaml", expected: "/old.yaml"},
		{name: "trims spaces", input: "  10  \n", current: "7", expected: "10"},
		{name: "eof without newline", input: "42", current: "7", expected: "42"},
		{name: "eof empty", input: "", current: "7", expected: "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := prompt(bufioReader(tt.input), &out, "Label", tt.current)
			if err != nil {
				t.Fatalf("prompt() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("prompt() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRunConfigWizard(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	viper.Reset()
	t.Cleanup(viper.Reset)

	dump := writeTestDump(t)

	var out bytes.Buffer
	input := strings.NewReader(dump + "\n5\n\n")
	if err := runConfigWizard(input, &out); err != nil {
		t.Fatalf("runConfigWizard() error = %v\n%s", err, out.String())
	}

	if !strings.Contains(out.String(), "Found 5 pages") {
		t.Errorf("Output missing page count:\n%s", out.String())
	}

	data, err := os.ReadFile(filepath.Join(tmpHome, ".config", "sitesearch", "config.yaml"))
	if err != nil {
		t.Fatalf("Config file not written: %v", err)
	}

	viper.Reset()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v\n%s", err, data)
	}
	if cfg.Pages.File != dump {
		t.Errorf("Pages.File = %q, want %q", cfg.Pages.File, dump)
	}
	if cfg.Search.Limit != 5 {
		t.Errorf("Search.Limit = %d, want 5", cfg.Search.Limit)
	}
	if cfg.Search.SnippetLength != 120 {
		t.Errorf("Search.SnippetLength = %d, want 120", cfg.Search.SnippetLength)
	}
}

func TestRunConfigWizardRequiresDump(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	if err := runConfigWizard(strings.NewReader("\n\n\n"), &out); err == nil {
		t.Fatal("runConfigWizard() expected error without a page dump")
	}
}
