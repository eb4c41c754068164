package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/igusev/sitesearch/internal/search"
)

// Palette
var (
	// Accent teal
	accentTeal = lipgloss.Color("#2BB3A3")
	// Success green
	successGreen = lipgloss.Color("#00C853")
	// Warning yellow
	warningYellow = lipgloss.Color("#FFC107")
	// Info blue
	infoBlue = lipgloss.Color("#2196F3")
	// Muted gray
	mutedGray = lipgloss.Color("#9E9E9E")
)

// Style definitions
var (
	// Group header style - bold with accent
	sectionStyle = lipgloss.NewStyle().
			Foreground(accentTeal).
			Bold(true)

	// Result heading style
	titleStyle = lipgloss.NewStyle().
			Bold(true)

	// Success style
	successStyle = lipgloss.NewStyle().
			Foreground(successGreen).
			Bold(true)

	// Warning style
	warningStyle = lipgloss.NewStyle().
			Foreground(warningYellow).
			Bold(true)

	// Muted text style
	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	// Snippet style, indented under its heading
	snippetStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true).
			PaddingLeft(4)

	// URL style
	urlStyle = lipgloss.NewStyle().
			Foreground(infoBlue)
)

// jsonResult is the --json view of a search result
type jsonResult struct {
	Path            string  `json:"path"`
	Title           string  `json:"title"`
	ParentPageTitle *string `json:"parentPageTitle"`
	Heading         string  `json:"heading"`
	Slug            string  `json:"slug,omitempty"`
	Link            string  `json:"link"`
	Snippet         *string `json:"snippet"`
}

// resultLink returns the page path with its section fragment
func resultLink(r search.SearchResult) string {
	return r.Page.Path + r.Slug
}

func toJSONResults(results []search.SearchResult) []jsonResult {
	out := make([]jsonResult, 0, len(results))
	for _, r := range results {
		out = append(out, jsonResult{
			Path:            r.Page.Path,
			Title:           r.Page.Title,
			ParentPageTitle: r.ParentPageTitle,
			Heading:         r.HeadingStr,
			Slug:            r.Slug,
			Link:            resultLink(r),
			Snippet:         r.ContentStr,
		})
	}
	return out
}

// outputJSON writes v as indented JSON
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResults prints grouped results in display order
func printResults(w io.Writer, query string, results []search.SearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("⚠  No results for %q", query)))
		return
	}

	for i, r := range results {
		if r.ParentPageTitle != nil {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, sectionStyle.Render("▌ "+*r.ParentPageTitle))
		}
		fmt.Fprintf(w, "  %s  %s\n", titleStyle.Render(r.HeadingStr), urlStyle.Render(resultLink(r)))
		if r.ContentStr != nil {
			fmt.Fprintln(w, snippetStyle.Render(*r.ContentStr))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d results", len(results))))
}

// printStats prints per-index document counts
func printStats(w io.Writer, source string, s search.Stats) {
	fmt.Fprintln(w, sectionStyle.Render("▌ "+source))
	fmt.Fprintf(w, "  %-10s %d\n", "pages", s.Pages)
	fmt.Fprintf(w, "  %-10s %d\n", "default", s.Primary)
	fmt.Fprintf(w, "  %-10s %s\n", "cyrillic", countOrSkipped(s.Cyrillic))
	fmt.Fprintf(w, "  %-10s %s\n", "cjk", countOrSkipped(s.CJK))
}

func countOrSkipped(n uint64) string {
	if n == 0 {
		return mutedStyle.Render("-")
	}
	return fmt.Sprintf("%d", n)
}

// printSuccess prints a success message
func printSuccess(w io.Writer, text string) {
	fmt.Fprintln(w, successStyle.Render("✓ "+text))
}

// printMuted prints muted text
func printMuted(w io.Writer, text string) {
	fmt.Fprintln(w, mutedStyle.Render(text))
}
