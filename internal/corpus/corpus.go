// Package corpus reads and writes the page dump produced by the site build
package corpus

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/igusev/sitesearch/internal/types"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when the page dump does not exist
var ErrNotFound = errors.New("page dump not found")

// Store is a page dump file: a YAML (or JSON) list of pages
type Store struct {
	path string
}

// New creates a Store for the given file path
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the dump file path
func (s *Store) Path() string {
	return s.path
}

// Exists checks if the dump file exists
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Read decodes every page of the dump
func (s *Store) Read() ([]*types.Page, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to read page dump: %w", err)
	}

	var pages []*types.Page
	if err := yaml.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("failed to parse page dump %s: %w", s.path, err)
	}

	// Drop entries without a path, they cannot be addressed
	valid := pages[:0]
	for _, p := range pages {
		if p != nil && p.Path != "" {
			valid = append(valid, p)
		}
	}

	return valid, nil
}

// Write encodes pages to the dump file as YAML, creating parent directories
func (s *Store) Write(pages []*types.Page) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create dump directory: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(pages); err != nil {
		return fmt.Errorf("failed to encode pages: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode pages: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create page dump: %w", err)
	}
	defer f.Close()

	writer := bufio.NewWriter(f)
	if _, err := writer.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write page dump: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush page dump: %w", err)
	}

	return nil
}

// Filter returns the pages whose path is not excluded.
// A nil excluded func keeps every page.
func Filter(pages []*types.Page, excluded func(path string) bool) []*types.Page {
	if excluded == nil {
		return pages
	}
	kept := make([]*types.Page, 0, len(pages))
	for _, p := range pages {
		if !excluded(p.Path) {
			kept = append(kept, p)
		}
	}
	return kept
}
