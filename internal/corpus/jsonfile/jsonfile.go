// Package jsonfile persists slide summaries as a JSON object mapping deck
// name to an array of per-slide summaries in slide order.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"slidesearch/internal/domain"
)

var _ domain.Source = (*Source)(nil)

// Source reads and writes slide records from a JSON file on disk.
type Source struct {
	path string
}

// NewSource creates a file-backed source for the given path.
func NewSource(path string) *Source { return &Source{path: path} }

// Load reads the summaries file and flattens it into slide records.
func (s *Source) Load(ctx context.Context) ([]domain.SlideRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	records, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return records, nil
}

// Save writes the summaries file, creating parent directories as needed.
func (s *Source) Save(ctx context.Context, records []domain.SlideRecord) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Decode parses the deck-keyed document shape into an ordered record slice:
// decks sorted by name, slides in array order. Repeated decodes of the same
// document yield the same corpus order.
func Decode(data []byte) ([]domain.SlideRecord, error) {
	var decks map[string][]string
	if err := json.Unmarshal(data, &decks); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(decks))
	for name := range decks {
		names = append(names, name)
	}
	sort.Strings(names)
	var records []domain.SlideRecord
	for _, name := range names {
		for i, summary := range decks[name] {
			records = append(records, domain.SlideRecord{Deck: name, Slide: i, Summary: summary})
		}
	}
	return records, nil
}

// Encode groups records by deck and renders the indented JSON document.
func Encode(records []domain.SlideRecord) ([]byte, error) {
	decks := make(map[string][]string)
	for _, r := range records {
		slides := decks[r.Deck]
		for len(slides) <= r.Slide {
			slides = append(slides, "")
		}
		slides[r.Slide] = r.Summary
		decks[r.Deck] = slides
	}
	return json.MarshalIndent(decks, "", "    ")
}
