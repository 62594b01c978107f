package corpus

import (
	"context"
	"fmt"
	"strings"

	"slidesearch/internal/domain"
)

// Corpus is an ordered, validated, immutable collection of slide records.
// Insertion order is significant: a record's position aligns it with its
// embedding vector in the index.
type Corpus struct {
	records []domain.SlideRecord
}

// New validates records and freezes them into a Corpus.
// Record order is preserved. Validation fails fast: the first malformed or
// duplicate record aborts the whole load.
func New(records []domain.SlideRecord) (*Corpus, error) {
	seen := make(map[string]struct{}, len(records))
	out := make([]domain.SlideRecord, len(records))
	for i, r := range records {
		if strings.TrimSpace(r.Deck) == "" {
			return nil, fmt.Errorf("%w: record %d has no deck ID", domain.ErrMalformedRecord, i)
		}
		if r.Slide < 0 {
			return nil, fmt.Errorf("%w: record %d (deck %q) has negative slide index %d", domain.ErrMalformedRecord, i, r.Deck, r.Slide)
		}
		if strings.TrimSpace(r.Summary) == "" {
			return nil, fmt.Errorf("%w: record %d (deck %q slide %d) has empty summary", domain.ErrMalformedRecord, i, r.Deck, r.Slide)
		}
		key := fmt.Sprintf("%s\x00%d", r.Deck, r.Slide)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: deck %q slide %d", domain.ErrDuplicateKey, r.Deck, r.Slide)
		}
		seen[key] = struct{}{}
		out[i] = r
	}
	return &Corpus{records: out}, nil
}

// Load reads records from a source and validates them into a Corpus.
func Load(ctx context.Context, src domain.Source) (*Corpus, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return New(records)
}

// Len returns the number of records.
func (c *Corpus) Len() int { return len(c.records) }

// Record returns the record at the given position.
func (c *Corpus) Record(i int) domain.SlideRecord { return c.records[i] }

// Summaries returns the summary texts in corpus order, ready for batch
// embedding.
func (c *Corpus) Summaries() []string {
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = r.Summary
	}
	return out
}
