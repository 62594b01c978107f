package corpus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidesearch/internal/domain"
)

func validRecords() []domain.SlideRecord {
	return []domain.SlideRecord{
		{Deck: "deckA.pptx", Slide: 0, Summary: "Intro to quarterly revenue"},
		{Deck: "deckA.pptx", Slide: 1, Summary: "Risk factors overview"},
		{Deck: "deckB.pptx", Slide: 0, Summary: "Revenue growth by region"},
	}
}

func TestNew(t *testing.T) {
	t.Run("PreservesOrder", func(t *testing.T) {
		c, err := New(validRecords())
		require.NoError(t, err)
		require.Equal(t, 3, c.Len())
		assert.Equal(t, "deckA.pptx", c.Record(0).Deck)
		assert.Equal(t, 1, c.Record(1).Slide)
		assert.Equal(t, "Revenue growth by region", c.Record(2).Summary)
	})

	t.Run("EmptyDeck", func(t *testing.T) {
		_, err := New([]domain.SlideRecord{{Deck: "  ", Slide: 0, Summary: "text"}})
		require.ErrorIs(t, err, domain.ErrMalformedRecord)
	})

	t.Run("NegativeSlide", func(t *testing.T) {
		_, err := New([]domain.SlideRecord{{Deck: "deck", Slide: -1, Summary: "text"}})
		require.ErrorIs(t, err, domain.ErrMalformedRecord)
	})

	t.Run("BlankSummary", func(t *testing.T) {
		_, err := New([]domain.SlideRecord{{Deck: "deck", Slide: 0, Summary: " \t\n"}})
		require.ErrorIs(t, err, domain.ErrMalformedRecord)
	})

	t.Run("DuplicateKey", func(t *testing.T) {
		records := append(validRecords(), domain.SlideRecord{Deck: "deckA.pptx", Slide: 1, Summary: "again"})
		_, err := New(records)
		require.ErrorIs(t, err, domain.ErrDuplicateKey)
	})

	t.Run("SameSlideDifferentDecks", func(t *testing.T) {
		_, err := New(validRecords())
		assert.NoError(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		c, err := New(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
	})
}

func TestSummaries(t *testing.T) {
	c, err := New(validRecords())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Intro to quarterly revenue",
		"Risk factors overview",
		"Revenue growth by region",
	}, c.Summaries())
}

type staticSource struct {
	records []domain.SlideRecord
}

func (s *staticSource) Load(context.Context) ([]domain.SlideRecord, error) { return s.records, nil }
func (s *staticSource) Save(context.Context, []domain.SlideRecord) error  { return nil }

func TestLoad(t *testing.T) {
	c, err := Load(context.Background(), &staticSource{records: validRecords()})
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	_, err = Load(context.Background(), &staticSource{records: []domain.SlideRecord{{Deck: "", Slide: 0, Summary: "x"}}})
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)
}
