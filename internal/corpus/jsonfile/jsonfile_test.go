package jsonfile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidesearch/internal/domain"
)

func TestDecode(t *testing.T) {
	data := []byte(`{
		"deckB.pptx": ["Revenue growth by region"],
		"deckA.pptx": ["Intro to quarterly revenue", "Risk factors overview"]
	}`)
	records, err := Decode(data)
	require.NoError(t, err)
	// decks ordered by name, slides in array order
	require.Len(t, records, 3)
	assert.Equal(t, domain.SlideRecord{Deck: "deckA.pptx", Slide: 0, Summary: "Intro to quarterly revenue"}, records[0])
	assert.Equal(t, domain.SlideRecord{Deck: "deckA.pptx", Slide: 1, Summary: "Risk factors overview"}, records[1])
	assert.Equal(t, domain.SlideRecord{Deck: "deckB.pptx", Slide: 0, Summary: "Revenue growth by region"}, records[2])
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte(`{"deck": "not an array"}`))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	records := []domain.SlideRecord{
		{Deck: "deckA.pptx", Slide: 0, Summary: "Intro to quarterly revenue"},
		{Deck: "deckA.pptx", Slide: 1, Summary: "Risk factors overview"},
		{Deck: "deckB.pptx", Slide: 0, Summary: "Revenue growth by region"},
	}
	path := filepath.Join(t.TempDir(), "text_output", "slide_summaries.json")
	src := NewSource(path)

	ctx := context.Background()
	require.NoError(t, src.Save(ctx, records))

	loaded, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	src := NewSource(filepath.Join(t.TempDir(), "absent.json"))
	_, err := src.Load(context.Background())
	assert.Error(t, err)
}
