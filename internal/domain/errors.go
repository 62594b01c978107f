package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord indicates a slide record missing its deck ID or
	// summary text, or carrying a negative slide index.
	ErrMalformedRecord = errors.New("malformed slide record")

	// ErrDuplicateKey indicates a repeated (deck, slide) identity in a record set.
	ErrDuplicateKey = errors.New("duplicate slide key")

	// ErrEmptyCorpus is returned when an index build receives zero vectors.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrEmptyIndex is returned when a search runs against an index holding
	// zero vectors, including querying before the first successful rebuild.
	ErrEmptyIndex = errors.New("empty index")

	// ErrEmptyQuery indicates a query string that is empty after trimming.
	ErrEmptyQuery = errors.New("empty query")

	// ErrEmbedding indicates a failed embedding call. Transient: callers may
	// retry; adapters retry with backoff before surfacing it.
	ErrEmbedding = errors.New("embedding failed")

	// ErrIndexBuild indicates a failed index build. Fatal: the corpus is
	// unusable until rebuilt from a corrected source.
	ErrIndexBuild = errors.New("index build failed")
)

// DimensionMismatchError indicates a vector whose length differs from the
// index dimension. Position is the offending vector's corpus position, or -1
// for a query vector.
type DimensionMismatchError struct {
	Expected int
	Actual   int
	Position int
}

func (e *DimensionMismatchError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
	}
	return fmt.Sprintf("dimension mismatch at position %d: expected %d, got %d", e.Position, e.Expected, e.Actual)
}
