package domain

import "context"

// SlideRecord is a single slide summary as loaded into the corpus.
// Identity is (Deck, Slide); records are immutable after loading.
type SlideRecord struct {
	Deck    string
	Slide   int
	Summary string
}

// SearchResult is a matched slide with its similarity score and 1-based rank.
// It is derived per query and never persisted.
type SearchResult struct {
	Record SlideRecord
	Score  float64
	Rank   int
}

// ArtifactHandle locates the renderable artifact behind a slide record,
// e.g. a page within a rendered PDF. The engine never inspects the bytes.
type ArtifactHandle struct {
	Path string
	Page int
}

// Embedder converts text into fixed-dimension L2-normalized vectors.
// Implementations must be deterministic for identical input and must
// return batch output in input order.
type Embedder interface {
	Name() string
	Dimension() int
	EmbedOne(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Source persists slide records. Implementations decide the storage
// medium; record order must survive a Load/Save round trip.
type Source interface {
	Load(ctx context.Context) ([]SlideRecord, error)
	Save(ctx context.Context, records []SlideRecord) error
}

// Resolver maps a slide record to its renderable artifact locator.
// Supplied by the surrounding document-conversion subsystem.
type Resolver interface {
	Resolve(record SlideRecord) (ArtifactHandle, error)
}

// SearchService defines the operations exposed by the application core.
type SearchService interface {
	Rebuild(ctx context.Context) error
	Query(ctx context.Context, text string, topK int) ([]SearchResult, error)
}
