// Package search wires the corpus, embedder, and index into the query engine.
package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"slidesearch/internal/corpus"
	"slidesearch/internal/domain"
	"slidesearch/internal/index"
)

// DefaultTopK is used when a query does not specify a result count.
const DefaultTopK = 3

var _ domain.SearchService = (*Engine)(nil)

// Engine answers natural-language queries against an embedded slide corpus.
// The index is replaced atomically on rebuild, so concurrent queries never
// observe a partially built index. Queries before the first successful
// rebuild fail with ErrEmptyIndex.
type Engine struct {
	corpus   *corpus.Corpus
	embedder domain.Embedder
	log      *slog.Logger
	idx      atomic.Pointer[index.Flat]
}

// NewEngine creates an engine over the given corpus and embedder.
// A nil logger disables logging.
func NewEngine(c *corpus.Corpus, embedder domain.Embedder, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{corpus: c, embedder: embedder, log: log}
}

// Rebuild embeds the whole corpus, builds a fresh index off to the side, and
// swaps it in. On failure the previous index (if any) stays in place.
func (e *Engine) Rebuild(ctx context.Context) error {
	texts := e.corpus.Summaries()
	vectors, err := e.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed corpus: %w", err)
	}
	idx, err := index.Build(vectors)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIndexBuild, err)
	}
	e.idx.Store(idx)
	e.log.Info("index rebuilt",
		"slides", idx.Len(),
		"dimension", idx.Dimension(),
		"embedder", e.embedder.Name(),
	)
	return nil
}

// Query embeds the text and returns the topK closest slides ranked from 1.
// Result length is min(topK, corpus size); scores are non-increasing.
// topK below 1 defaults to DefaultTopK. Results are never cached; every call
// re-embeds and re-searches.
func (e *Engine) Query(ctx context.Context, text string, topK int) ([]domain.SearchResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, domain.ErrEmptyQuery
	}
	if topK < 1 {
		topK = DefaultTopK
	}
	idx := e.idx.Load()
	if idx == nil {
		return nil, domain.ErrEmptyIndex
	}
	vec, err := e.embedder.EmbedOne(ctx, trimmed)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	candidates, err := idx.Search(vec, topK)
	if err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, len(candidates))
	for i, c := range candidates {
		results[i] = domain.SearchResult{
			Record: e.corpus.Record(c.Position),
			Score:  float64(c.Score),
			Rank:   i + 1,
		}
	}
	e.log.Debug("query answered", "query", trimmed, "top_k", topK, "results", len(results))
	return results, nil
}
