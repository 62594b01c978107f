// Package openai embeds text through an OpenAI-compatible embeddings API.
// Groq- and Ollama-style endpoints work through the base URL setting.
package openai

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"sync/atomic"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"

	"slidesearch/internal/domain"
)

var _ domain.Embedder = (*Embedder)(nil)

// embeddingsAPI is the slice of the OpenAI client this adapter needs.
type embeddingsAPI interface {
	CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// Config configures the embeddings adapter. API keys enter through the
// environment variable named by APIKeyEnv, never through ambient globals.
type Config struct {
	BaseURL     string
	APIKeyEnv   string
	Model       string
	Timeout     time.Duration
	BatchSize   int
	MaxRetries  int
	MaxParallel int
}

// Embedder calls a remote embeddings endpoint, batching input and retrying
// transient failures with exponential backoff.
type Embedder struct {
	client      embeddingsAPI
	model       string
	timeout     time.Duration
	batchSize   int
	maxRetries  int
	maxParallel int
	dimension   atomic.Int32
}

// New creates an embeddings adapter from the given configuration.
func New(cfg Config) (*Embedder, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = string(openai.SmallEmbedding3)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = 4
	}
	return &Embedder{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		timeout:     cfg.Timeout,
		batchSize:   cfg.BatchSize,
		maxRetries:  cfg.MaxRetries,
		maxParallel: cfg.MaxParallel,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "openai" }

// Dimension returns the vector dimensionality, 0 until the first successful
// embedding fixes it.
func (e *Embedder) Dimension() int { return int(e.dimension.Load()) }

// EmbedOne embeds a single text.
func (e *Embedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch embeds all texts, preserving input order. Input is split into
// API-sized sub-batches which run in parallel under a concurrency limit;
// any sub-batch failure fails the whole call.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("%w: empty text at position %d", domain.ErrEmbedding, i)
		}
	}
	out := make([][]float32, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxParallel)
	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))
		start, end := start, end
		g.Go(func() error {
			vecs, err := e.embedChunk(gctx, texts[start:end])
			if err != nil {
				return err
			}
			copy(out[start:end], vecs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Embedder) embedChunk(ctx context.Context, texts []string) ([][]float32, error) {
	req := openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	}
	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", domain.ErrEmbedding, ctx.Err())
			case <-time.After(retryDelay(attempt - 1)):
			}
		}
		cctx, cancel := context.WithTimeout(ctx, e.timeout)
		resp, err := e.client.CreateEmbeddings(cctx, req)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrEmbedding, ctx.Err())
			}
			lastErr = err
			continue
		}
		vecs, err := e.collect(resp, len(texts))
		if err != nil {
			lastErr = err
			continue
		}
		return vecs, nil
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrEmbedding, lastErr)
}

// collect places response vectors by their request index and normalizes them.
func (e *Embedder) collect(resp openai.EmbeddingResponse, want int) ([][]float32, error) {
	if len(resp.Data) != want {
		return nil, fmt.Errorf("expected %d embeddings, got %d", want, len(resp.Data))
	}
	out := make([][]float32, want)
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= want {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vec := make([]float32, len(d.Embedding))
		for i, x := range d.Embedding {
			vec[i] = float32(x)
		}
		if !normalize(vec) {
			return nil, fmt.Errorf("zero-norm embedding at index %d", d.Index)
		}
		dim := int32(len(vec))
		if !e.dimension.CompareAndSwap(0, dim) && e.dimension.Load() != dim {
			return nil, fmt.Errorf("model returned %d dimensions, expected %d", dim, e.dimension.Load())
		}
		out[d.Index] = vec
	}
	for i, vec := range out {
		if vec == nil {
			return nil, fmt.Errorf("no embedding returned for index %d", i)
		}
	}
	return out, nil
}

// retryDelay is an exponential backoff capped at 5s.
func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := 200 * time.Millisecond << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

// normalize scales v to unit length in place. Returns false on zero norm.
func normalize(v []float32) bool {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return false
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
	return true
}
