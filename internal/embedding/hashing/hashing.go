// Package hashing provides an offline, deterministic feature-hashing
// embedder. Tokens are hashed into signed buckets of a fixed-dimension
// vector, which is then L2-normalized. Useful for keyless operation and
// tests; identical text always yields a bit-identical vector.
package hashing

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"slidesearch/internal/domain"
)

// DefaultDimension is used when no dimension is configured.
const DefaultDimension = 256

var _ domain.Embedder = (*Embedder)(nil)

// Embedder hashes word tokens into a fixed-dimension vector.
type Embedder struct {
	dim          int
	tokenPattern *regexp.Regexp
}

// New creates a hashing embedder with the given dimension.
func New(dimension int) *Embedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Embedder{
		dim:          dimension,
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`),
	}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "hashing" }

// Dimension returns the dimensionality of the produced embedding vectors.
func (e *Embedder) Dimension() int { return e.dim }

// EmbedOne computes the L2-normalized hash embedding for the given text.
func (e *Embedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", domain.ErrEmbedding)
	}
	tokens := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no tokens in %q", domain.ErrEmbedding, text)
	}
	vec := make([]float32, e.dim)
	for _, tok := range tokens {
		h := fnv.New32a()
		h.Write([]byte(tok))
		sum := h.Sum32()
		idx := int(sum % uint32(e.dim))
		// second hash bit decides the sign to keep collisions unbiased
		if sum&0x80000000 == 0 {
			vec[idx]++
		} else {
			vec[idx]--
		}
	}
	if !normalize(vec) {
		return nil, fmt.Errorf("%w: tokens of %q cancelled out", domain.ErrEmbedding, text)
	}
	return vec, nil
}

// EmbedBatch embeds each text in order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrEmbedding, err)
		}
		vec, err := e.EmbedOne(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("text %d: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
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
