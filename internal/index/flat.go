// Package index provides an exact flat index over L2-normalized vectors.
package index

import (
	"errors"
	"sort"

	"slidesearch/internal/domain"
)

// ErrInvalidK is returned when k is not positive.
var ErrInvalidK = errors.New("k must be positive")

// Candidate is a raw search hit: the vector's corpus position and its
// inner-product score against the query.
type Candidate struct {
	Position int
	Score    float32
}

// Flat is a brute-force inner-product index. Vectors are expected to be
// L2-normalized, making the score equivalent to cosine similarity.
// A built index is immutable and safe for concurrent readers.
type Flat struct {
	dimension int
	vectors   [][]float32
}

// Build constructs an index over all vectors in corpus order.
// The vectors are copied, so callers may reuse their slices.
func Build(vectors [][]float32) (*Flat, error) {
	if len(vectors) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, &domain.DimensionMismatchError{Expected: 1, Actual: 0, Position: 0}
	}
	store := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, &domain.DimensionMismatchError{Expected: dim, Actual: len(v), Position: i}
		}
		store[i] = append([]float32(nil), v...)
	}
	return &Flat{dimension: dim, vectors: store}, nil
}

// Len returns the number of indexed vectors.
func (f *Flat) Len() int { return len(f.vectors) }

// Dimension returns the index's vector dimensionality.
func (f *Flat) Dimension() int { return f.dimension }

// Search returns the k nearest vectors by descending inner product.
// Ties break toward the lower position so results are deterministic.
// k is clamped to the index size.
func (f *Flat) Search(query []float32, k int) ([]Candidate, error) {
	if len(f.vectors) == 0 {
		return nil, domain.ErrEmptyIndex
	}
	if k < 1 {
		return nil, ErrInvalidK
	}
	if len(query) != f.dimension {
		return nil, &domain.DimensionMismatchError{Expected: f.dimension, Actual: len(query), Position: -1}
	}
	order := make([]int, len(f.vectors))
	scores := make([]float32, len(f.vectors))
	for i, v := range f.vectors {
		order[i] = i
		scores[i] = dot(v, query)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		return a < b
	})
	if k > len(order) {
		k = len(order)
	}
	out := make([]Candidate, k)
	for i := 0; i < k; i++ {
		out[i] = Candidate{Position: order[i], Score: scores[order[i]]}
	}
	return out, nil
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
