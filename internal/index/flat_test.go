package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidesearch/internal/domain"
)

func TestBuild(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		_, err := Build(nil)
		require.ErrorIs(t, err, domain.ErrEmptyCorpus)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		_, err := Build([][]float32{{1, 0}, {0, 1, 0}})
		var mismatch *domain.DimensionMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 2, mismatch.Expected)
		assert.Equal(t, 3, mismatch.Actual)
		assert.Equal(t, 1, mismatch.Position)
	})

	t.Run("CopiesVectors", func(t *testing.T) {
		src := [][]float32{{1, 0}, {0, 1}}
		f, err := Build(src)
		require.NoError(t, err)
		src[0][0] = 99
		hits, err := f.Search([]float32{1, 0}, 1)
		require.NoError(t, err)
		assert.Equal(t, float32(1), hits[0].Score)
	})

	t.Run("Dimension", func(t *testing.T) {
		f, err := Build([][]float32{{1, 0, 0}})
		require.NoError(t, err)
		assert.Equal(t, 3, f.Dimension())
		assert.Equal(t, 1, f.Len())
	})
}

func TestSearch(t *testing.T) {
	f, err := Build([][]float32{
		{1, 0},     // position 0
		{0, 1},     // position 1
		{0.8, 0.6}, // position 2
		{0.6, 0.8}, // position 3
	})
	require.NoError(t, err)

	t.Run("DescendingScores", func(t *testing.T) {
		hits, err := f.Search([]float32{1, 0}, 4)
		require.NoError(t, err)
		require.Len(t, hits, 4)
		assert.Equal(t, []int{0, 2, 3, 1}, positions(hits))
		for i := 1; i < len(hits); i++ {
			assert.LessOrEqual(t, hits[i].Score, hits[i-1].Score)
		}
	})

	t.Run("ClampsK", func(t *testing.T) {
		hits, err := f.Search([]float32{1, 0}, 100)
		require.NoError(t, err)
		assert.Len(t, hits, 4)
	})

	t.Run("InvalidK", func(t *testing.T) {
		_, err := f.Search([]float32{1, 0}, 0)
		require.ErrorIs(t, err, ErrInvalidK)
	})

	t.Run("QueryDimensionMismatch", func(t *testing.T) {
		_, err := f.Search([]float32{1, 0, 0}, 1)
		var mismatch *domain.DimensionMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, -1, mismatch.Position)
	})

	t.Run("TieBreaksByLowerPosition", func(t *testing.T) {
		tied, err := Build([][]float32{
			{0, 1},
			{1, 0},
			{1, 0},
		})
		require.NoError(t, err)
		hits, err := tied.Search([]float32{1, 0}, 3)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 0}, positions(hits))
	})
}

func positions(hits []Candidate) []int {
	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.Position
	}
	return out
}
