package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "jsonfile", cfg.Corpus.Type)
	assert.Equal(t, "hashing", cfg.Embedder.Type)
	assert.Equal(t, 3, cfg.Search.TopK)
	assert.Equal(t, "pdf_output", cfg.Resolver.PDFDir)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
embedder:
  type: openai
  openai:
    model: ""
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.OpenAI.APIKeyEnv)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.OpenAI.Model)
	assert.Equal(t, 30, cfg.Embedder.OpenAI.TimeoutSecs)
	assert.Equal(t, 32, cfg.Embedder.OpenAI.BatchSize)
	assert.Equal(t, 5, cfg.Embedder.OpenAI.MaxRetries)
	assert.Equal(t, "jsonfile", cfg.Corpus.Type)
	assert.Equal(t, 3, cfg.Search.TopK)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &AppConfig{
		Corpus: CorpusConfig{
			Type: "minio",
			Minio: &MinioCorpusConfig{
				Endpoint: "localhost:9000",
				Bucket:   "slides",
				Object:   "slide_summaries.json",
			},
		},
		Embedder: EmbedderConfig{
			Type:    "hashing",
			Hashing: &HashingEmbedderConfig{Dimension: 512},
		},
		Search:   SearchConfig{TopK: 5},
		Resolver: ResolverConfig{PDFDir: "out"},
	}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "minio", loaded.Corpus.Type)
	assert.Equal(t, "slides", loaded.Corpus.Minio.Bucket)
	assert.Equal(t, "MINIO_ACCESS_KEY", loaded.Corpus.Minio.AccessKeyEnv)
	assert.Equal(t, 512, loaded.Embedder.Hashing.Dimension)
	assert.Equal(t, 5, loaded.Search.TopK)
	assert.Equal(t, "out", loaded.Resolver.PDFDir)
}
