package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// JSONFileCorpusConfig points at the on-disk slide-summaries JSON document.
type JSONFileCorpusConfig struct {
	Path string `yaml:"path"`
}

// MinioCorpusConfig holds connection details for an S3-compatible object
// store carrying the summaries document. Credentials come from the named
// environment variables.
type MinioCorpusConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Bucket       string `yaml:"bucket"`
	Object       string `yaml:"object"`
	AccessKeyEnv string `yaml:"access_key_env"`
	SecretKeyEnv string `yaml:"secret_key_env"`
	UseSSL       bool   `yaml:"use_ssl"`
}

// CorpusConfig selects and configures the slide-summary source.
type CorpusConfig struct {
	Type     string                `yaml:"type"`
	JSONFile *JSONFileCorpusConfig `yaml:"jsonfile,omitempty"`
	Minio    *MinioCorpusConfig    `yaml:"minio,omitempty"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	BatchSize   int    `yaml:"batch_size"`
	MaxRetries  int    `yaml:"max_retries"`
	MaxParallel int    `yaml:"max_parallel"`
}

// HashingEmbedderConfig configures the offline feature-hashing embedder.
type HashingEmbedderConfig struct {
	Dimension int `yaml:"dimension"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type    string                 `yaml:"type"`
	OpenAI  *OpenAIEmbedderConfig  `yaml:"openai,omitempty"`
	Hashing *HashingEmbedderConfig `yaml:"hashing,omitempty"`
}

// SearchConfig configures query defaults.
type SearchConfig struct {
	TopK int `yaml:"top_k"`
}

// ResolverConfig configures artifact resolution for matched slides.
type ResolverConfig struct {
	PDFDir string `yaml:"pdf_dir"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Corpus   CorpusConfig   `yaml:"corpus"`
	Embedder EmbedderConfig `yaml:"embedder"`
	Search   SearchConfig   `yaml:"search"`
	Resolver ResolverConfig `yaml:"resolver"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/slidesearch/config.yaml.
// If neither exists, it writes defaults to ~/.config/slidesearch/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "slidesearch", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Corpus: CorpusConfig{
			Type:     "jsonfile",
			JSONFile: &JSONFileCorpusConfig{Path: filepath.Join("text_output", "slide_summaries.json")},
		},
		Embedder: EmbedderConfig{Type: "hashing"},
		Search:   SearchConfig{TopK: 3},
		Resolver: ResolverConfig{PDFDir: "pdf_output"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Corpus.Type == "" {
		cfg.Corpus.Type = "jsonfile"
	}
	if cfg.Corpus.Type == "jsonfile" && cfg.Corpus.JSONFile == nil {
		cfg.Corpus.JSONFile = &JSONFileCorpusConfig{Path: filepath.Join("text_output", "slide_summaries.json")}
	}
	if cfg.Corpus.Type == "minio" && cfg.Corpus.Minio != nil {
		if cfg.Corpus.Minio.AccessKeyEnv == "" {
			cfg.Corpus.Minio.AccessKeyEnv = "MINIO_ACCESS_KEY"
		}
		if cfg.Corpus.Minio.SecretKeyEnv == "" {
			cfg.Corpus.Minio.SecretKeyEnv = "MINIO_SECRET_KEY"
		}
		if cfg.Corpus.Minio.Object == "" {
			cfg.Corpus.Minio.Object = "slide_summaries.json"
		}
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
		if cfg.Embedder.OpenAI.BatchSize == 0 {
			cfg.Embedder.OpenAI.BatchSize = 32
		}
		if cfg.Embedder.OpenAI.MaxRetries == 0 {
			cfg.Embedder.OpenAI.MaxRetries = 5
		}
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = 3
	}
	if cfg.Resolver.PDFDir == "" {
		cfg.Resolver.PDFDir = "pdf_output"
	}
}
