package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"slidesearch/internal/config"
	"slidesearch/internal/corpus"
	"slidesearch/internal/corpus/jsonfile"
	"slidesearch/internal/corpus/miniostore"
	"slidesearch/internal/domain"
	"slidesearch/internal/embedding/hashing"
	"slidesearch/internal/embedding/openai"
	"slidesearch/internal/resolver"
	"slidesearch/internal/search"
	"slidesearch/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath string
		query   string
		topK    int
		verbose bool
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/slidesearch/config.yaml if not provided)")
	flag.StringVar(&query, "query", "", "Run a single query and print ranked matches instead of starting the TUI")
	flag.IntVar(&topK, "k", 0, "Number of results per query (default from config)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if topK < 1 {
		topK = cfg.Search.TopK
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Assemble components
	var src domain.Source
	switch cfg.Corpus.Type {
	case "jsonfile", "":
		if cfg.Corpus.JSONFile == nil {
			log.Fatalf("jsonfile corpus config missing")
		}
		src = jsonfile.NewSource(cfg.Corpus.JSONFile.Path)
	case "minio":
		mcfg := cfg.Corpus.Minio
		if mcfg == nil {
			log.Fatalf("minio corpus config missing")
		}
		client, err := minio.New(mcfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv(mcfg.AccessKeyEnv), os.Getenv(mcfg.SecretKeyEnv), ""),
			Secure: mcfg.UseSSL,
		})
		if err != nil {
			log.Fatalf("minio client init failed: %v", err)
		}
		src = miniostore.NewSource(client, mcfg.Bucket, mcfg.Object)
	default:
		log.Fatalf("unknown corpus source: %s", cfg.Corpus.Type)
	}

	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "hashing", "":
		dim := 0
		if cfg.Embedder.Hashing != nil {
			dim = cfg.Embedder.Hashing.Dimension
		}
		emb = hashing.New(dim)
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.New(openai.Config{
			BaseURL:     cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv:   cfg.Embedder.OpenAI.APIKeyEnv,
			Model:       cfg.Embedder.OpenAI.Model,
			Timeout:     time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
			BatchSize:   cfg.Embedder.OpenAI.BatchSize,
			MaxRetries:  cfg.Embedder.OpenAI.MaxRetries,
			MaxParallel: cfg.Embedder.OpenAI.MaxParallel,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	ctx := context.Background()
	c, err := corpus.Load(ctx, src)
	if err != nil {
		log.Fatalf("corpus load failed: %v", err)
	}

	engine := search.NewEngine(c, emb, logger)
	if err := engine.Rebuild(ctx); err != nil {
		log.Fatalf("index build failed: %v", err)
	}
	res := resolver.NewPDFDir(cfg.Resolver.PDFDir)

	if query != "" {
		results, err := engine.Query(ctx, query, topK)
		if err != nil {
			log.Fatalf("query failed: %v", err)
		}
		for _, r := range results {
			handle, err := res.Resolve(r.Record)
			if err != nil {
				log.Fatalf("resolve failed: %v", err)
			}
			fmt.Printf("%d. %s — slide %d  score=%.3f  (%s page %d)\n",
				r.Rank, r.Record.Deck, r.Record.Slide+1, r.Score, handle.Path, handle.Page)
		}
		return
	}

	m := tui.New(engine, res, topK)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
