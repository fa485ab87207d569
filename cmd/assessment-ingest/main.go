package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/hireflow/assessment-recommender/internal/catalog"
	"github.com/hireflow/assessment-recommender/internal/commands"
	"github.com/hireflow/assessment-recommender/internal/ingest"
)

type CLI struct {
	commands.CommonConfig
	commands.EmbeddingConfig

	Records     string `help:"Path to JSONL records file" required:"" type:"existingfile"`
	Concurrency int    `help:"Number of records to process in parallel" default:"4"`
	NoProgress  bool   `help:"Disable the progress bar" default:"false"`
	Tagger      string `help:"Tagger for records missing test types or job roles" default:"static" enum:"static,llm"`
	LLMAPIKey   string `help:"API key for the LLM tagger (Groq or any OpenAI-compatible endpoint)" env:"GROQ_API_KEY"`
	LLMModel    string `help:"Model for the LLM tagger" default:"llama-3.3-70b-versatile" env:"GROQ_MODEL"`
	LLMEndpoint string `help:"Endpoint for the LLM tagger" default:"https://api.groq.com/openai/v1" env:"GROQ_ENDPOINT"`
}

func (c *CLI) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := commands.SetupLogger(c.LogLevel)
	if err != nil {
		return err
	}

	records, err := ingest.LoadRecords(c.Records)
	if err != nil {
		return err
	}
	logger.Info("Loaded records", "path", c.Records, "count", len(records))

	provider, err := commands.SetupEmbeddingProvider(ctx, c.EmbeddingConfig, logger)
	if err != nil {
		logger.Fatal("Failed to initialize embedding provider", "error", err)
	}
	defer commands.CloseEmbeddingProvider(provider, logger)

	idx, err := commands.SetupVectorIndex(c.DataDir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize vector index", "error", err)
	}
	defer idx.Close()

	store, err := catalog.NewStore(c.DataDir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize catalog store", "error", err)
	}
	defer store.Close()

	var tagger ingest.Tagger
	switch c.Tagger {
	case "llm":
		tagger, err = ingest.NewLLMTagger(ingest.NewLLMTaggerConfig().
			WithAPIKey(c.LLMAPIKey).
			WithModelName(c.LLMModel).
			WithEndpoint(c.LLMEndpoint).
			WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to create LLM tagger: %w", err)
		}
	default:
		tagger = ingest.StaticTagger{}
	}

	ingestor := ingest.NewIngestor(provider, idx, store, tagger, logger)
	return ingestor.Run(ctx, records, ingest.Config{
		Concurrency: c.Concurrency,
		Progress:    !c.NoProgress,
	})
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("assessment-ingest"),
		kong.Description("Ingest assessment records into the catalog and vector index"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
