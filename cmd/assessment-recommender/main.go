package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hireflow/assessment-recommender/internal/commands"
	"github.com/hireflow/assessment-recommender/internal/recommend"
	"github.com/hireflow/assessment-recommender/internal/server"
)

type CLI struct {
	commands.CommonConfig
	commands.EmbeddingConfig

	Listen           string        `help:"Listen address" default:":5000" env:"LISTEN_ADDR"`
	RetrievalTimeout time.Duration `help:"Timeout for vector index queries" default:"10s" env:"RETRIEVAL_TIMEOUT"`
	Boost            float32       `help:"Score boost applied on test type overlap" default:"0.15"`
}

func (c *CLI) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := commands.SetupLogger(c.LogLevel)
	if err != nil {
		return err
	}

	// The embedding model client and index handle are process-lifetime
	// state: constructed once here and injected, never rebuilt per request
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

	recommender := recommend.NewRecommender(provider, idx, logger,
		recommend.WithBoost(c.Boost),
		recommend.WithRetrievalTimeout(c.RetrievalTimeout))

	return server.New(recommender, logger).ListenAndServe(ctx, c.Listen)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("assessment-recommender"),
		kong.Description("Serve assessment recommendations over HTTP"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
