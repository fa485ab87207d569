package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/hireflow/assessment-recommender/internal/commands"
	"github.com/hireflow/assessment-recommender/internal/mcp"
	"github.com/hireflow/assessment-recommender/internal/recommend"
)

type CLI struct {
	commands.CommonConfig
	commands.EmbeddingConfig
}

func (c *CLI) Run() error {
	ctx := context.Background()

	logger, err := commands.SetupLogger(c.LogLevel)
	if err != nil {
		return err
	}

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

	recommender := recommend.NewRecommender(provider, idx, logger)
	return mcp.New(recommender, logger).Run()
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("assessment-mcp-server"),
		kong.Description("Expose assessment recommendations as an MCP tool"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
