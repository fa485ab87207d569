package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/hireflow/assessment-recommender/internal/commands"
	"github.com/hireflow/assessment-recommender/internal/recommend"
	"github.com/hireflow/assessment-recommender/internal/types"
)

type CLI struct {
	commands.CommonConfig
	commands.EmbeddingConfig

	Query    string   `help:"Hiring query or job description to search for" required:""`
	K        int      `help:"Number of recommendations to return" default:"5"`
	TestType []string `help:"Test type codes to boost (A,B,C,D,E,K,P,S)"`
	JSON     bool     `help:"Print results as JSON" default:"false"`
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
	recommendations, err := recommender.Recommend(ctx, types.RecommendRequest{
		Query:    c.Query,
		K:        c.K,
		TestType: c.TestType,
	})
	if err != nil {
		return err
	}

	if c.JSON {
		return json.NewEncoder(os.Stdout).Encode(types.RecommendResponse{
			RecommendedAssessments: recommendations,
		})
	}

	if len(recommendations) == 0 {
		fmt.Println("No matching assessments found")
		return nil
	}

	fmt.Printf("Found %d recommended assessments:\n\n", len(recommendations))
	for i, rec := range recommendations {
		fmt.Printf("%d. %s\n", i+1, rec.Name)
		fmt.Printf("   URL: %s\n", rec.URL)
		if rec.Description != "" {
			fmt.Printf("   Description: %s\n", rec.Description)
		}
		if rec.Duration > 0 {
			fmt.Printf("   Duration: %d minutes\n", rec.Duration)
		}
		fmt.Printf("   Remote: %s  Adaptive: %s\n", rec.RemoteSupport, rec.AdaptiveSupport)
		if len(rec.TestType) > 0 {
			fmt.Printf("   Test Types: %s\n", strings.Join(rec.TestType, ", "))
		}
		fmt.Println()
	}

	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("assessment-search"),
		kong.Description("Query the assessment catalog from the command line"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
