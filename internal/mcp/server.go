package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hireflow/assessment-recommender/internal/types"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Recommender is the subset of the ranking core the MCP boundary calls.
type Recommender interface {
	Recommend(ctx context.Context, req types.RecommendRequest) ([]types.RecommendedAssessment, error)
}

type Server struct {
	recommender Recommender
	logger      *log.Logger
}

func New(recommender Recommender, logger *log.Logger) *Server {
	return &Server{
		recommender: recommender,
		logger:      logger,
	}
}

func (s *Server) Run() error {
	// Create MCP server
	mcpServer := server.NewMCPServer(
		"Assessment Recommender",
		"1.0.0",
	)

	mcpServer.AddTool(mcp.NewTool("recommend_assessments",
		mcp.WithDescription("Recommend assessment products for a hiring query or job description"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text job description or hiring query"),
		),
		mcp.WithString("k",
			mcp.Description("Number of recommendations to return (default: 5)"),
		),
		mcp.WithString("test_type",
			mcp.Description("Comma-separated test type codes to boost (A,B,C,D,E,K,P,S)"),
		),
	), s.recommendHandler)

	// Start the stdio server
	if err := server.ServeStdio(mcpServer); err != nil {
		return err
	}

	return nil
}

func (s *Server) recommendHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, ok := request.Params.Arguments["query"].(string)
	if !ok {
		return nil, errors.New("query must be a string")
	}

	k := 0
	if kVal, ok := request.Params.Arguments["k"]; ok {
		switch v := kVal.(type) {
		case int:
			k = v
		case float64:
			k = int(v)
		case string:
			var err error
			k, err = strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("k must be a valid integer: %w", err)
			}
		default:
			return nil, errors.New("k must be a number or string")
		}
	}

	var testTypes []string
	if raw, ok := request.Params.Arguments["test_type"].(string); ok {
		for _, code := range strings.Split(raw, ",") {
			if code = strings.TrimSpace(code); code != "" {
				testTypes = append(testTypes, strings.ToUpper(code))
			}
		}
	}

	recommendations, err := s.recommender.Recommend(ctx, types.RecommendRequest{
		Query:    query,
		K:        k,
		TestType: testTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to recommend assessments: %w", err)
	}

	if len(recommendations) == 0 {
		return mcp.NewToolResultText("No matching assessments found"), nil
	}

	// Format recommendations as text
	var result string
	for i, rec := range recommendations {
		result += fmt.Sprintf("%d. %s\n", i+1, rec.Name)
		result += fmt.Sprintf("  URL: %s\n", rec.URL)
		if rec.Description != "" {
			result += fmt.Sprintf("  Description: %s\n", rec.Description)
		}
		if rec.Duration > 0 {
			result += fmt.Sprintf("  Duration: %d minutes\n", rec.Duration)
		}
		result += fmt.Sprintf("  Remote Support: %s\n", rec.RemoteSupport)
		result += fmt.Sprintf("  Adaptive Support: %s\n", rec.AdaptiveSupport)
		if len(rec.TestType) > 0 {
			result += fmt.Sprintf("  Test Types: %s\n", strings.Join(rec.TestType, ", "))
		}
		if len(rec.JobRoles) > 0 {
			result += fmt.Sprintf("  Job Roles: %s\n", strings.Join(rec.JobRoles, ", "))
		}
		result += "\n"
	}

	return mcp.NewToolResultText(result), nil
}
