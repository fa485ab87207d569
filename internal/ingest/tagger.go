package ingest

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// UnknownTestType is the fallback test type when classification fails
	UnknownTestType = "Unknown"
	// GeneralRoles is the fallback job role when prediction fails
	GeneralRoles = "General Roles"
)

// Tagger classifies an assessment's test types and job roles from its
// title and description. Tagging is a best-effort enrichment step of the
// ingestion pipeline; the ranking core never depends on it.
type Tagger interface {
	TagTestTypes(ctx context.Context, title, description string) ([]string, error)
	TagJobRoles(ctx context.Context, title, description string) ([]string, error)
}

// StaticTagger is the no-op fallback: everything is Unknown / General Roles.
type StaticTagger struct{}

func (StaticTagger) TagTestTypes(ctx context.Context, title, description string) ([]string, error) {
	return []string{UnknownTestType}, nil
}

func (StaticTagger) TagJobRoles(ctx context.Context, title, description string) ([]string, error) {
	return []string{GeneralRoles}, nil
}

var testTypeCodePattern = regexp.MustCompile(`[ABCDEKPS]`)

// LLMTaggerConfig holds configuration for the chat-completion tagger.
// Any OpenAI-compatible endpoint works; Groq is the default.
type LLMTaggerConfig struct {
	APIKey    string
	Endpoint  string
	ModelName string
	Timeout   time.Duration
	Logger    *log.Logger
}

func NewLLMTaggerConfig() LLMTaggerConfig {
	return LLMTaggerConfig{
		Endpoint:  "https://api.groq.com/openai/v1",
		ModelName: "llama-3.3-70b-versatile",
		Timeout:   30 * time.Second,
	}
}

func (c LLMTaggerConfig) WithAPIKey(apiKey string) LLMTaggerConfig {
	c.APIKey = apiKey
	return c
}
func (c LLMTaggerConfig) WithEndpoint(endpoint string) LLMTaggerConfig {
	c.Endpoint = endpoint
	return c
}
func (c LLMTaggerConfig) WithModelName(modelName string) LLMTaggerConfig {
	c.ModelName = modelName
	return c
}
func (c LLMTaggerConfig) WithLogger(logger *log.Logger) LLMTaggerConfig {
	c.Logger = logger
	return c
}

func (c LLMTaggerConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api key is required")
	}
	if c.ModelName == "" {
		return fmt.Errorf("model name is required")
	}
	if c.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	return nil
}

// LLMTagger classifies test types and predicts job roles with a chat model.
type LLMTagger struct {
	config LLMTaggerConfig
	client *openai.Client
	logger *log.Logger
}

func NewLLMTagger(config LLMTaggerConfig) (*LLMTagger, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg := openai.DefaultConfig(config.APIKey)
	cfg.BaseURL = config.Endpoint
	return &LLMTagger{
		config: config,
		client: openai.NewClientWithConfig(cfg),
		logger: config.Logger,
	}, nil
}

func (t *LLMTagger) TagTestTypes(ctx context.Context, title, description string) ([]string, error) {
	prompt := fmt.Sprintf("Title: %s\nDescription: %s\nPredict test type letters.", title, description)
	answer, err := t.chat(ctx, "You are an SHL assessment classifier.", prompt)
	if err != nil {
		return nil, err
	}

	// Unique codes in order of first appearance, so tagging is
	// deterministic for a fixed model answer
	seen := make(map[string]bool)
	var codes []string
	for _, code := range testTypeCodePattern.FindAllString(strings.ToUpper(answer), -1) {
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		codes = []string{UnknownTestType}
	}
	return codes, nil
}

var roleSeparatorPattern = regexp.MustCompile(`[,/\n]`)

func (t *LLMTagger) TagJobRoles(ctx context.Context, title, description string) ([]string, error) {
	prompt := fmt.Sprintf("Title: %s\nDescription: %s\nList 2-3 common job roles.", title, description)
	answer, err := t.chat(ctx, "You are an HR domain expert.", prompt)
	if err != nil {
		return nil, err
	}

	var roles []string
	for _, role := range roleSeparatorPattern.Split(answer, -1) {
		if role = strings.TrimSpace(role); role != "" {
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		roles = []string{GeneralRoles}
	}
	return roles, nil
}

func (t *LLMTagger) chat(ctx context.Context, systemRole, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.config.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       t.config.ModelName,
		Temperature: 0.2,
		MaxTokens:   128,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemRole},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from chat completion")
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	t.logger.Debug("Tagged via chat completion", "model", t.config.ModelName, "duration", time.Since(start))
	return answer, nil
}
