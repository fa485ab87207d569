package commands

// EmbeddingConfig contains common flag definitions for embedding configuration
type EmbeddingConfig struct {
	// Provider is the embedding provider to use
	Provider string `help:"Embedding provider to use" default:"llamacpp" enum:"llamacpp,openai,gemini,lmstudio,ollama" env:"EMBEDDING_PROVIDER"`
	// LlamaCppModel is the specific llama.cpp embedding model name
	LlamaCppModel string `help:"Specific llama.cpp embedding model name" default:"all-MiniLM-L6-v2" env:"LLAMACPP_EMBEDDING_MODEL"`
	// LlamaCppURL is the llama.cpp server URL
	LlamaCppURL string `help:"llama.cpp server URL" env:"LLAMACPP_URL"`
	// OpenAIAPIKey is the API key for OpenAI
	OpenAIAPIKey string `help:"OpenAI API key" env:"OPENAI_API_KEY"`
	// OpenAIModel is the OpenAI embedding model name
	OpenAIModel string `help:"OpenAI embedding model name" default:"text-embedding-3-small" env:"OPENAI_EMBEDDING_MODEL"`
	// OpenAIEndpoint overrides the OpenAI-compatible endpoint
	OpenAIEndpoint string `help:"OpenAI-compatible endpoint" env:"OPENAI_ENDPOINT"`
	// GeminiAPIKey is the API key for Gemini
	GeminiAPIKey string `help:"Google Gemini API key" env:"GEMINI_API_KEY"`
	// GeminiModel is the Gemini embedding model name
	GeminiModel string `help:"Gemini embedding model name" default:"text-embedding-004" env:"GEMINI_EMBEDDING_MODEL"`
	// LMStudioModel is the LMStudio embedding model name
	LMStudioModel string `help:"LMStudio embedding model name" env:"LMSTUDIO_EMBEDDING_MODEL"`
	// LMStudioEndpoint is the LMStudio OpenAI-compatible endpoint
	LMStudioEndpoint string `help:"LMStudio endpoint" default:"http://localhost:1234/v1" env:"LMSTUDIO_ENDPOINT"`
	// OllamaModel is the Ollama embedding model name
	OllamaModel string `help:"Ollama embedding model name" default:"all-minilm" env:"OLLAMA_EMBEDDING_MODEL"`
	// OllamaEndpoint is the Ollama OpenAI-compatible endpoint
	OllamaEndpoint string `help:"Ollama endpoint" default:"http://localhost:11434/v1" env:"OLLAMA_ENDPOINT"`
}

// CommonConfig contains configuration common to all commands
type CommonConfig struct {
	// DataDir is the path to the data directory
	DataDir string `help:"Path to data directory" default:"./data" env:"DATA_DIR"`
	// LogLevel is the logging level to use
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error" env:"LOG_LEVEL"`
}
