package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hireflow/assessment-recommender/internal/index"
)

// SetupLogger creates the process logger with the given level
func SetupLogger(level string) (*log.Logger, error) {
	logger := log.New(os.Stderr)
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(parsed)
	return logger, nil
}

// SetupVectorIndex opens the chromem vector index under dataDir
func SetupVectorIndex(dataDir string, logger *log.Logger) (index.VectorIndex, error) {
	idx, err := index.NewChromemIndex(dataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create vector index: %w", err)
	}
	return idx, nil
}
