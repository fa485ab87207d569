package index

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hireflow/assessment-recommender/internal/types"
	"github.com/philippgille/chromem-go"
)

// ChromemIndex implements VectorIndex using the chromem-go vector database
type ChromemIndex struct {
	db         *chromem.DB
	collection *chromem.Collection
	logger     *log.Logger
}

// NewChromemIndex opens (creating if necessary) a persistent chromem
// collection under dataDir. Queries use precomputed vectors only, so no
// embedding function is attached to the collection.
func NewChromemIndex(dataDir string, logger *log.Logger) (*ChromemIndex, error) {
	dbPath := filepath.Join(dataDir, "chromem-go")

	db, err := chromem.NewPersistentDB(dbPath, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create chromem database: %w", err)
	}

	collection, err := db.GetOrCreateCollection("assessments", nil, nil)
	if err != nil {
		db.Reset() // Clean up
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	idx := &ChromemIndex{
		db:         db,
		collection: collection,
		logger:     logger,
	}

	logger.Info("Opened chromem vector index",
		"path", dbPath,
		"document_count", collection.Count())

	return idx, nil
}

// Upsert inserts or replaces the given entries in the collection.
func (i *ChromemIndex) Upsert(ctx context.Context, entries []Entry) error {
	for _, entry := range entries {
		doc, err := chromem.NewDocument(ctx, entry.ID, RecordToMap(entry.Record), entry.Vector, entry.QueryText, nil)
		if err != nil {
			return fmt.Errorf("failed to create document %s: %w", entry.ID, err)
		}
		if err := i.collection.AddDocument(ctx, doc); err != nil {
			return fmt.Errorf("failed to add document %s to collection: %w", entry.ID, err)
		}
		i.logger.Debug("Upserted assessment", "id", entry.ID, "name", entry.Record.Name)
	}
	return nil
}

// Query returns up to topK matches ordered by descending similarity. An
// empty collection yields an empty result, not an error; any other failure
// wraps into a RetrievalError.
func (i *ChromemIndex) Query(ctx context.Context, vector []float32, topK int) ([]Match, error) {
	count := i.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	results, err := i.collection.QueryEmbedding(ctx, vector, topK, nil, nil)
	if err != nil {
		return nil, &RetrievalError{Err: err}
	}

	matches := make([]Match, 0, len(results))
	for _, result := range results {
		record, err := RecordFromMap(result.ID, result.Metadata)
		if err != nil {
			return nil, &RetrievalError{Err: fmt.Errorf("malformed metadata for %s: %w", result.ID, err)}
		}
		matches = append(matches, Match{
			Score:  result.Similarity,
			Record: record,
		})
	}

	// chromem returns results ordered already, but the ordering contract
	// belongs to this layer
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})

	return matches, nil
}

// Count returns the number of indexed records.
func (i *ChromemIndex) Count() int {
	return i.collection.Count()
}

// Close closes the index. chromem has no explicit close; data is persisted
// on every write.
func (i *ChromemIndex) Close() error {
	return nil
}

// RecordToMap flattens an assessment record into the string metadata map
// chromem stores alongside each vector. List fields are comma-joined;
// their values are scraped from comma-separated source text, so commas
// never appear inside an element.
func RecordToMap(a types.Assessment) map[string]string {
	return map[string]string{
		"url":              a.URL,
		"name":             a.Name,
		"description":      a.Description,
		"duration":         strconv.Itoa(a.Duration),
		"adaptive_support": a.AdaptiveSupport,
		"remote_support":   a.RemoteSupport,
		"test_type":        strings.Join(a.TestType, ","),
		"job_roles":        strings.Join(a.JobRoles, ","),
		"languages":        strings.Join(a.Languages, ","),
	}
}

// RecordFromMap rebuilds an assessment record from chromem metadata.
func RecordFromMap(id string, metadata map[string]string) (types.Assessment, error) {
	a := types.Assessment{
		ID:              id,
		URL:             metadata["url"],
		Name:            metadata["name"],
		Description:     metadata["description"],
		AdaptiveSupport: metadata["adaptive_support"],
		RemoteSupport:   metadata["remote_support"],
		TestType:        splitList(metadata["test_type"]),
		JobRoles:        splitList(metadata["job_roles"]),
		Languages:       splitList(metadata["languages"]),
	}
	if raw, ok := metadata["duration"]; ok && raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil {
			return types.Assessment{}, fmt.Errorf("failed to parse duration: %w", err)
		}
		a.Duration = duration
	}
	return a, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
