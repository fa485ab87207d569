package ingest

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/hireflow/assessment-recommender/internal/catalog"
	"github.com/hireflow/assessment-recommender/internal/embeddings"
	"github.com/hireflow/assessment-recommender/internal/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEmbeddingProvider returns a fixed vector for every text
type mockEmbeddingProvider struct{}

func (m *mockEmbeddingProvider) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *mockEmbeddingProvider) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i], _ = m.GenerateEmbedding(ctx, texts[i])
	}
	return out, nil
}

func (m *mockEmbeddingProvider) GetEmbeddingModelName() string { return "mock-model" }

// mockVectorIndex captures upserted entries
type mockVectorIndex struct {
	entries []index.Entry
}

func (m *mockVectorIndex) Query(ctx context.Context, vector []float32, topK int) ([]index.Match, error) {
	return nil, nil
}

func (m *mockVectorIndex) Upsert(ctx context.Context, entries []index.Entry) error {
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *mockVectorIndex) Count() int   { return len(m.entries) }
func (m *mockVectorIndex) Close() error { return nil }

// failingTagger always errors, forcing the static fallbacks
type failingTagger struct{}

func (failingTagger) TagTestTypes(ctx context.Context, title, description string) ([]string, error) {
	return nil, errors.New("tagging service unavailable")
}

func (failingTagger) TagJobRoles(ctx context.Context, title, description string) ([]string, error) {
	return nil, errors.New("tagging service unavailable")
}

func writeRecordsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRecords(t *testing.T) {
	path := writeRecordsFile(t, `{"query": "java developer", "id": "rec-1", "url": "https://example.com/java", "name": "Java Test", "duration": 40, "test_type": ["K"]}

{"query": "sales manager", "url": "https://example.com/sales", "name": "Sales Test"}
`)

	records, err := LoadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "rec-1", records[0].ID)
	assert.Equal(t, "java developer", records[0].Query)
	assert.Equal(t, 40, records[0].Duration)

	// A record without an ID gets a stable one derived from the URL
	assert.Equal(t, embeddings.Hash("https://example.com/sales"), records[1].ID)
}

func TestLoadRecordsMissingQuery(t *testing.T) {
	path := writeRecordsFile(t, `{"url": "https://example.com/x", "name": "X"}`)

	_, err := LoadRecords(path)
	assert.ErrorContains(t, err, "no query text")
}

func TestLoadRecordsMissingURL(t *testing.T) {
	path := writeRecordsFile(t, `{"query": "clerk", "name": "X"}`)

	_, err := LoadRecords(path)
	assert.ErrorContains(t, err, "no url")
}

func TestLoadRecordsMalformedLine(t *testing.T) {
	path := writeRecordsFile(t, `{"query": "clerk"`)

	_, err := LoadRecords(path)
	assert.ErrorContains(t, err, "line 1")
}

func setupIngestor(t *testing.T, tagger Tagger) (*Ingestor, *mockVectorIndex, *catalog.Store) {
	t.Helper()
	logger := log.New(io.Discard)
	store, err := catalog.NewStore(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	idx := &mockVectorIndex{}
	return NewIngestor(&mockEmbeddingProvider{}, idx, store, tagger, logger), idx, store
}

func TestIngestorRun(t *testing.T) {
	ingestor, idx, store := setupIngestor(t, StaticTagger{})
	ctx := context.Background()

	path := writeRecordsFile(t, `{"query": "java developer", "id": "rec-1", "url": "https://example.com/java", "name": "Java Test", "test_type": ["K"], "job_roles": ["Backend Developer"]}
{"query": "sales manager", "id": "rec-2", "url": "https://example.com/sales", "name": "Sales Test"}
`)
	records, err := LoadRecords(path)
	require.NoError(t, err)

	require.NoError(t, ingestor.Run(ctx, records, Config{Concurrency: 2}))

	// Both records reached the vector index, keyed by query phrasing
	require.Len(t, idx.entries, 2)
	byID := map[string]index.Entry{}
	for _, e := range idx.entries {
		byID[e.ID] = e
	}
	assert.Equal(t, "java developer", byID["rec-1"].QueryText)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, byID["rec-1"].Vector)

	// Existing tags are preserved; missing ones fall back to the tagger
	assert.Equal(t, []string{"K"}, byID["rec-1"].Record.TestType)
	assert.Equal(t, []string{UnknownTestType}, byID["rec-2"].Record.TestType)
	assert.Equal(t, []string{GeneralRoles}, byID["rec-2"].Record.JobRoles)

	// And the catalog store holds the same records
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, query, err := store.Get(ctx, "rec-2")
	require.NoError(t, err)
	assert.Equal(t, "Sales Test", got.Name)
	assert.Equal(t, "sales manager", query)
}

func TestIngestorTaggingFailureDegrades(t *testing.T) {
	// A tagging failure must not abort the run; the record degrades to
	// the static fallbacks
	ingestor, idx, _ := setupIngestor(t, failingTagger{})

	path := writeRecordsFile(t, `{"query": "clerk", "id": "rec-1", "url": "https://example.com/clerk", "name": "Clerk Test"}`)
	records, err := LoadRecords(path)
	require.NoError(t, err)

	require.NoError(t, ingestor.Run(context.Background(), records, Config{}))

	require.Len(t, idx.entries, 1)
	assert.Equal(t, []string{UnknownTestType}, idx.entries[0].Record.TestType)
	assert.Equal(t, []string{GeneralRoles}, idx.entries[0].Record.JobRoles)
}
