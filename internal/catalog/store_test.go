package catalog

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/hireflow/assessment-recommender/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), log.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStorePutAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	assessment := types.Assessment{
		ID:              "rec-1",
		URL:             "https://example.com/assessments/java",
		Name:            "Java Developer Test",
		Description:     "Core Java knowledge test",
		Duration:        40,
		AdaptiveSupport: "No",
		RemoteSupport:   "Yes",
		TestType:        []string{"K", "S"},
		JobRoles:        []string{"Backend Developer", "Software Engineer"},
		Languages:       []string{"English"},
	}

	require.NoError(t, store.Put(ctx, assessment, "java developer with spring experience"))

	got, query, err := store.Get(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, assessment, *got)
	assert.Equal(t, "java developer with spring experience", query)
}

func TestStorePutReplaces(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	assessment := types.Assessment{ID: "rec-1", URL: "https://example.com/a", Name: "First"}
	require.NoError(t, store.Put(ctx, assessment, "query one"))

	assessment.Name = "Second"
	require.NoError(t, store.Put(ctx, assessment, "query two"))

	got, query, err := store.Get(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Name)
	assert.Equal(t, "query two", query)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStoreGetMissing(t *testing.T) {
	store := setupTestStore(t)

	_, _, err := store.Get(context.Background(), "nope")
	assert.Error(t, err)
}

func TestStoreList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, types.Assessment{ID: "b", URL: "https://example.com/b", Name: "B"}, "query b"))
	require.NoError(t, store.Put(ctx, types.Assessment{ID: "a", URL: "https://example.com/a", Name: "A"}, "query a"))

	assessments, queries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, assessments, 2)
	require.Len(t, queries, 2)

	// Ordered by ID for reproducible re-indexing
	assert.Equal(t, "a", assessments[0].ID)
	assert.Equal(t, "b", assessments[1].ID)
	assert.Equal(t, "query a", queries[0])
	assert.Equal(t, "query b", queries[1])
}

func TestStoreEmptyListFields(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, types.Assessment{ID: "x", URL: "https://example.com/x", Name: "X"}, "query x"))

	got, _, err := store.Get(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, got.TestType)
	assert.Nil(t, got.JobRoles)
	assert.Nil(t, got.Languages)
}
