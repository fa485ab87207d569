package index

import (
	"context"
	"fmt"

	"github.com/hireflow/assessment-recommender/internal/types"
)

// Match is a single nearest-neighbour result: the catalog record plus the
// raw cosine similarity score computed by the index.
type Match struct {
	Score  float32
	Record types.Assessment
}

// Entry is a record to be upserted into the index. The vector is keyed by
// the representative query phrasing (QueryText), not by the assessment's
// own description.
type Entry struct {
	ID        string
	QueryText string
	Vector    []float32
	Record    types.Assessment
}

// VectorIndex stores one vector plus metadata record per catalog item and
// answers nearest-neighbour queries by cosine similarity. A failed call is
// always distinguishable from an empty result set: failures surface as a
// RetrievalError, never as an empty slice.
type VectorIndex interface {
	// Query returns up to topK matches ordered by descending similarity.
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)

	// Upsert inserts or replaces the given entries.
	Upsert(ctx context.Context, entries []Entry) error

	// Count returns the number of indexed records.
	Count() int

	// Close closes the index.
	Close() error
}

// RetrievalError indicates the vector index was unreachable, timed out, or
// returned a malformed response.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("vector index query failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}
