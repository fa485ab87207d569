package recommend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hireflow/assessment-recommender/internal/catalog"
	"github.com/hireflow/assessment-recommender/internal/embeddings"
	"github.com/hireflow/assessment-recommender/internal/index"
	"github.com/hireflow/assessment-recommender/internal/types"
	"golang.org/x/exp/slices"
)

const (
	// defaultBoost is the flat additive score adjustment applied when a
	// candidate's test types overlap the requested test types. It is a
	// thumb on the scale: it can reorder close results but never inverts
	// a large similarity gap.
	defaultBoost = 0.15

	// defaultOverfetchFactor controls how many candidates are fetched
	// relative to the requested count before boosting and re-sorting.
	// Over-fetching is a heuristic margin, not a guarantee: a boosted
	// record ranked below position factor*k can still be missed.
	defaultOverfetchFactor = 2

	defaultRetrievalTimeout = 10 * time.Second
)

type recommenderOptions struct {
	boost            float32
	overfetchFactor  int
	retrievalTimeout time.Duration
}

// Option is a function that modifies the recommender configuration
type Option func(*recommenderOptions)

// WithBoost sets the additive score boost for test type overlap
func WithBoost(boost float32) Option {
	return func(opts *recommenderOptions) {
		opts.boost = boost
	}
}

// WithOverfetchFactor sets the candidate over-fetch factor
func WithOverfetchFactor(factor int) Option {
	return func(opts *recommenderOptions) {
		opts.overfetchFactor = factor
	}
}

// WithRetrievalTimeout bounds the vector index call
func WithRetrievalTimeout(timeout time.Duration) Option {
	return func(opts *recommenderOptions) {
		opts.retrievalTimeout = timeout
	}
}

// Recommender ranks catalog assessments against a free-text hiring query.
// It holds only read-only state (the embedding provider and the index
// handle), so independent requests can run concurrently through a single
// instance.
type Recommender struct {
	provider embeddings.EmbeddingProvider
	index    index.VectorIndex
	logger   *log.Logger
	opts     recommenderOptions
}

// NewRecommender creates a Recommender around an embedding provider and a
// vector index.
func NewRecommender(provider embeddings.EmbeddingProvider, idx index.VectorIndex, logger *log.Logger, opts ...Option) *Recommender {
	options := recommenderOptions{
		boost:            defaultBoost,
		overfetchFactor:  defaultOverfetchFactor,
		retrievalTimeout: defaultRetrievalTimeout,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &Recommender{
		provider: provider,
		index:    idx,
		logger:   logger,
		opts:     options,
	}
}

// Recommend runs the full ranking pipeline for one request: validate,
// embed, retrieve with over-fetch, boost, sort, truncate to k, normalize.
// An empty result list means retrieval genuinely found no candidates;
// every failure surfaces as a typed error.
func (r *Recommender) Recommend(ctx context.Context, req types.RecommendRequest) ([]types.RecommendedAssessment, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, &ValidationError{Msg: "Query is required"}
	}

	k := req.K
	if k <= 0 {
		k = types.DefaultK
	}

	r.logger.Info("Performing recommendation", "query", query, "k", k, "test_types", req.TestType)
	startTime := time.Now()

	vector, err := r.provider.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, &EmbeddingError{Err: err}
	}

	queryCtx, cancel := context.WithTimeout(ctx, r.opts.retrievalTimeout)
	defer cancel()

	matches, err := r.index.Query(queryCtx, vector, r.opts.overfetchFactor*k)
	if err != nil {
		var retrievalErr *index.RetrievalError
		if !errors.As(err, &retrievalErr) {
			err = &index.RetrievalError{Err: err}
		}
		return nil, err
	}

	scored := r.score(matches, req.TestType)

	// Adjusted score descending, record ID ascending on ties, so output
	// is reproducible for identical inputs against the same index snapshot
	slices.SortStableFunc(scored, func(a, b types.ScoredAssessment) int {
		switch {
		case a.AdjustedScore > b.AdjustedScore:
			return -1
		case a.AdjustedScore < b.AdjustedScore:
			return 1
		default:
			return strings.Compare(a.ID, b.ID)
		}
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	recommendations := make([]types.RecommendedAssessment, 0, len(scored))
	for _, candidate := range scored {
		recommendations = append(recommendations, catalog.Normalize(candidate.Assessment))
	}

	r.logger.Info("Recommendation completed",
		"query", query,
		"candidates", len(matches),
		"results", len(recommendations),
		"duration", time.Since(startTime))

	return recommendations, nil
}

// score computes the adjusted score for each match. The boost is a flat
// additive constant applied when the candidate's test type codes intersect
// the requested codes; AdjustedScore >= BaseScore always holds.
func (r *Recommender) score(matches []index.Match, requested []string) []types.ScoredAssessment {
	scored := make([]types.ScoredAssessment, 0, len(matches))
	for _, m := range matches {
		adjusted := m.Score
		if overlaps(m.Record.TestType, requested) {
			adjusted += r.opts.boost
		}
		scored = append(scored, types.ScoredAssessment{
			Assessment:    m.Record,
			BaseScore:     m.Score,
			AdjustedScore: adjusted,
		})
	}
	return scored
}

func overlaps(candidate, requested []string) bool {
	for _, want := range requested {
		if slices.Contains(candidate, want) {
			return true
		}
	}
	return false
}
