package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/hireflow/assessment-recommender/internal/index"
	"github.com/hireflow/assessment-recommender/internal/recommend"
	"github.com/hireflow/assessment-recommender/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRecommender is a mock implementation of Recommender
type mockRecommender struct {
	results []types.RecommendedAssessment
	err     error
	lastReq types.RecommendRequest
}

func (m *mockRecommender) Recommend(ctx context.Context, req types.RecommendRequest) ([]types.RecommendedAssessment, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRecommendEndpoint(t *testing.T) {
	recommender := &mockRecommender{
		results: []types.RecommendedAssessment{
			{
				URL:             "https://example.com/rec-1",
				Name:            "Java Test",
				AdaptiveSupport: "No",
				Description:     "Core Java assessment",
				Duration:        40,
				RemoteSupport:   "Yes",
				TestType:        []string{"Knowledge & Skills"},
			},
		},
	}
	handler := New(recommender, log.New(io.Discard)).Handler()

	rec := doRequest(t, handler, http.MethodPost, "/recommend",
		`{"query": "java developer", "k": 3, "test_type": ["K"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp types.RecommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.RecommendedAssessments, 1)
	assert.Equal(t, "Java Test", resp.RecommendedAssessments[0].Name)

	// The request decoded into the core's shape
	assert.Equal(t, "java developer", recommender.lastReq.Query)
	assert.Equal(t, 3, recommender.lastReq.K)
	assert.Equal(t, []string{"K"}, recommender.lastReq.TestType)
}

func TestRecommendEndpointEmptyQuery(t *testing.T) {
	recommender := &mockRecommender{err: &recommend.ValidationError{Msg: "Query is required"}}
	handler := New(recommender, log.New(io.Discard)).Handler()

	rec := doRequest(t, handler, http.MethodPost, "/recommend", `{"query": ""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Query is required"}`, rec.Body.String())
}

func TestRecommendEndpointMalformedBody(t *testing.T) {
	handler := New(&mockRecommender{}, log.New(io.Discard)).Handler()

	rec := doRequest(t, handler, http.MethodPost, "/recommend", `{"query": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendEndpointRetrievalFailure(t *testing.T) {
	// A failed index call surfaces as a 500, never as an empty success list
	recommender := &mockRecommender{err: &index.RetrievalError{Err: context.DeadlineExceeded}}
	handler := New(recommender, log.New(io.Discard)).Handler()

	rec := doRequest(t, handler, http.MethodPost, "/recommend", `{"query": "clerk"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "vector index query failed")
}

func TestRecommendEndpointEmptyResultIsAnArray(t *testing.T) {
	handler := New(&mockRecommender{}, log.New(io.Discard)).Handler()

	rec := doRequest(t, handler, http.MethodPost, "/recommend", `{"query": "obscure niche role"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"recommended_assessments": []}`, rec.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	// Health must answer even when the recommender would fail: it is a
	// process-is-running signal, not a dependency probe
	recommender := &mockRecommender{err: &index.RetrievalError{Err: context.DeadlineExceeded}}
	handler := New(recommender, log.New(io.Discard)).Handler()

	rec := doRequest(t, handler, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, rec.Body.String())
}
