package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/hireflow/assessment-recommender/internal/recommend"
	"github.com/hireflow/assessment-recommender/internal/types"
)

// Recommender is the subset of the ranking core the HTTP boundary calls.
type Recommender interface {
	Recommend(ctx context.Context, req types.RecommendRequest) ([]types.RecommendedAssessment, error)
}

// errorResponse is the wire shape of every failure
type errorResponse struct {
	Error string `json:"error"`
}

// Server is the thin HTTP adapter over the recommender. It translates a
// JSON request body into a RecommendRequest, invokes the core, and maps
// the error taxonomy onto status codes.
type Server struct {
	recommender Recommender
	logger      *log.Logger
}

// New creates a Server around a recommender.
func New(recommender Recommender, logger *log.Logger) *Server {
	return &Server{
		recommender: recommender,
		logger:      logger,
	}
}

// Handler builds the chi router for the service.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Post("/recommend", s.handleRecommend)
	r.Get("/health", s.handleHealth)

	return r
}

// ListenAndServe serves the API on addr until the context is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	recommendations, err := s.recommender.Recommend(r.Context(), req)
	if err != nil {
		var validationErr *recommend.ValidationError
		if errors.As(err, &validationErr) {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Msg})
			return
		}
		s.logger.Error("Recommendation failed", "query", req.Query, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	// recommended_assessments must always serialize as an array, even
	// when retrieval found nothing
	if recommendations == nil {
		recommendations = []types.RecommendedAssessment{}
	}
	s.writeJSON(w, http.StatusOK, types.RecommendResponse{RecommendedAssessments: recommendations})
}

// handleHealth reports a constant healthy status. It is a process-is-running
// signal only, with no dependency probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("Handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()))
	})
}
