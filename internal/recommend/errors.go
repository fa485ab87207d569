package recommend

import "fmt"

// ValidationError indicates malformed or missing request input. It maps to
// a client error at the boundary and is never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// EmbeddingError indicates the embedding model failed to produce a vector
// for the request. It reports through the same path as a retrieval failure.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("failed to embed query: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}
