package embeddings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	a := Hash("https://example.com/assessments/java")
	b := Hash("https://example.com/assessments/java")
	c := Hash("https://example.com/assessments/sales")

	assert.Equal(t, a, b, "hash must be deterministic")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
