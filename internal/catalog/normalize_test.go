package catalog

import (
	"testing"

	"github.com/hireflow/assessment-recommender/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestExpandTestTypes(t *testing.T) {
	tests := []struct {
		name     string
		codes    []string
		expected []string
	}{
		{
			name:     "all_known_codes",
			codes:    []string{"A", "B", "C", "D", "E", "K", "P", "S"},
			expected: []string{"Ability & Aptitude", "Biodata & Situational Judgement", "Competencies", "Development & 360", "Assessment Exercises", "Knowledge & Skills", "Personality & Behavior", "Simulations"},
		},
		{
			name:     "preserves_input_order",
			codes:    []string{"K", "A"},
			expected: []string{"Knowledge & Skills", "Ability & Aptitude"},
		},
		{
			name:     "unknown_code",
			codes:    []string{"Z"},
			expected: []string{"Unknown"},
		},
		{
			name:     "unknown_literal",
			codes:    []string{"Unknown"},
			expected: []string{"Unknown"},
		},
		{
			name:     "mixed_known_and_unknown",
			codes:    []string{"A", "X", "S"},
			expected: []string{"Ability & Aptitude", "Unknown", "Simulations"},
		},
		{
			name:     "lowercase_is_not_a_code",
			codes:    []string{"a"},
			expected: []string{"Unknown"},
		},
		{
			name:     "empty",
			codes:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandTestTypes(tt.codes))
		})
	}
}

func TestExpandTestTypesDeterministic(t *testing.T) {
	codes := []string{"P", "Q", "A"}
	first := ExpandTestTypes(codes)
	second := ExpandTestTypes(codes)
	assert.Equal(t, first, second)
}

func TestNormalizeAdaptiveSupport(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{"Yes", "Yes"},
		{"No", "No"},
		{"Unknown", "No"},
		{"unknown", "No"},
		{"UNKNOWN", "No"},
		{"", "No"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeAdaptiveSupport(tt.value), "value %q", tt.value)
	}
}

func TestNormalizeAdaptiveSupportIdempotent(t *testing.T) {
	for _, value := range []string{"Yes", "No", "Unknown", "unknown", ""} {
		once := NormalizeAdaptiveSupport(value)
		twice := NormalizeAdaptiveSupport(once)
		assert.Equal(t, once, twice, "value %q", value)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	// A record missing duration, remote support and description gets the
	// fill-in defaults
	normalized := Normalize(types.Assessment{
		ID:   "a1",
		URL:  "https://example.com/a1",
		Name: "Sparse Assessment",
	})

	assert.Equal(t, 0, normalized.Duration)
	assert.Equal(t, "No", normalized.RemoteSupport)
	assert.Equal(t, "", normalized.Description)
	assert.Equal(t, "No", normalized.AdaptiveSupport)
	assert.Equal(t, []string{}, normalized.TestType)
}

func TestNormalizeRemoteSupportUnknownPassesThrough(t *testing.T) {
	// Only adaptive support collapses "Unknown" to "No"; a remote support
	// value of "Unknown" present in the source record is kept as is
	normalized := Normalize(types.Assessment{
		ID:              "a2",
		URL:             "https://example.com/a2",
		Name:            "Assessment",
		AdaptiveSupport: "Unknown",
		RemoteSupport:   "Unknown",
	})

	assert.Equal(t, "No", normalized.AdaptiveSupport)
	assert.Equal(t, "Unknown", normalized.RemoteSupport)
}

func TestNormalizeFullRecord(t *testing.T) {
	normalized := Normalize(types.Assessment{
		ID:              "a3",
		URL:             "https://example.com/a3",
		Name:            "Java Developer Test",
		Description:     "Multi-choice test for Java developers",
		Duration:        40,
		AdaptiveSupport: "Yes",
		RemoteSupport:   "Yes",
		TestType:        []string{"K", "S"},
		JobRoles:        []string{"Backend Developer"},
		Languages:       []string{"English"},
	})

	assert.Equal(t, "Java Developer Test", normalized.Name)
	assert.Equal(t, 40, normalized.Duration)
	assert.Equal(t, "Yes", normalized.AdaptiveSupport)
	assert.Equal(t, "Yes", normalized.RemoteSupport)
	assert.Equal(t, []string{"Knowledge & Skills", "Simulations"}, normalized.TestType)
	assert.Equal(t, []string{"Backend Developer"}, normalized.JobRoles)
	assert.Equal(t, []string{"English"}, normalized.Languages)
}
