package types

// TestTypeCode is a single-letter SHL test type code
type TestTypeCode = string

const (
	TestTypeAbility      TestTypeCode = "A"
	TestTypeBiodata      TestTypeCode = "B"
	TestTypeCompetencies TestTypeCode = "C"
	TestTypeDevelopment  TestTypeCode = "D"
	TestTypeExercises    TestTypeCode = "E"
	TestTypeKnowledge    TestTypeCode = "K"
	TestTypePersonality  TestTypeCode = "P"
	TestTypeSimulations  TestTypeCode = "S"
)

// Assessment represents a single catalog entry for an assessment product.
// Records are produced by the offline ingestion pipeline and are immutable
// once indexed; the recommender only ever reads them.
type Assessment struct {
	ID              string   `json:"id"`
	URL             string   `json:"url"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Duration        int      `json:"duration"`
	AdaptiveSupport string   `json:"adaptive_support,omitempty"`
	RemoteSupport   string   `json:"remote_support,omitempty"`
	TestType        []string `json:"test_type,omitempty"`
	JobRoles        []string `json:"job_roles,omitempty"`
	Languages       []string `json:"languages,omitempty"`
}
