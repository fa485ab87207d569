package types

// DefaultK is the number of recommendations returned when the caller
// doesn't ask for a specific count.
const DefaultK = 5

// RecommendRequest is a single recommendation query. TestType carries raw
// single-letter codes; a nil slice means no test type preference.
type RecommendRequest struct {
	Query    string   `json:"query"`
	K        int      `json:"k,omitempty"`
	TestType []string `json:"test_type,omitempty"`
}

// ScoredAssessment is a retrieved candidate with its similarity scores.
// BaseScore is the raw cosine similarity from the vector index;
// AdjustedScore includes the test type boost and is never lower.
type ScoredAssessment struct {
	Assessment
	BaseScore     float32 `json:"base_score"`
	AdjustedScore float32 `json:"adjusted_score"`
}

// RecommendedAssessment is the presentation form of a catalog record:
// metadata is normalized and test type codes are expanded to full names.
type RecommendedAssessment struct {
	URL             string   `json:"url"`
	Name            string   `json:"name"`
	AdaptiveSupport string   `json:"adaptive_support"`
	Description     string   `json:"description"`
	Duration        int      `json:"duration"`
	RemoteSupport   string   `json:"remote_support"`
	TestType        []string `json:"test_type"`
	JobRoles        []string `json:"job_roles,omitempty"`
	Languages       []string `json:"languages,omitempty"`
}

// RecommendResponse is the wire shape of a successful recommendation call.
type RecommendResponse struct {
	RecommendedAssessments []RecommendedAssessment `json:"recommended_assessments"`
}
