package catalog

import (
	"strings"

	"github.com/hireflow/assessment-recommender/internal/types"
)

// testTypeNames maps single-letter test type codes to their display names.
var testTypeNames = map[string]string{
	"A": "Ability & Aptitude",
	"B": "Biodata & Situational Judgement",
	"C": "Competencies",
	"D": "Development & 360",
	"E": "Assessment Exercises",
	"K": "Knowledge & Skills",
	"P": "Personality & Behavior",
	"S": "Simulations",
}

// ExpandTestTypes maps test type codes to their full display names,
// preserving input order. Codes outside the known alphabet map to
// "Unknown" rather than failing, so the expansion is total.
func ExpandTestTypes(codes []string) []string {
	expanded := make([]string, 0, len(codes))
	for _, code := range codes {
		name, ok := testTypeNames[code]
		if !ok {
			name = "Unknown"
		}
		expanded = append(expanded, name)
	}
	return expanded
}

// NormalizeAdaptiveSupport collapses an unknown adaptive support value to
// "No". Downstream consumers expect a binary yes/no and treat missing
// adaptive support information conservatively. Idempotent.
func NormalizeAdaptiveSupport(value string) string {
	if value == "" || strings.EqualFold(value, "unknown") {
		return "No"
	}
	return value
}

// Normalize applies the presentation contract to a raw catalog record:
// adaptive support is collapsed to yes/no, test type codes are expanded,
// and absent duration/remote support/description get their defaults.
// A "Unknown" remote support value present in the source record passes
// through unchanged; only adaptive support has the unknown-to-No collapse.
func Normalize(a types.Assessment) types.RecommendedAssessment {
	remote := a.RemoteSupport
	if remote == "" {
		remote = "No"
	}
	return types.RecommendedAssessment{
		URL:             a.URL,
		Name:            a.Name,
		AdaptiveSupport: NormalizeAdaptiveSupport(a.AdaptiveSupport),
		Description:     a.Description,
		Duration:        a.Duration,
		RemoteSupport:   remote,
		TestType:        ExpandTestTypes(a.TestType),
		JobRoles:        a.JobRoles,
		Languages:       a.Languages,
	}
}
