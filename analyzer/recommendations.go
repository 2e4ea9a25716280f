package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Itish41/ClauseGuard/models"
)

// Recommendations are ordered by these prefixes; anything else goes last.
var recommendationPriority = []string{
	"Ensure compliance",
	"Address high-risk",
	"Add required",
	"Review potential",
	"Consider",
}

// RecommendationEngine turns analysis gaps into remediation advice.
type RecommendationEngine struct{}

func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{}
}

// Recommend builds clause advice, then finding advice, then compliance advice,
// removes duplicates keeping the first, and stable-sorts by priority prefix.
func (e *RecommendationEngine) Recommend(
	_ models.DocumentType,
	findings []models.Finding,
	compliance models.ComplianceResult,
	validation models.ValidationResult,
) []string {
	var recs []string

	for _, clause := range validation.MissingRequiredClauses {
		recs = append(recs, fmt.Sprintf("Add required clause: %s", clause))
	}
	for _, clause := range validation.MissingRecommendedClauses {
		recs = append(recs, fmt.Sprintf("Consider adding recommended clause: %s", clause))
	}

	for _, f := range findings {
		switch f.RiskLevel {
		case models.RiskHigh:
			recs = append(recs, fmt.Sprintf("Address high-risk issue in '%s': %s", f.Category, f.Keyword))
		case models.RiskMedium:
			recs = append(recs, fmt.Sprintf("Review potential issue in '%s': %s", f.Category, f.Keyword))
		}
	}

	for _, missing := range compliance.MissingRequirements {
		recs = append(recs, complianceRecommendation(missing))
	}

	return prioritize(recs)
}

func complianceRecommendation(m models.MissingRequirement) string {
	if m.Reference == "" {
		return fmt.Sprintf("Ensure compliance: %s (missing: %s)", m.Requirement, m.ChecklistItem)
	}
	return fmt.Sprintf("Ensure compliance with %s: %s (missing: %s)", m.Reference, m.Requirement, m.ChecklistItem)
}

func prioritize(recs []string) []string {
	seen := make(map[string]struct{}, len(recs))
	unique := make([]string, 0, len(recs))
	for _, r := range recs {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		unique = append(unique, r)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return priorityOf(unique[i]) < priorityOf(unique[j])
	})
	return unique
}

func priorityOf(rec string) int {
	for i, prefix := range recommendationPriority {
		if strings.HasPrefix(rec, prefix) {
			return i
		}
	}
	return len(recommendationPriority)
}
