package analyzer

import (
	"strings"

	"github.com/Itish41/ClauseGuard/models"
	"github.com/Itish41/ClauseGuard/rules"
)

// ComplianceChecker checks document text against the statutory requirement table.
type ComplianceChecker struct {
	rulebook *rules.Rulebook
}

func NewComplianceChecker(rb *rules.Rulebook) *ComplianceChecker {
	return &ComplianceChecker{rulebook: rb}
}

// Check walks each requirement's checklist in order. The first item not found
// in the text marks the requirement unmet and the remaining items of that
// requirement are skipped, so only the first gap is reported. Every unmet
// requirement costs 100/len(requirements) points; the score floors at 0.
// References of all requirements are collected whether they pass or not.
func (c *ComplianceChecker) Check(key string, text string) models.ComplianceResult {
	requirements := c.rulebook.Requirements(key)
	result := models.ComplianceResult{
		Compliant:           true,
		MissingRequirements: []models.MissingRequirement{},
		LegalReferences:     []models.LegalReference{},
		ComplianceScore:     100.0,
	}
	if len(requirements) == 0 {
		return result
	}

	lower := strings.ToLower(text)
	penalty := 100.0 / float64(len(requirements))

	for _, req := range requirements {
		if item, ok := firstMissingItem(lower, req.Checklist); !ok {
			result.Compliant = false
			result.ComplianceScore -= penalty
			result.MissingRequirements = append(result.MissingRequirements, models.MissingRequirement{
				Requirement:   req.Description,
				ChecklistItem: item,
				Reference:     req.PrimaryAct(),
			})
		}
		result.LegalReferences = append(result.LegalReferences, req.References...)
	}

	result.ComplianceScore = max(0.0, result.ComplianceScore)
	return result
}

// firstMissingItem returns the first checklist item absent from text. An empty
// checklist is satisfied.
func firstMissingItem(lowerText string, checklist []string) (string, bool) {
	for _, item := range checklist {
		if !strings.Contains(lowerText, strings.ToLower(item)) {
			return item, false
		}
	}
	return "", true
}
