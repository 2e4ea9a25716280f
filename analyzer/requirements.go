package analyzer

import (
	"strings"
	"unicode/utf8"

	"github.com/Itish41/ClauseGuard/models"
	"github.com/Itish41/ClauseGuard/rules"
)

// RequirementsValidator checks a document against the requirement spec of its type.
type RequirementsValidator struct {
	rulebook *rules.Rulebook
}

func NewRequirementsValidator(rb *rules.Rulebook) *RequirementsValidator {
	return &RequirementsValidator{rulebook: rb}
}

// Validate looks for every required clause, recommended clause and required
// section as a case-insensitive substring. Missing required clauses and text
// shorter than the minimum invalidate the document. Text longer than the
// maximum only clears ContentLengthValid; IsValid is left alone.
func (v *RequirementsValidator) Validate(dt models.DocumentType, text string) models.ValidationResult {
	spec := v.rulebook.Spec(dt)
	lower := strings.ToLower(text)

	result := models.ValidationResult{
		IsValid:                   true,
		MissingRequiredClauses:    []string{},
		MissingRecommendedClauses: []string{},
		MissingSections:           []string{},
		ContentLengthValid:        true,
	}

	length := utf8.RuneCountInString(text)
	if length < spec.MinContentLength {
		result.IsValid = false
		result.ContentLengthValid = false
	}
	if spec.MaxContentLength > 0 && length > spec.MaxContentLength {
		result.ContentLengthValid = false
	}

	for _, clause := range spec.RequiredClauses {
		if !strings.Contains(lower, strings.ToLower(clause)) {
			result.IsValid = false
			result.MissingRequiredClauses = append(result.MissingRequiredClauses, clause)
		}
	}
	for _, clause := range spec.RecommendedClauses {
		if !strings.Contains(lower, strings.ToLower(clause)) {
			result.MissingRecommendedClauses = append(result.MissingRecommendedClauses, clause)
		}
	}
	for _, section := range spec.RequiredSections {
		if !strings.Contains(lower, strings.ToLower(section)) {
			result.MissingSections = append(result.MissingSections, section)
		}
	}

	return result
}
