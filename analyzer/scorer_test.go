package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Itish41/ClauseGuard/models"
)

func validResult() models.ValidationResult {
	return models.ValidationResult{
		IsValid:                   true,
		MissingRequiredClauses:    []string{},
		MissingRecommendedClauses: []string{},
		MissingSections:           []string{},
		ContentLengthValid:        true,
	}
}

func compliantResult() models.ComplianceResult {
	return models.ComplianceResult{Compliant: true, ComplianceScore: 100}
}

func highFindings(occurrences int) []models.Finding {
	return []models.Finding{{Keyword: "termination", RiskLevel: models.RiskHigh, Category: "Employment Termination", Occurrences: occurrences}}
}

func TestScore(t *testing.T) {
	scorer := NewRiskScorer(DefaultHighThreshold, DefaultMediumThreshold)

	tests := []struct {
		name       string
		findings   []models.Finding
		validation models.ValidationResult
		compliance models.ComplianceResult
		wantScore  float64
		wantLevel  models.RiskLevel
	}{
		{
			name:       "nothing found",
			validation: validResult(),
			compliance: compliantResult(),
			wantScore:  1.0,
			wantLevel:  models.RiskLow,
		},
		{
			name:       "exactly the high threshold stays medium",
			findings:   highFindings(20),
			validation: validResult(),
			compliance: compliantResult(),
			wantScore:  7.0,
			wantLevel:  models.RiskMedium,
		},
		{
			name:       "exactly the medium threshold stays low",
			findings:   highFindings(10),
			validation: validResult(),
			compliance: compliantResult(),
			wantScore:  4.0,
			wantLevel:  models.RiskLow,
		},
		{
			name:       "just over the high threshold",
			findings:   highFindings(21),
			validation: validResult(),
			compliance: compliantResult(),
			wantScore:  7.3,
			wantLevel:  models.RiskHigh,
		},
		{
			name:       "clamped at ten",
			findings:   highFindings(300),
			validation: validResult(),
			compliance: compliantResult(),
			wantScore:  10.0,
			wantLevel:  models.RiskHigh,
		},
		{
			name: "every penalty",
			findings: []models.Finding{
				{RiskLevel: models.RiskHigh, Occurrences: 2},
				{RiskLevel: models.RiskMedium, Occurrences: 1},
				{RiskLevel: models.RiskLow, Occurrences: 3},
			},
			validation: models.ValidationResult{
				MissingRequiredClauses:    []string{"job title"},
				MissingRecommendedClauses: []string{"sick leave", "confidentiality"},
			},
			compliance: models.ComplianceResult{
				MissingRequirements: []models.MissingRequirement{{Requirement: "a"}, {Requirement: "b"}},
			},
			// 6 + 2 + 3 + 2 + 2 + 5 = 20
			wantScore: 3.0,
			wantLevel: models.RiskLow,
		},
		{
			name:     "recommended clauses ignored while valid",
			findings: nil,
			validation: models.ValidationResult{
				IsValid:                   true,
				MissingRecommendedClauses: []string{"sick leave", "confidentiality"},
			},
			compliance: compliantResult(),
			wantScore:  1.0,
			wantLevel:  models.RiskLow,
		},
		{
			name:       "missing requirements ignored while compliant",
			validation: validResult(),
			compliance: models.ComplianceResult{
				Compliant:           true,
				MissingRequirements: []models.MissingRequirement{{Requirement: "a"}},
			},
			wantScore: 1.0,
			wantLevel: models.RiskLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, level := scorer.Score(tt.findings, tt.validation, tt.compliance)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantLevel, level)
		})
	}
}

func TestTierBoundaries(t *testing.T) {
	scorer := NewRiskScorer(DefaultHighThreshold, DefaultMediumThreshold)

	assert.Equal(t, models.RiskLow, scorer.Tier(1.0))
	assert.Equal(t, models.RiskLow, scorer.Tier(4.0))
	assert.Equal(t, models.RiskMedium, scorer.Tier(4.1))
	assert.Equal(t, models.RiskMedium, scorer.Tier(7.0))
	assert.Equal(t, models.RiskHigh, scorer.Tier(7.1))
	assert.Equal(t, models.RiskHigh, scorer.Tier(10.0))

	custom := NewRiskScorer(5, 2)
	assert.Equal(t, models.RiskHigh, custom.Tier(5.5))
	assert.Equal(t, models.RiskMedium, custom.Tier(2.5))
}
