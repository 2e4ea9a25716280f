package analyzer

import (
	"math"

	"github.com/Itish41/ClauseGuard/models"
)

const (
	DefaultHighThreshold   = 7.0
	DefaultMediumThreshold = 4.0

	MinRiskScore = 1.0
	MaxRiskScore = 10.0

	missingRequiredWeight    = 2.0
	missingRecommendedWeight = 1.0
	missingComplianceWeight  = 2.5
)

var tierMultipliers = map[models.RiskLevel]float64{
	models.RiskHigh:   3.0,
	models.RiskMedium: 2.0,
	models.RiskLow:    1.0,
}

// RiskScorer folds findings, validation gaps and compliance gaps into a score in
// [1, 10] and a tier.
type RiskScorer struct {
	high   float64
	medium float64
}

func NewRiskScorer(high, medium float64) *RiskScorer {
	return &RiskScorer{high: high, medium: medium}
}

// Score returns min(10, base/10 + 1) rounded to one decimal, where base sums
// occurrences weighted by tier plus penalties for missing clauses and unmet
// statutory requirements.
func (s *RiskScorer) Score(findings []models.Finding, validation models.ValidationResult, compliance models.ComplianceResult) (float64, models.RiskLevel) {
	base := s.base(findings, validation, compliance)
	score := math.Min(MaxRiskScore, base/10.0+MinRiskScore)
	score = math.Round(score*10) / 10
	return score, s.Tier(score)
}

func (s *RiskScorer) base(findings []models.Finding, validation models.ValidationResult, compliance models.ComplianceResult) float64 {
	base := 0.0
	for _, f := range findings {
		multiplier, ok := tierMultipliers[f.RiskLevel]
		if !ok {
			multiplier = 1.0
		}
		base += float64(f.Occurrences) * multiplier
	}

	base += float64(len(validation.MissingRequiredClauses)) * missingRequiredWeight
	if !validation.IsValid {
		base += float64(len(validation.MissingRecommendedClauses)) * missingRecommendedWeight
	}
	if !compliance.Compliant {
		base += float64(len(compliance.MissingRequirements)) * missingComplianceWeight
	}
	return base
}

// Tier compares with strict greater-than: a score equal to a threshold falls
// into the lower tier.
func (s *RiskScorer) Tier(score float64) models.RiskLevel {
	switch {
	case score > s.high:
		return models.RiskHigh
	case score > s.medium:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
