package analyzer

import (
	"time"

	"github.com/Itish41/ClauseGuard/models"
)

// SchemaVersion identifies the layout produced by Serialize.
const SchemaVersion = "1"

type FindingView struct {
	Keyword     string  `json:"keyword"`
	RiskLevel   string  `json:"risk_level"`
	Category    string  `json:"category"`
	Occurrences int     `json:"occurrences"`
	Context     string  `json:"context"`
	Confidence  float64 `json:"confidence,omitempty"`
}

type MetadataView struct {
	SchemaVersion            string                    `json:"schema_version"`
	ProcessingTime           float64                   `json:"processing_time"`
	WordCount                int                       `json:"word_count"`
	StartedAt                string                    `json:"started_at,omitempty"`
	ProcessedAt              string                    `json:"processed_at,omitempty"`
	ClassificationConfidence map[string]float64        `json:"classification_confidence,omitempty"`
	Structure                *models.DocumentStructure `json:"structure,omitempty"`
	ValidationResult         *models.ValidationResult  `json:"validation_result,omitempty"`
	ComplianceResult         *models.ComplianceResult  `json:"compliance_result,omitempty"`
	TruncatedFindings        int                       `json:"truncated_findings,omitempty"`
	Error                    string                    `json:"error,omitempty"`
}

// Response is the flat transport shape of an AnalysisResult.
type Response struct {
	DocumentID       string                   `json:"document_id"`
	DocumentType     string                   `json:"document_type"`
	RiskScore        float64                  `json:"risk_score"`
	OverallRiskLevel string                   `json:"overall_risk_level"`
	Findings         []FindingView            `json:"findings"`
	Categories       map[string][]FindingView `json:"categories"`
	CategoryOrder    []string                 `json:"category_order"`
	Recommendations  []string                 `json:"recommendations"`
	Status           string                   `json:"status"`
	Metadata         MetadataView             `json:"metadata"`
}

// Serialize converts a result into its transport shape. It does not modify r.
func Serialize(r *models.AnalysisResult) Response {
	resp := Response{
		DocumentID:       r.DocumentID,
		DocumentType:     string(r.DocumentType),
		RiskScore:        r.RiskScore,
		OverallRiskLevel: string(r.OverallRiskLevel),
		Findings:         findingViews(r.Findings),
		Categories:       make(map[string][]FindingView, len(r.Categories)),
		CategoryOrder:    make([]string, 0, len(r.Categories)),
		Recommendations:  append([]string{}, r.Recommendations...),
		Status:           string(r.Status),
		Metadata: MetadataView{
			SchemaVersion:     SchemaVersion,
			ProcessingTime:    r.Metadata.ProcessingTime.Seconds(),
			WordCount:         r.Metadata.WordCount,
			StartedAt:         timestamp(r.Metadata.StartedAt),
			ProcessedAt:       timestamp(r.Metadata.ProcessedAt),
			Structure:         r.Metadata.Structure,
			ValidationResult:  r.Metadata.Validation,
			ComplianceResult:  r.Metadata.Compliance,
			TruncatedFindings: r.Metadata.TruncatedFindings,
			Error:             r.Metadata.Error,
		},
	}

	for _, group := range r.Categories {
		resp.Categories[group.Category] = findingViews(group.Findings)
		resp.CategoryOrder = append(resp.CategoryOrder, group.Category)
	}

	if len(r.Metadata.ClassificationConfidence) > 0 {
		resp.Metadata.ClassificationConfidence = make(map[string]float64, len(r.Metadata.ClassificationConfidence))
		for dt, score := range r.Metadata.ClassificationConfidence {
			resp.Metadata.ClassificationConfidence[string(dt)] = score
		}
	}
	return resp
}

func findingViews(findings []models.Finding) []FindingView {
	out := make([]FindingView, 0, len(findings))
	for _, f := range findings {
		out = append(out, FindingView{
			Keyword:     f.Keyword,
			RiskLevel:   string(f.RiskLevel),
			Category:    f.Category,
			Occurrences: f.Occurrences,
			Context:     f.Context,
			Confidence:  f.Confidence,
		})
	}
	return out
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
