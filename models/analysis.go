package models

import (
	"strings"
	"time"
)

// DocumentType is the closed set of employment documents the analyzer recognises.
// Declaration order matters: the classifier breaks exact score ties in favour of
// the type declared first.
type DocumentType string

const (
	EmploymentContract DocumentType = "EMPLOYMENT_CONTRACT"
	DisciplinaryNotice DocumentType = "DISCIPLINARY_NOTICE"
	TerminationLetter  DocumentType = "TERMINATION_LETTER"
	GrievanceLetter    DocumentType = "GRIEVANCE_LETTER"
	WorkplacePolicy    DocumentType = "WORKPLACE_POLICY"
	HealthSafety       DocumentType = "HEALTH_SAFETY"
	UnknownDocument    DocumentType = "UNKNOWN"
)

// DocumentTypes lists every type in declaration order.
var DocumentTypes = []DocumentType{
	EmploymentContract,
	DisciplinaryNotice,
	TerminationLetter,
	GrievanceLetter,
	WorkplacePolicy,
	HealthSafety,
	UnknownDocument,
}

// Ordinal returns the declaration index of the type, or len(DocumentTypes) for
// values outside the enumeration.
func (t DocumentType) Ordinal() int {
	for i, dt := range DocumentTypes {
		if dt == t {
			return i
		}
	}
	return len(DocumentTypes)
}

// ParseDocumentType accepts the canonical name in any case.
func ParseDocumentType(s string) (DocumentType, bool) {
	candidate := DocumentType(strings.ToUpper(strings.TrimSpace(s)))
	for _, dt := range DocumentTypes {
		if dt == candidate {
			return dt, true
		}
	}
	return UnknownDocument, false
}

// RiskLevel is an ordered risk tier.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Rank orders tiers LOW < MEDIUM < HIGH. Unknown tiers rank as LOW.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

// ParseRiskLevel accepts LOW/MEDIUM/HIGH in any case.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch RiskLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow, true
	case RiskMedium:
		return RiskMedium, true
	case RiskHigh:
		return RiskHigh, true
	}
	return RiskLow, false
}

// ProcessingStatus tracks an analysis through the pipeline.
type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "PENDING"
	StatusProcessing ProcessingStatus = "PROCESSING"
	StatusCompleted  ProcessingStatus = "COMPLETED"
	StatusFailed     ProcessingStatus = "FAILED"
)

// KeywordInfo describes one entry of the risk keyword table.
type KeywordInfo struct {
	Keyword         string    `json:"keyword" yaml:"keyword"`
	Risk            RiskLevel `json:"risk" yaml:"risk"`
	Category        string    `json:"category" yaml:"category"`
	Description     string    `json:"description" yaml:"description"`
	Weight          float64   `json:"weight" yaml:"weight"`
	RequiresContext bool      `json:"requires_context" yaml:"requires_context"`
}

// Finding is one observed signal in a document. Findings are not modified after
// the text analyzer emits them.
type Finding struct {
	Keyword     string    `json:"keyword"`
	RiskLevel   RiskLevel `json:"risk_level"`
	Category    string    `json:"category"`
	Occurrences int       `json:"occurrences"`
	Context     string    `json:"context"`
	Confidence  float64   `json:"confidence,omitempty"`
}

// RequirementSpec lists the structural expectations for one document type.
type RequirementSpec struct {
	RequiredClauses    []string `json:"required_clauses" yaml:"required_clauses"`
	RecommendedClauses []string `json:"recommended_clauses" yaml:"recommended_clauses"`
	RequiredSections   []string `json:"required_sections" yaml:"required_sections"`
	Keywords           []string `json:"keywords" yaml:"keywords"`
	MinContentLength   int      `json:"min_content_length" yaml:"min_content_length"`
	// MaxContentLength of zero means no upper bound.
	MaxContentLength int     `json:"max_content_length,omitempty" yaml:"max_content_length"`
	RiskMultiplier   float64 `json:"risk_multiplier" yaml:"risk_multiplier"`
}

// LegalReference points at a statute section.
type LegalReference struct {
	Act           string    `json:"act" yaml:"act"`
	Section       string    `json:"section" yaml:"section"`
	Description   string    `json:"description" yaml:"description"`
	URL           string    `json:"url,omitempty" yaml:"url"`
	EffectiveDate time.Time `json:"effective_date,omitempty" yaml:"effective_date"`
}

// LegalRequirement is one statutory obligation with an ordered checklist of
// phrases that must all appear in the document text.
type LegalRequirement struct {
	Description string           `json:"description" yaml:"description"`
	References  []LegalReference `json:"references" yaml:"references"`
	Mandatory   bool             `json:"mandatory" yaml:"mandatory"`
	Penalties   string           `json:"penalties,omitempty" yaml:"penalties"`
	Category    string           `json:"category" yaml:"category"`
	Checklist   []string         `json:"checklist" yaml:"checklist"`
}

// PrimaryAct returns the act of the first reference, or "" when there is none.
func (r LegalRequirement) PrimaryAct() string {
	if len(r.References) == 0 {
		return ""
	}
	return r.References[0].Act
}

// ValidationResult is the outcome of checking a document against its RequirementSpec.
type ValidationResult struct {
	IsValid                   bool     `json:"is_valid"`
	MissingRequiredClauses    []string `json:"missing_required_clauses"`
	MissingRecommendedClauses []string `json:"missing_recommended_clauses"`
	MissingSections           []string `json:"missing_sections"`
	ContentLengthValid        bool     `json:"content_length_valid"`
}

// MissingRequirement records an unmet statutory requirement and the first
// checklist item that was not found.
type MissingRequirement struct {
	Requirement   string `json:"requirement"`
	ChecklistItem string `json:"checklist_item"`
	Reference     string `json:"reference"`
}

// ComplianceResult is the outcome of checking a document against the statutory table.
type ComplianceResult struct {
	Compliant           bool                 `json:"compliant"`
	MissingRequirements []MissingRequirement `json:"missing_requirements"`
	LegalReferences     []LegalReference     `json:"legal_references"`
	ComplianceScore     float64              `json:"compliance_score"`
}

// DocumentStructure summarises the layout of a document.
type DocumentStructure struct {
	SectionCount         int     `json:"section_count"`
	AverageSectionLength float64 `json:"average_section_length"`
	HasHeader            bool    `json:"has_header"`
	HasSignatureSection  bool    `json:"has_signature_section"`
}

// AnalysisMetadata is attached to every AnalysisResult.
type AnalysisMetadata struct {
	ProcessingTime           time.Duration            `json:"processing_time"`
	WordCount                int                      `json:"word_count"`
	StartedAt                time.Time                `json:"started_at"`
	ProcessedAt              time.Time                `json:"processed_at"`
	ClassificationConfidence map[DocumentType]float64 `json:"classification_confidence,omitempty"`
	Structure                *DocumentStructure       `json:"structure,omitempty"`
	Validation               *ValidationResult        `json:"validation_result,omitempty"`
	Compliance               *ComplianceResult        `json:"compliance_result,omitempty"`
	TruncatedFindings        int                      `json:"truncated_findings,omitempty"`
	Error                    string                   `json:"error,omitempty"`
}

// CategoryGroup is one category with its findings in discovery order.
type CategoryGroup struct {
	Category string    `json:"category"`
	Findings []Finding `json:"findings"`
}

// AnalysisResult is owned by a single analysis call. It is mutated while the
// pipeline runs and handed to the caller once Status is COMPLETED or FAILED.
type AnalysisResult struct {
	DocumentID       string           `json:"document_id"`
	DocumentType     DocumentType     `json:"document_type"`
	RiskScore        float64          `json:"risk_score"`
	OverallRiskLevel RiskLevel        `json:"overall_risk_level"`
	Findings         []Finding        `json:"findings"`
	Categories       []CategoryGroup  `json:"categories"`
	Recommendations  []string         `json:"recommendations"`
	Status           ProcessingStatus `json:"status"`
	Metadata         AnalysisMetadata `json:"metadata"`
}

// GroupFindings groups findings by category, keeping categories in first-seen
// order and findings in their original order.
func GroupFindings(findings []Finding) []CategoryGroup {
	groups := []CategoryGroup{}
	index := make(map[string]int)
	for _, f := range findings {
		i, ok := index[f.Category]
		if !ok {
			i = len(groups)
			index[f.Category] = i
			groups = append(groups, CategoryGroup{Category: f.Category})
		}
		groups[i].Findings = append(groups[i].Findings, f)
	}
	return groups
}
