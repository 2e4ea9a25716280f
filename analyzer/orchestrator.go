// Package analyzer scores employment documents for legal risk. An Analyzer runs
// classification, text analysis, requirement validation, statutory compliance,
// scoring and recommendation in that order and returns one AnalysisResult.
package analyzer

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Itish41/ClauseGuard/models"
	"github.com/Itish41/ClauseGuard/rules"
)

// Config is supplied by the host process.
type Config struct {
	RiskThresholdHigh      float64
	RiskThresholdMedium    float64
	ContextWindowSize      int
	IncludeRecommendations bool
	// MaxFindings caps the findings returned to the caller; zero or less disables the cap.
	MaxFindings int
}

func DefaultConfig() Config {
	return Config{
		RiskThresholdHigh:      DefaultHighThreshold,
		RiskThresholdMedium:    DefaultMediumThreshold,
		ContextWindowSize:      defaultContextWindow,
		IncludeRecommendations: true,
		MaxFindings:            100,
	}
}

// Analyzer is stateless between calls and safe for concurrent use.
type Analyzer struct {
	cfg      Config
	rulebook *rules.Rulebook

	classifier  *Classifier
	text        *TextAnalyzer
	validator   *RequirementsValidator
	compliance  *ComplianceChecker
	scorer      *RiskScorer
	recommender *RecommendationEngine

	logger *slog.Logger
	now    func() time.Time
}

func New(rb *rules.Rulebook, cfg Config, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		cfg:         cfg,
		rulebook:    rb,
		classifier:  NewClassifier(rb),
		text:        NewTextAnalyzer(NewKeywordDatabase(rb), cfg.ContextWindowSize),
		validator:   NewRequirementsValidator(rb),
		compliance:  NewComplianceChecker(rb),
		scorer:      NewRiskScorer(cfg.RiskThresholdHigh, cfg.RiskThresholdMedium),
		recommender: NewRecommendationEngine(),
		logger:      logger,
		now:         time.Now,
	}
}

func (a *Analyzer) Config() Config { return a.cfg }

func (a *Analyzer) Rulebook() *rules.Rulebook { return a.rulebook }

func (a *Analyzer) Classifier() *Classifier { return a.classifier }

// Analyze runs the full pipeline. It never returns an error: an internal fault
// leaves the result in status FAILED with metadata.error set, carrying whatever
// stages had completed. Empty text is a valid document.
func (a *Analyzer) Analyze(documentID, text string) (result *models.AnalysisResult) {
	start := a.now()
	result = &models.AnalysisResult{
		DocumentID:       documentID,
		DocumentType:     models.UnknownDocument,
		RiskScore:        MinRiskScore,
		OverallRiskLevel: models.RiskLow,
		Findings:         []models.Finding{},
		Categories:       []models.CategoryGroup{},
		Recommendations:  []string{},
		Status:           models.StatusPending,
	}
	result.Metadata.StartedAt = start

	defer func() {
		if r := recover(); r != nil {
			result.Status = models.StatusFailed
			result.Metadata.Error = fmt.Sprint(r)
			a.logger.Error("analysis failed",
				"document_id", documentID,
				"document_type", result.DocumentType,
				"error", result.Metadata.Error,
			)
		}
		end := a.now()
		result.Metadata.ProcessedAt = end
		result.Metadata.ProcessingTime = end.Sub(start)
	}()

	result.Status = models.StatusProcessing
	result.Metadata.WordCount = len(strings.Fields(text))

	docType := a.classifier.Classify(text)
	result.DocumentType = docType
	result.Metadata.ClassificationConfidence = a.classifier.Confidence(text)
	structure := AnalyzeStructure(text)
	result.Metadata.Structure = &structure

	findings, _ := a.text.Analyze(text, docType)
	a.logger.Debug("text analysis done", "document_id", documentID, "findings", len(findings))

	validation := a.validator.Validate(docType, text)
	result.Metadata.Validation = &validation

	compliance := a.compliance.Check(a.rulebook.ComplianceKey(docType), text)
	result.Metadata.Compliance = &compliance

	result.RiskScore, result.OverallRiskLevel = a.scorer.Score(findings, validation, compliance)

	if a.cfg.IncludeRecommendations {
		result.Recommendations = a.recommender.Recommend(docType, findings, compliance, validation)
	}

	if a.cfg.MaxFindings > 0 && len(findings) > a.cfg.MaxFindings {
		result.Metadata.TruncatedFindings = len(findings) - a.cfg.MaxFindings
		findings = findings[:a.cfg.MaxFindings]
	}
	result.Findings = findings
	result.Categories = models.GroupFindings(findings)

	result.Status = models.StatusCompleted
	a.logger.Debug("analysis completed",
		"document_id", documentID,
		"document_type", docType,
		"risk_score", result.RiskScore,
		"risk_level", result.OverallRiskLevel,
	)
	return result
}
