package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Itish41/ClauseGuard/analyzer"
	"github.com/Itish41/ClauseGuard/models"
)

// AnalysisRecorder receives every finished analysis, completed or failed.
type AnalysisRecorder interface {
	ObserveAnalysis(result *models.AnalysisResult)
}

type AnalysisServiceConfig struct {
	MaxUploadBytes int64
	// ImageExtractor handles JPEG and PNG uploads. Nil rejects images.
	ImageExtractor TextExtractor
	Recorder       AnalysisRecorder
	Logger         *slog.Logger
}

// AnalysisService sits between transport and the analyzer: it validates and
// extracts uploads, assigns document ids and records metrics.
type AnalysisService struct {
	analyzer       *analyzer.Analyzer
	extractors     map[string]TextExtractor
	maxUploadBytes int64
	recorder       AnalysisRecorder
	logger         *slog.Logger
	newID          func() string
}

func NewAnalysisService(a *analyzer.Analyzer, cfg AnalysisServiceConfig) *AnalysisService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	extractors := map[string]TextExtractor{
		"text/plain":      PlainTextExtractor{},
		"application/pdf": PDFExtractor{},
	}
	if cfg.ImageExtractor != nil {
		extractors["image/jpeg"] = cfg.ImageExtractor
		extractors["image/png"] = cfg.ImageExtractor
	}

	return &AnalysisService{
		analyzer:       a,
		extractors:     extractors,
		maxUploadBytes: cfg.MaxUploadBytes,
		recorder:       cfg.Recorder,
		logger:         logger,
		newID:          uuid.NewString,
	}
}

func (s *AnalysisService) Analyzer() *analyzer.Analyzer { return s.analyzer }

// MaxUploadBytes is the upload size limit; zero or less means unlimited.
func (s *AnalysisService) MaxUploadBytes() int64 { return s.maxUploadBytes }

// AnalyzeText analyses already extracted text. An empty documentID is replaced
// by a fresh UUID. The only error is a cancelled context; analysis faults are
// reported through the result status.
func (s *AnalysisService) AnalyzeText(ctx context.Context, documentID, text string) (*models.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(documentID) == "" {
		documentID = s.newID()
	}

	result := s.analyzer.Analyze(documentID, text)
	if s.recorder != nil {
		s.recorder.ObserveAnalysis(result)
	}

	s.logger.Info("document analysed",
		"document_id", result.DocumentID,
		"document_type", result.DocumentType,
		"status", result.Status,
		"risk_score", result.RiskScore,
		"risk_level", result.OverallRiskLevel,
		"findings", len(result.Findings),
		"duration_ms", result.Metadata.ProcessingTime.Milliseconds(),
	)
	return result, nil
}

// AnalyzeUpload validates the file, extracts its text and analyses it under a
// new document id.
func (s *AnalysisService) AnalyzeUpload(ctx context.Context, filename string, content []byte) (*models.AnalysisResult, error) {
	mime, err := ValidateUpload(filename, content, s.maxUploadBytes)
	if err != nil {
		s.logger.Warn("upload rejected", "file", filename, "size", len(content), "error", err)
		return nil, err
	}

	extractor, ok := s.extractors[mime]
	if !ok {
		return nil, fmt.Errorf("%w: no extractor for %s", ErrUnsupportedFileType, mime)
	}

	text, err := extractor.Extract(ctx, filename, content)
	if err != nil {
		s.logger.Error("text extraction failed", "file", filename, "mime", mime, "error", err)
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoText, filename)
	}

	return s.AnalyzeText(ctx, s.newID(), text)
}

// Classify reports the inferred document type and the per-type confidence.
func (s *AnalysisService) Classify(text string) (models.DocumentType, map[models.DocumentType]float64) {
	c := s.analyzer.Classifier()
	return c.Classify(text), c.Confidence(text)
}
