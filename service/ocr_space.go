package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

const defaultOCRSpaceEndpoint = "https://api.ocr.space/parse/image"

type OCRSpaceConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// OCRSpaceExtractor sends images to the OCR.space API. Calls go through a
// circuit breaker so a failing upstream is not hammered on every upload.
type OCRSpaceExtractor struct {
	apiKey   string
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[string]
	logger   *slog.Logger
}

func NewOCRSpaceExtractor(cfg OCRSpaceConfig, logger *slog.Logger) *OCRSpaceExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultOCRSpaceEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	threshold := cfg.FailureThreshold
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "ocr_space",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit_breaker_state_change", "operation", name, "from", from.String(), "to", to.String())
		},
	})

	return &OCRSpaceExtractor{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
		breaker:  breaker,
		logger:   logger,
	}
}

func (e *OCRSpaceExtractor) Extract(ctx context.Context, filename string, content []byte) (string, error) {
	if e.apiKey == "" {
		return "", fmt.Errorf("%w: image OCR is not configured", ErrUnsupportedFileType)
	}
	text, err := e.breaker.Execute(func() (string, error) {
		return e.recognize(ctx, filename, content)
	})
	if err != nil {
		return "", fmt.Errorf("ocr %s: %w", filename, err)
	}
	return strings.TrimSpace(text), nil
}

type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

func (e *OCRSpaceExtractor) recognize(ctx context.Context, filename string, content []byte) (string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fields := [][2]string{
		{"apikey", e.apiKey},
		{"language", "eng"},
		{"isOverlayRequired", "false"},
		{"filetype", ocrFileType(filename)},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return "", fmt.Errorf("failed to write %s field: %w", f[0], err)
		}
	}
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := fw.Write(content); err != nil {
		return "", fmt.Errorf("failed to write file bytes: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, &b)
	if err != nil {
		return "", fmt.Errorf("failed to create OCR request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read OCR response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OCR.space returned %s", resp.Status)
	}

	var result ocrSpaceResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("OCR API error: %s", strings.TrimSpace(string(body)))
	}
	if msg := ocrErrorMessage(result.ErrorMessage); result.IsErroredOnProcessing || msg != "" {
		return "", fmt.Errorf("OCR.space error: %s", msg)
	}
	if len(result.ParsedResults) == 0 {
		return "", fmt.Errorf("no OCR results found in response")
	}

	var sb strings.Builder
	for _, r := range result.ParsedResults {
		sb.WriteString(r.ParsedText)
	}
	e.logger.Debug("ocr text extracted", "file", filename, "chars", sb.Len())
	return sb.String(), nil
}

// OCR.space reports errors either as a string or as a list of strings.
func ocrErrorMessage(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	return string(raw)
}

func ocrFileType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "PDF"
	case ".png":
		return "PNG"
	case ".jpg", ".jpeg":
		return "JPG"
	default:
		return "PNG"
	}
}
