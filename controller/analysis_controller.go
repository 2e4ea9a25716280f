package controller

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Itish41/ClauseGuard/analyzer"
	service "github.com/Itish41/ClauseGuard/service"
)

// AnalysisController serves document analysis and classification.
type AnalysisController struct {
	service        *service.AnalysisService
	rulebookSource string
}

func NewAnalysisController(svc *service.AnalysisService, rulebookSource string) *AnalysisController {
	return &AnalysisController{service: svc, rulebookSource: rulebookSource}
}

type analyzeRequest struct {
	DocumentID string `json:"document_id"`
	Text       string `json:"text"`
}

func (ac *AnalysisController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"rulebook_source": ac.rulebookSource,
	})
}

// Analyze runs the pipeline over raw text. A FAILED analysis is still a 200:
// the failure is part of the result.
func (ac *AnalysisController) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := ac.service.AnalyzeText(c.Request.Context(), req.DocumentID, req.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, analyzer.Serialize(result))
}

// Upload extracts text from a multipart "file" field and analyses it.
func (ac *AnalysisController) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to get file from request"})
		return
	}
	defer file.Close()

	var r io.Reader = file
	if limit := ac.service.MaxUploadBytes(); limit > 0 {
		// One byte over the limit is enough for validation to reject it.
		r = io.LimitReader(file, limit+1)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		abortWithError(c, fmt.Errorf("read upload %s: %w", header.Filename, err))
		return
	}

	result, err := ac.service.AnalyzeUpload(c.Request.Context(), header.Filename, content)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, analyzer.Serialize(result))
}

type classifyRequest struct {
	Text string `json:"text"`
}

func (ac *AnalysisController) Classify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Field 'text' is required"})
		return
	}

	dt, confidence := ac.service.Classify(req.Text)
	scores := make(map[string]float64, len(confidence))
	for t, score := range confidence {
		scores[string(t)] = score
	}
	c.JSON(http.StatusOK, gin.H{
		"document_type": dt,
		"confidence":    scores,
	})
}
