package controller

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Itish41/ClauseGuard/analyzer"
	"github.com/Itish41/ClauseGuard/models"
	"github.com/Itish41/ClauseGuard/rules"
	service "github.com/Itish41/ClauseGuard/service"
)

// RulesController exposes the rulebook: document types, statutory
// requirements, statute search and the notice-period table.
type RulesController struct {
	rulebook *rules.Rulebook
	index    *service.StatuteIndex
}

func NewRulesController(rb *rules.Rulebook, index *service.StatuteIndex) *RulesController {
	return &RulesController{rulebook: rb, index: index}
}

type documentTypeView struct {
	DocumentType  models.DocumentType    `json:"document_type"`
	ComplianceKey string                 `json:"compliance_key,omitempty"`
	Requirements  models.RequirementSpec `json:"requirements"`
}

// DocumentTypes lists every type that has a requirement spec, in declaration order.
func (rc *RulesController) DocumentTypes(c *gin.Context) {
	types := make([]documentTypeView, 0, len(models.DocumentTypes))
	for _, dt := range models.DocumentTypes {
		if !rc.rulebook.HasSpec(dt) {
			continue
		}
		types = append(types, documentTypeView{
			DocumentType:  dt,
			ComplianceKey: rc.rulebook.ComplianceKey(dt),
			Requirements:  rc.rulebook.Spec(dt),
		})
	}
	c.JSON(http.StatusOK, gin.H{"document_types": types, "total": len(types)})
}

// Statutes returns the requirements for ?key=, or the list of keys without it.
// A document type name is accepted in place of the key.
func (rc *RulesController) Statutes(c *gin.Context) {
	key := strings.TrimSpace(c.Query("key"))
	if key == "" {
		c.JSON(http.StatusOK, gin.H{"compliance_keys": rc.rulebook.ComplianceKeys()})
		return
	}
	if dt, ok := models.ParseDocumentType(key); ok {
		key = rc.rulebook.ComplianceKey(dt)
	}

	reqs := rc.rulebook.Requirements(key)
	if len(reqs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No statutory requirements for key", "key": key})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"key":           key,
		"requirements":  reqs,
		"relevant_acts": rc.rulebook.RelevantActs(key),
	})
}

func (rc *RulesController) SearchStatutes(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	hits, err := rc.index.Search(c.Request.Context(), query)
	if err != nil {
		log.Printf("Error searching statutes: %v", err)
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": hits, "total": len(hits)})
}

func (rc *RulesController) NoticePeriod(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("years"))
	years, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(years) || math.IsInf(years, 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'years' must be a number"})
		return
	}

	notice, err := analyzer.NoticePeriod(years)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"years_of_service": years,
		"required_notice":  notice,
	})
}
