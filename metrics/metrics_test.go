package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Itish41/ClauseGuard/models"
)

func TestObserveAnalysis(t *testing.T) {
	m := New("test")

	m.ObserveAnalysis(&models.AnalysisResult{
		DocumentType:     models.TerminationLetter,
		Status:           models.StatusCompleted,
		RiskScore:        8.2,
		OverallRiskLevel: models.RiskHigh,
		Findings: []models.Finding{
			{RiskLevel: models.RiskHigh, Occurrences: 3},
			{RiskLevel: models.RiskLow, Occurrences: 1},
		},
		Metadata: models.AnalysisMetadata{ProcessingTime: 20 * time.Millisecond},
	})
	m.ObserveAnalysis(&models.AnalysisResult{
		DocumentType: models.UnknownDocument,
		Status:       models.StatusFailed,
	})
	m.ObserveAnalysis(nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.analysesTotal.WithLabelValues("COMPLETED", "TERMINATION_LETTER")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analysesTotal.WithLabelValues("FAILED", "UNKNOWN")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.riskLevelTotal.WithLabelValues("HIGH")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.findingsTotal.WithLabelValues("HIGH")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.findingsTotal.WithLabelValues("LOW")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.riskScore))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New("test")

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requestInFlight))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `clauseguard_http_requests_total{method="GET",path="/health",service="test",status="200"} 2`)
}
