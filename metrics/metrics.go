// Package metrics exposes prometheus collectors for analysis outcomes and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Itish41/ClauseGuard/models"
)

const namespace = "clauseguard"

type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	analysesTotal    *prometheus.CounterVec
	riskLevelTotal   *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	riskScore        prometheus.Histogram
	findingsTotal    *prometheus.CounterVec
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()
	serviceLabel := prometheus.Labels{"service": service}

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total HTTP requests processed.",
			ConstLabels: serviceLabel,
		},
		[]string{"method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: serviceLabel,
		},
		[]string{"method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "in_flight_requests",
			Help:        "Number of in-flight HTTP requests.",
			ConstLabels: serviceLabel,
		},
	)
	analysesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "analysis",
			Name:        "documents_total",
			Help:        "Total analysed documents by status and document type.",
			ConstLabels: serviceLabel,
		},
		[]string{"status", "document_type"},
	)
	riskLevelTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "analysis",
			Name:        "risk_level_total",
			Help:        "Completed analyses by overall risk level.",
			ConstLabels: serviceLabel,
		},
		[]string{"risk_level"},
	)
	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "analysis",
			Name:        "duration_seconds",
			Help:        "Analysis pipeline duration in seconds.",
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			ConstLabels: serviceLabel,
		},
		[]string{"document_type"},
	)
	riskScore := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "analysis",
			Name:        "risk_score",
			Help:        "Distribution of document risk scores.",
			Buckets:     []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			ConstLabels: serviceLabel,
		},
	)
	findingsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "analysis",
			Name:        "findings_total",
			Help:        "Findings reported by risk level.",
			ConstLabels: serviceLabel,
		},
		[]string{"risk_level"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		analysesTotal,
		riskLevelTotal,
		analysisDuration,
		riskScore,
		findingsTotal,
	)

	return &Metrics{
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		requestInFlight:  requestInFlight,
		analysesTotal:    analysesTotal,
		riskLevelTotal:   riskLevelTotal,
		analysisDuration: analysisDuration,
		riskScore:        riskScore,
		findingsTotal:    findingsTotal,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by the matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveAnalysis records the outcome of one analysis. Risk and finding
// counters only move for completed analyses.
func (m *Metrics) ObserveAnalysis(result *models.AnalysisResult) {
	if result == nil {
		return
	}
	docType := string(result.DocumentType)
	m.analysesTotal.WithLabelValues(string(result.Status), docType).Inc()
	m.analysisDuration.WithLabelValues(docType).Observe(result.Metadata.ProcessingTime.Seconds())

	if result.Status != models.StatusCompleted {
		return
	}
	m.riskLevelTotal.WithLabelValues(string(result.OverallRiskLevel)).Inc()
	m.riskScore.Observe(result.RiskScore)
	for _, f := range result.Findings {
		m.findingsTotal.WithLabelValues(string(f.RiskLevel)).Add(float64(f.Occurrences))
	}
}
