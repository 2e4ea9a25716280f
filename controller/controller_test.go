package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Itish41/ClauseGuard/analyzer"
	"github.com/Itish41/ClauseGuard/models"
	"github.com/Itish41/ClauseGuard/rules"
	service "github.com/Itish41/ClauseGuard/service"
)

const terminationText = "Notice of termination and dismissal. Your employment is terminated with immediate effect. " +
	"You were dismissed for gross misconduct. You have the right to appeal this decision."

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, esURL string, maxUpload int64) *gin.Engine {
	t.Helper()
	rb := rules.Default()
	svc := service.NewAnalysisService(analyzer.New(rb, analyzer.DefaultConfig(), nil), service.AnalysisServiceConfig{
		MaxUploadBytes: maxUpload,
	})
	index, err := service.NewStatuteIndex(esURL, nil)
	require.NoError(t, err)

	router := gin.New()
	RegisterRoutes(router,
		NewAnalysisController(svc, service.SourceBuiltin),
		NewRulesController(rb, index),
		func(c *gin.Context) { c.Next() },
	)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doUpload(t *testing.T, router http.Handler, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var b bytes.Buffer
	mw := multipart.NewWriter(&b)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &b)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, "", 0)
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "builtin", body["rulebook_source"])
}

func TestAnalyze(t *testing.T) {
	router := newTestRouter(t, "", 0)

	w := doJSON(t, router, http.MethodPost, "/analyze", map[string]string{"document_id": "doc-1", "text": terminationText})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[analyzer.Response](t, w)
	assert.Equal(t, "doc-1", resp.DocumentID)
	assert.Equal(t, string(models.TerminationLetter), resp.DocumentType)
	assert.Equal(t, string(models.StatusCompleted), resp.Status)
	assert.Equal(t, analyzer.SchemaVersion, resp.Metadata.SchemaVersion)
	assert.NotEmpty(t, resp.Findings)
	assert.Len(t, resp.Categories, len(resp.CategoryOrder))
	assert.GreaterOrEqual(t, resp.RiskScore, 1.0)
	assert.LessOrEqual(t, resp.RiskScore, 10.0)

	// Degenerate input is analysed, not rejected.
	w = doJSON(t, router, http.MethodPost, "/analyze", map[string]string{"text": ""})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[analyzer.Response](t, w)
	assert.NotEmpty(t, resp.DocumentID)
	assert.Equal(t, string(models.UnknownDocument), resp.DocumentType)
	assert.Equal(t, 1.0, resp.RiskScore)
}

func TestAnalyzeBadBody(t *testing.T) {
	router := newTestRouter(t, "", 0)
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpload(t *testing.T) {
	tests := []struct {
		name       string
		filename   string
		content    []byte
		maxUpload  int64
		wantStatus int
	}{
		{"text", "letter.txt", []byte(terminationText), 0, http.StatusOK},
		{"empty", "letter.txt", nil, 0, http.StatusBadRequest},
		{"too large", "letter.txt", []byte(terminationText), 16, http.StatusRequestEntityTooLarge},
		{"unsupported extension", "letter.docx", []byte(terminationText), 0, http.StatusUnsupportedMediaType},
		{"image without ocr", "scan.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01"), 0, http.StatusUnsupportedMediaType},
		{"whitespace", "blank.txt", []byte("   \n  "), 0, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, "", tt.maxUpload)
			w := doUpload(t, router, tt.filename, tt.content)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusOK {
				resp := decode[analyzer.Response](t, w)
				assert.Equal(t, string(models.TerminationLetter), resp.DocumentType)
			} else {
				body := decode[map[string]string](t, w)
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestUploadMissingFile(t *testing.T) {
	router := newTestRouter(t, "", 0)
	w := doJSON(t, router, http.MethodPost, "/upload", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClassify(t *testing.T) {
	router := newTestRouter(t, "", 0)

	w := doJSON(t, router, http.MethodPost, "/classify", map[string]string{"text": terminationText})
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		DocumentType string             `json:"document_type"`
		Confidence   map[string]float64 `json:"confidence"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(models.TerminationLetter), body.DocumentType)

	sum := 0.0
	for _, v := range body.Confidence {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	w = doJSON(t, router, http.MethodPost, "/classify", map[string]string{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentTypes(t *testing.T) {
	router := newTestRouter(t, "", 0)
	w := doJSON(t, router, http.MethodGet, "/document-types", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		DocumentTypes []documentTypeView `json:"document_types"`
		Total         int                `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.DocumentTypes)
	assert.Equal(t, len(body.DocumentTypes), body.Total)
	assert.Equal(t, models.EmploymentContract, body.DocumentTypes[0].DocumentType)
	for _, dt := range body.DocumentTypes {
		assert.NotEqual(t, models.UnknownDocument, dt.DocumentType)
	}
}

func TestStatutes(t *testing.T) {
	router := newTestRouter(t, "", 0)

	w := doJSON(t, router, http.MethodGet, "/statutes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	keys := decode[map[string][]string](t, w)["compliance_keys"]
	assert.Contains(t, keys, rules.KeyTermination)

	for _, key := range []string{rules.KeyTermination, "termination_letter"} {
		w = doJSON(t, router, http.MethodGet, "/statutes?key="+key, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Key          string                    `json:"key"`
			Requirements []models.LegalRequirement `json:"requirements"`
			RelevantActs []string                  `json:"relevant_acts"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, rules.KeyTermination, body.Key)
		assert.NotEmpty(t, body.Requirements)
		assert.Contains(t, body.RelevantActs, rules.ActUnfairDismissals)
	}

	w = doJSON(t, router, http.MethodGet, "/statutes?key=maternity", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchStatutes(t *testing.T) {
	t.Run("missing query", func(t *testing.T) {
		router := newTestRouter(t, "", 0)
		w := doJSON(t, router, http.MethodGet, "/statutes/search", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no index", func(t *testing.T) {
		router := newTestRouter(t, "", 0)
		w := doJSON(t, router, http.MethodGet, "/statutes/search?q=notice", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("hits", func(t *testing.T) {
		es := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Elastic-Product", "Elasticsearch")
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"hits":{"hits":[{"_id":"termination-0","_score":2,"_source":{"compliance_key":"termination","description":"Minimum notice periods"}}]}}`)
		}))
		defer es.Close()

		router := newTestRouter(t, es.URL, 0)
		w := doJSON(t, router, http.MethodGet, "/statutes/search?q=notice", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Results []service.StatuteHit `json:"results"`
			Total   int                  `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, 1, body.Total)
		assert.Equal(t, "termination-0", body.Results[0].ID)
		assert.Equal(t, "Minimum notice periods", body.Results[0].Doc.Description)
	})
}

func TestNoticePeriod(t *testing.T) {
	router := newTestRouter(t, "", 0)

	tests := []struct {
		query      string
		wantStatus int
		wantNotice string
	}{
		{"years=0", http.StatusOK, "1 week"},
		{"years=3.5", http.StatusOK, "2 weeks"},
		{"years=15", http.StatusOK, "8 weeks"},
		{"years=-1", http.StatusBadRequest, ""},
		{"years=abc", http.StatusBadRequest, ""},
		{"years=NaN", http.StatusBadRequest, ""},
		{"", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, "/notice-period?"+tt.query, nil)
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantNotice != "" {
				var body struct {
					Required string `json:"required_notice"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.wantNotice, body.Required)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(service.ErrEmptyUpload))
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusFor(service.ErrFileTooLarge))
	assert.Equal(t, http.StatusUnsupportedMediaType, statusFor(service.ErrUnsupportedFileType))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(service.ErrNoText))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(service.ErrIndexUnavailable))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
