package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Itish41/ClauseGuard/rules"
)

type fakeES struct {
	mu      sync.Mutex
	docs    map[string]StatuteDocument
	queries []map[string]any
	failIdx bool
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case strings.HasPrefix(r.URL.Path, "/statutes/_doc/"):
		if f.failIdx {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"error":"boom"}`)
			return
		}
		var doc StatuteDocument
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/statutes/_doc/")
		f.docs[id] = doc
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"result":"created","_id":"`+id+`"}`)

	case r.URL.Path == "/statutes/_search":
		var q map[string]any
		json.NewDecoder(r.Body).Decode(&q)
		f.queries = append(f.queries, q)
		doc, _ := json.Marshal(f.docs["termination-0"])
		io.WriteString(w, `{"hits":{"hits":[{"_id":"termination-0","_score":3.5,"_source":`+string(doc)+`}]}}`)

	default:
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{}`)
	}
}

func newFakeES() *fakeES { return &fakeES{docs: make(map[string]StatuteDocument)} }

func TestStatuteIndex_IndexAndSearch(t *testing.T) {
	es := newFakeES()
	srv := httptest.NewServer(es)
	defer srv.Close()

	idx, err := NewStatuteIndex(srv.URL, nil)
	require.NoError(t, err)
	assert.True(t, idx.Available())

	rb := rules.Default()
	n, err := idx.IndexRulebook(context.Background(), rb)
	require.NoError(t, err)

	want := 0
	for _, key := range rb.ComplianceKeys() {
		want += len(rb.Requirements(key))
	}
	assert.Equal(t, want, n)
	assert.Len(t, es.docs, want)

	first := rb.Requirements(rules.KeyTermination)[0]
	doc, ok := es.docs["termination-0"]
	require.True(t, ok)
	assert.Equal(t, rules.KeyTermination, doc.ComplianceKey)
	assert.Equal(t, first.Description, doc.Description)
	assert.Equal(t, first.Checklist, doc.Checklist)
	assert.Equal(t, first.PrimaryAct(), doc.Acts[0])

	hits, err := idx.Search(context.Background(), "appeal rights")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "termination-0", hits[0].ID)
	assert.Equal(t, 3.5, hits[0].Score)
	assert.Equal(t, first.Description, hits[0].Doc.Description)

	require.Len(t, es.queries, 1)
	mm := es.queries[0]["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "appeal rights", mm["query"])
}

func TestStatuteIndex_IndexFailure(t *testing.T) {
	es := newFakeES()
	es.failIdx = true
	srv := httptest.NewServer(es)
	defer srv.Close()

	idx, err := NewStatuteIndex(srv.URL, nil)
	require.NoError(t, err)

	n, err := idx.IndexRulebook(context.Background(), rules.Default())
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Contains(t, err.Error(), "elasticsearch indexing failed")
}

func TestStatuteIndex_Unavailable(t *testing.T) {
	idx, err := NewStatuteIndex("", nil)
	require.NoError(t, err)
	assert.False(t, idx.Available())

	_, err = idx.IndexRulebook(context.Background(), rules.Default())
	assert.ErrorIs(t, err, ErrIndexUnavailable)

	_, err = idx.Search(context.Background(), "notice")
	assert.ErrorIs(t, err, ErrIndexUnavailable)

	var nilIdx *StatuteIndex
	assert.False(t, nilIdx.Available())
}
