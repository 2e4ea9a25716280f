package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/Itish41/ClauseGuard/rules"
)

const statuteIndexName = "statutes"

// StatuteDocument is the indexed form of one statutory requirement.
type StatuteDocument struct {
	ComplianceKey string   `json:"compliance_key"`
	Position      int      `json:"position"`
	Description   string   `json:"description"`
	Acts          []string `json:"acts"`
	Sections      []string `json:"sections"`
	Category      string   `json:"category"`
	Mandatory     bool     `json:"mandatory"`
	Penalties     string   `json:"penalties,omitempty"`
	Checklist     []string `json:"checklist"`
}

type StatuteHit struct {
	ID    string          `json:"id"`
	Score float64         `json:"score"`
	Doc   StatuteDocument `json:"statute"`
}

// StatuteIndex is a full-text index over the statutory requirement table. A
// zero-config index (no Elasticsearch URL) answers every call with
// ErrIndexUnavailable.
type StatuteIndex struct {
	esClient *elasticsearch.Client
	logger   *slog.Logger
}

func NewStatuteIndex(esURL string, logger *slog.Logger) (*StatuteIndex, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if esURL == "" {
		return &StatuteIndex{logger: logger}, nil
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{esURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	return &StatuteIndex{esClient: client, logger: logger}, nil
}

func (i *StatuteIndex) Available() bool { return i != nil && i.esClient != nil }

// IndexRulebook writes every statutory requirement under id "<key>-<position>"
// and returns how many were indexed.
func (i *StatuteIndex) IndexRulebook(ctx context.Context, rb *rules.Rulebook) (int, error) {
	if !i.Available() {
		return 0, ErrIndexUnavailable
	}

	indexed := 0
	for _, key := range rb.ComplianceKeys() {
		for pos, req := range rb.Requirements(key) {
			doc := StatuteDocument{
				ComplianceKey: key,
				Position:      pos,
				Description:   req.Description,
				Acts:          []string{},
				Sections:      []string{},
				Category:      req.Category,
				Mandatory:     req.Mandatory,
				Penalties:     req.Penalties,
				Checklist:     req.Checklist,
			}
			for _, ref := range req.References {
				doc.Acts = append(doc.Acts, ref.Act)
				doc.Sections = append(doc.Sections, ref.Section)
			}

			body, err := json.Marshal(doc)
			if err != nil {
				return indexed, fmt.Errorf("failed to marshal statute for indexing: %w", err)
			}

			res, err := i.esClient.Index(
				statuteIndexName,
				bytes.NewReader(body),
				i.esClient.Index.WithDocumentID(fmt.Sprintf("%s-%d", key, pos)),
				i.esClient.Index.WithContext(ctx),
			)
			if err != nil {
				return indexed, fmt.Errorf("index statute %s-%d: %w", key, pos, err)
			}
			isErr, status := res.IsError(), res.String()
			res.Body.Close()
			if isErr {
				return indexed, fmt.Errorf("elasticsearch indexing failed: %s", status)
			}
			indexed++
		}
	}

	i.logger.Info("statutes indexed", "index", statuteIndexName, "count", indexed)
	return indexed, nil
}

type statuteSearchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string          `json:"_id"`
			Score  float64         `json:"_score"`
			Source StatuteDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a multi_match query over description, acts, checklist and category.
func (i *StatuteIndex) Search(ctx context.Context, query string) ([]StatuteHit, error) {
	if !i.Available() {
		return nil, ErrIndexUnavailable
	}

	searchQuery := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"description^2", "acts", "checklist", "category"},
			},
		},
	}
	body, err := json.Marshal(searchQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := i.esClient.Search(
		i.esClient.Search.WithContext(ctx),
		i.esClient.Search.WithIndex(statuteIndexName),
		i.esClient.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search failed: %s", res.String())
	}

	var parsed statuteSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	hits := make([]StatuteHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, StatuteHit{ID: h.ID, Score: h.Score, Doc: h.Source})
	}
	return hits, nil
}
