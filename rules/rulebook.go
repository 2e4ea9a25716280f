// Package rules holds the static rule tables consumed by the analyzer: the risk
// keyword table, classifier patterns, per-type requirement specs and the
// statutory requirement table. A Rulebook is built once at start-up and never
// mutated; every accessor returns copies.
package rules

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Itish41/ClauseGuard/models"
)

var (
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrInvalidRulebook     = errors.New("invalid rulebook")
)

// ClassifierPattern is the weighted keyword list for one document type.
type ClassifierPattern struct {
	Type     models.DocumentType `json:"document_type" yaml:"document_type"`
	Keywords []string            `json:"keywords" yaml:"keywords"`
	Weight   float64             `json:"weight" yaml:"weight"`
}

// Tables is the mutable input used to assemble a Rulebook.
type Tables struct {
	Keywords       []models.KeywordInfo
	Patterns       []ClassifierPattern
	Specs          map[models.DocumentType]models.RequirementSpec
	Statutes       map[string][]models.LegalRequirement
	ComplianceKeys map[models.DocumentType]string
}

// Rulebook is the read-only rule set. It is safe for concurrent use.
type Rulebook struct {
	keywords       []models.KeywordInfo
	keywordIndex   map[string]int
	patterns       map[models.DocumentType]ClassifierPattern
	specs          map[models.DocumentType]models.RequirementSpec
	statutes       map[string][]models.LegalRequirement
	complianceKeys map[models.DocumentType]string
}

// New validates and normalises the tables and returns a Rulebook that shares no
// memory with them.
func New(t Tables) (*Rulebook, error) {
	rb := &Rulebook{
		keywordIndex:   make(map[string]int),
		patterns:       make(map[models.DocumentType]ClassifierPattern),
		specs:          make(map[models.DocumentType]models.RequirementSpec),
		statutes:       make(map[string][]models.LegalRequirement),
		complianceKeys: make(map[models.DocumentType]string),
	}

	for _, kw := range t.Keywords {
		key := normalizeKeyword(kw.Keyword)
		if key == "" {
			return nil, fmt.Errorf("%w: empty keyword", ErrInvalidRulebook)
		}
		if _, dup := rb.keywordIndex[key]; dup {
			return nil, fmt.Errorf("%w: duplicate keyword %q", ErrInvalidRulebook, key)
		}
		risk, ok := models.ParseRiskLevel(string(kw.Risk))
		if !ok {
			return nil, fmt.Errorf("%w: keyword %q has risk %q", ErrInvalidRulebook, key, kw.Risk)
		}
		kw.Keyword = key
		kw.Risk = risk
		if kw.Weight == 0 {
			kw.Weight = 1.0
		}
		rb.keywordIndex[key] = len(rb.keywords)
		rb.keywords = append(rb.keywords, kw)
	}

	for _, p := range t.Patterns {
		dt, err := canonicalType(p.Type)
		if err != nil {
			return nil, err
		}
		if p.Weight <= 0 {
			return nil, fmt.Errorf("%w: classifier weight for %s must be positive", ErrInvalidRulebook, dt)
		}
		rb.patterns[dt] = ClassifierPattern{
			Type:     dt,
			Keywords: normalizeList(p.Keywords),
			Weight:   p.Weight,
		}
	}

	for raw, spec := range t.Specs {
		dt, err := canonicalType(raw)
		if err != nil {
			return nil, err
		}
		if spec.MinContentLength < 0 || spec.MaxContentLength < 0 {
			return nil, fmt.Errorf("%w: negative content length bound for %s", ErrInvalidRulebook, dt)
		}
		if spec.MaxContentLength > 0 && spec.MaxContentLength < spec.MinContentLength {
			return nil, fmt.Errorf("%w: max content length below min for %s", ErrInvalidRulebook, dt)
		}
		rb.specs[dt] = copySpec(spec)
	}

	for key, reqs := range t.Statutes {
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%w: empty compliance key", ErrInvalidRulebook)
		}
		rb.statutes[key] = copyRequirements(reqs)
	}

	for raw, key := range t.ComplianceKeys {
		dt, err := canonicalType(raw)
		if err != nil {
			return nil, err
		}
		rb.complianceKeys[dt] = strings.TrimSpace(key)
	}

	return rb, nil
}

func canonicalType(raw models.DocumentType) (models.DocumentType, error) {
	dt, ok := models.ParseDocumentType(string(raw))
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDocumentType, raw)
	}
	return dt, nil
}

// Keywords returns the keyword table in declaration order.
func (rb *Rulebook) Keywords() []models.KeywordInfo {
	out := make([]models.KeywordInfo, len(rb.keywords))
	copy(out, rb.keywords)
	return out
}

// Keyword looks a keyword up case-insensitively.
func (rb *Rulebook) Keyword(keyword string) (models.KeywordInfo, bool) {
	i, ok := rb.keywordIndex[normalizeKeyword(keyword)]
	if !ok {
		return models.KeywordInfo{}, false
	}
	return rb.keywords[i], true
}

// Patterns returns the classifier patterns in DocumentType declaration order.
func (rb *Rulebook) Patterns() []ClassifierPattern {
	out := make([]ClassifierPattern, 0, len(rb.patterns))
	for _, dt := range models.DocumentTypes {
		p, ok := rb.patterns[dt]
		if !ok {
			continue
		}
		p.Keywords = append([]string(nil), p.Keywords...)
		out = append(out, p)
	}
	return out
}

// Spec returns the requirement spec for a type. Unmapped types get an empty spec
// with no clauses, no length bounds and a multiplier of 1.
func (rb *Rulebook) Spec(dt models.DocumentType) models.RequirementSpec {
	spec, ok := rb.specs[dt]
	if !ok {
		return models.RequirementSpec{RiskMultiplier: 1.0}
	}
	return copySpec(spec)
}

// HasSpec reports whether the type has an explicit requirement spec.
func (rb *Rulebook) HasSpec(dt models.DocumentType) bool {
	_, ok := rb.specs[dt]
	return ok
}

// Requirements returns the statutory requirements for a compliance key in table
// order; unknown keys return an empty list.
func (rb *Rulebook) Requirements(key string) []models.LegalRequirement {
	return copyRequirements(rb.statutes[key])
}

// ComplianceKey maps a document type to its statutory table key ("" if none).
func (rb *Rulebook) ComplianceKey(dt models.DocumentType) string {
	return rb.complianceKeys[dt]
}

// ComplianceKeys lists the statutory table keys in sorted order.
func (rb *Rulebook) ComplianceKeys() []string {
	keys := make([]string, 0, len(rb.statutes))
	for k := range rb.statutes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RelevantActs returns the distinct acts referenced under a compliance key, sorted.
func (rb *Rulebook) RelevantActs(key string) []string {
	seen := make(map[string]struct{})
	acts := []string{}
	for _, req := range rb.statutes[key] {
		for _, ref := range req.References {
			if _, ok := seen[ref.Act]; ok {
				continue
			}
			seen[ref.Act] = struct{}{}
			acts = append(acts, ref.Act)
		}
	}
	sort.Strings(acts)
	return acts
}

// Tables returns a deep copy of the rulebook contents.
func (rb *Rulebook) Tables() Tables {
	t := Tables{
		Keywords:       rb.Keywords(),
		Patterns:       rb.Patterns(),
		Specs:          make(map[models.DocumentType]models.RequirementSpec, len(rb.specs)),
		Statutes:       make(map[string][]models.LegalRequirement, len(rb.statutes)),
		ComplianceKeys: make(map[models.DocumentType]string, len(rb.complianceKeys)),
	}
	for dt, spec := range rb.specs {
		t.Specs[dt] = copySpec(spec)
	}
	for key, reqs := range rb.statutes {
		t.Statutes[key] = copyRequirements(reqs)
	}
	for dt, key := range rb.complianceKeys {
		t.ComplianceKeys[dt] = key
	}
	return t
}

func normalizeKeyword(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := normalizeKeyword(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func copySpec(s models.RequirementSpec) models.RequirementSpec {
	s.RequiredClauses = append([]string{}, s.RequiredClauses...)
	s.RecommendedClauses = append([]string{}, s.RecommendedClauses...)
	s.RequiredSections = append([]string{}, s.RequiredSections...)
	s.Keywords = append([]string{}, s.Keywords...)
	if s.RiskMultiplier == 0 {
		s.RiskMultiplier = 1.0
	}
	return s
}

func copyRequirements(in []models.LegalRequirement) []models.LegalRequirement {
	out := make([]models.LegalRequirement, len(in))
	for i, req := range in {
		req.References = append([]models.LegalReference{}, req.References...)
		req.Checklist = append([]string{}, req.Checklist...)
		out[i] = req
	}
	return out
}
