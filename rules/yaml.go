package rules

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Itish41/ClauseGuard/models"
)

// document is the YAML layout of a rulebook file. Sections left out of the file
// keep their built-in defaults.
type document struct {
	Keywords       []models.KeywordInfo                 `yaml:"keywords"`
	Classifier     []ClassifierPattern                  `yaml:"classifier"`
	Requirements   map[string]models.RequirementSpec    `yaml:"requirements"`
	Statutes       map[string][]models.LegalRequirement `yaml:"statutes"`
	ComplianceKeys map[string]string                    `yaml:"compliance_keys"`
}

// Decode reads a YAML rulebook.
func Decode(r io.Reader) (*Rulebook, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decode yaml: %w", ErrInvalidRulebook, err)
	}

	tables := DefaultTables()
	if len(doc.Keywords) > 0 {
		tables.Keywords = doc.Keywords
	}
	if len(doc.Classifier) > 0 {
		tables.Patterns = doc.Classifier
	}
	if len(doc.Requirements) > 0 {
		specs, err := byDocumentType(doc.Requirements)
		if err != nil {
			return nil, err
		}
		tables.Specs = specs
	}
	if len(doc.Statutes) > 0 {
		tables.Statutes = doc.Statutes
	}
	if len(doc.ComplianceKeys) > 0 {
		keys, err := byDocumentType(doc.ComplianceKeys)
		if err != nil {
			return nil, err
		}
		tables.ComplianceKeys = keys
	}

	return New(tables)
}

// LoadFile decodes the YAML rulebook at path.
func LoadFile(path string) (*Rulebook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rulebook %s: %w", path, err)
	}
	defer f.Close()

	rb, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load rulebook %s: %w", path, err)
	}
	return rb, nil
}

// Encode writes the rulebook as YAML in the layout Decode accepts.
func Encode(w io.Writer, rb *Rulebook) error {
	t := rb.Tables()
	doc := document{
		Keywords:       t.Keywords,
		Classifier:     t.Patterns,
		Requirements:   make(map[string]models.RequirementSpec, len(t.Specs)),
		Statutes:       t.Statutes,
		ComplianceKeys: make(map[string]string, len(t.ComplianceKeys)),
	}
	for dt, spec := range t.Specs {
		doc.Requirements[string(dt)] = spec
	}
	for dt, key := range t.ComplianceKeys {
		doc.ComplianceKeys[string(dt)] = key
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode rulebook: %w", err)
	}
	return enc.Close()
}

func byDocumentType[V any](in map[string]V) (map[models.DocumentType]V, error) {
	out := make(map[models.DocumentType]V, len(in))
	for name, v := range in {
		dt, ok := models.ParseDocumentType(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentType, name)
		}
		out[dt] = v
	}
	return out, nil
}
