package analyzer

import (
	"regexp"
	"strings"

	"github.com/Itish41/ClauseGuard/models"
	"github.com/Itish41/ClauseGuard/rules"
)

var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// Classifier infers a DocumentType from weighted keyword counts.
type Classifier struct {
	patterns []rules.ClassifierPattern
}

func NewClassifier(rb *rules.Rulebook) *Classifier {
	patterns := rb.Patterns()
	for i := range patterns {
		for j, kw := range patterns[i].Keywords {
			patterns[i].Keywords[j] = normalizeForClassification(kw)
		}
	}
	return &Classifier{patterns: patterns}
}

// Classify returns the type with the strictly highest score. An exact tie goes
// to the type declared first in models.DocumentTypes; a text that scores zero
// for every type is UNKNOWN.
func (c *Classifier) Classify(text string) models.DocumentType {
	best := models.UnknownDocument
	bestScore := 0.0
	for _, s := range c.scores(normalizeForClassification(text)) {
		if s.score > bestScore {
			best = s.docType
			bestScore = s.score
		}
	}
	return best
}

// Confidence normalises the positive scores so they sum to 1. When nothing
// scores it returns {UNKNOWN: 1}.
func (c *Classifier) Confidence(text string) map[models.DocumentType]float64 {
	scores := c.scores(normalizeForClassification(text))
	total := 0.0
	for _, s := range scores {
		total += s.score
	}
	if total <= 0 {
		return map[models.DocumentType]float64{models.UnknownDocument: 1.0}
	}
	out := make(map[models.DocumentType]float64)
	for _, s := range scores {
		if s.score > 0 {
			out[s.docType] = s.score / total
		}
	}
	return out
}

type typeScore struct {
	docType models.DocumentType
	score   float64
}

// scores are returned in declaration order.
func (c *Classifier) scores(normalized string) []typeScore {
	out := make([]typeScore, 0, len(c.patterns))
	for _, p := range c.patterns {
		score := 0.0
		for _, kw := range p.Keywords {
			if kw == "" {
				continue
			}
			score += float64(strings.Count(normalized, kw)) * p.Weight
		}
		out = append(out, typeScore{docType: p.Type, score: score})
	}
	return out
}

func normalizeForClassification(text string) string {
	text = strings.Join(strings.Fields(strings.ToLower(text)), " ")
	return nonWordPattern.ReplaceAllString(text, "")
}
