package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Itish41/ClauseGuard/models"
)

// Finding categories produced by the pattern stages.
const (
	CategoryLegalReferences = "Legal References"
	CategoryDates           = "Dates and Deadlines"
	CategoryMonetary        = "Monetary Values"
	CategoryClauses         = "Contractual Clauses"
)

const defaultContextWindow = 50

var (
	// Everything outside letters, digits, whitespace, sentence punctuation and
	// the symbols used by dates and amounts is dropped before analysis.
	analysisStripPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s.!?,;:/'€$£-]`)
	sentenceEndPattern   = regexp.MustCompile(`[.!?]+`)

	legalReferencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)section\s+\d+`),
		regexp.MustCompile(`(?i)article\s+\d+`),
		regexp.MustCompile(`(?i)act\s+of\s+\d{4}`),
		regexp.MustCompile(`(?i)regulation\s+\d+`),
	}

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
		regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`),
		regexp.MustCompile(`(?i)\d{1,2}\s+(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4}`),
	}

	monetaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[€$£]\s*\d+(?:,\d{3})*(?:\.\d{2})?`),
		regexp.MustCompile(`(?i)\beur\s*\d+(?:,\d{3})*(?:\.\d{2})?`),
		regexp.MustCompile(`(?i)\d+(?:,\d{3})*(?:\.\d{2})?\s*euros?`),
	}

	clauseIndicators = []string{
		"hereby agrees",
		"shall be",
		"must",
		"will not",
		"is prohibited",
		"is required",
	}
)

// TextAnalyzer extracts findings from document text: risk keywords, legal
// references, dates, monetary amounts and clause sentences.
type TextAnalyzer struct {
	keywords      *KeywordDatabase
	contextWindow int
}

func NewTextAnalyzer(keywords *KeywordDatabase, contextWindow int) *TextAnalyzer {
	if contextWindow < 0 {
		contextWindow = defaultContextWindow
	}
	return &TextAnalyzer{keywords: keywords, contextWindow: contextWindow}
}

// Analyze returns findings in discovery order together with their grouping by
// category. The document type is accepted for future type-specific stages and
// does not change the output today.
func (a *TextAnalyzer) Analyze(text string, _ models.DocumentType) ([]models.Finding, []models.CategoryGroup) {
	normalized := normalizeForAnalysis(text)
	findings := []models.Finding{}
	if normalized == "" {
		return findings, models.GroupFindings(findings)
	}

	findings = append(findings, a.keywordFindings(normalized)...)
	findings = append(findings, a.patternFindings(normalized, legalReferencePatterns, models.RiskMedium, CategoryLegalReferences)...)
	findings = append(findings, a.patternFindings(normalized, datePatterns, models.RiskLow, CategoryDates)...)
	findings = append(findings, a.patternFindings(normalized, monetaryPatterns, models.RiskMedium, CategoryMonetary)...)
	findings = append(findings, clauseFindings(splitSentences(normalized))...)

	return findings, models.GroupFindings(findings)
}

func (a *TextAnalyzer) keywordFindings(text string) []models.Finding {
	var out []models.Finding
	periodSentences := strings.Split(text, ".")

	a.keywords.each(func(kw models.KeywordInfo) {
		count := strings.Count(text, kw.Keyword)
		inSentences := 0
		for _, s := range periodSentences {
			if strings.Contains(s, kw.Keyword) {
				inSentences++
			}
		}
		occurrences := max(count, inSentences)
		if occurrences == 0 {
			return
		}

		context := ""
		if at := strings.Index(text, kw.Keyword); at >= 0 {
			context = a.window(text, at, at+len(kw.Keyword))
		}
		out = append(out, models.Finding{
			Keyword:     kw.Keyword,
			RiskLevel:   kw.Risk,
			Category:    kw.Category,
			Occurrences: occurrences,
			Context:     context,
			Confidence:  kw.Weight,
		})
	})
	return out
}

func (a *TextAnalyzer) patternFindings(text string, patterns []*regexp.Regexp, risk models.RiskLevel, category string) []models.Finding {
	var out []models.Finding
	for _, p := range patterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			out = append(out, models.Finding{
				Keyword:     text[loc[0]:loc[1]],
				RiskLevel:   risk,
				Category:    category,
				Occurrences: 1,
				Context:     a.window(text, loc[0], loc[1]),
			})
		}
	}
	return out
}

func clauseFindings(sentences []string) []models.Finding {
	var out []models.Finding
	for _, sentence := range sentences {
		for _, indicator := range clauseIndicators {
			if !strings.Contains(sentence, indicator) {
				continue
			}
			out = append(out, models.Finding{
				Keyword:     indicator,
				RiskLevel:   models.RiskLow,
				Category:    CategoryClauses,
				Occurrences: 1,
				Context:     sentence,
			})
		}
	}
	return out
}

// window returns text[start:end] widened by contextWindow runes on each side
// and wrapped in ellipses.
func (a *TextAnalyzer) window(text string, start, end int) string {
	from := start
	for i := 0; i < a.contextWindow && from > 0; i++ {
		_, w := utf8.DecodeLastRuneInString(text[:from])
		from -= w
	}
	to := end
	for i := 0; i < a.contextWindow && to < len(text); i++ {
		_, w := utf8.DecodeRuneInString(text[to:])
		to += w
	}
	return "..." + text[from:to] + "..."
}

func normalizeForAnalysis(text string) string {
	text = strings.Join(strings.Fields(strings.ToLower(text)), " ")
	return analysisStripPattern.ReplaceAllString(text, "")
}

func splitSentences(text string) []string {
	parts := sentenceEndPattern.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
