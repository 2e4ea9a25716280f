package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Itish41/ClauseGuard/models"
	"github.com/Itish41/ClauseGuard/rules"
)

func newTestTextAnalyzer(window int) *TextAnalyzer {
	return NewTextAnalyzer(NewKeywordDatabase(rules.Default()), window)
}

func findingsIn(findings []models.Finding, category string) []models.Finding {
	var out []models.Finding
	for _, f := range findings {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

func TestAnalyzeMonetaryValue(t *testing.T) {
	findings, groups := newTestTextAnalyzer(50).Analyze("€50,000", models.UnknownDocument)

	require.Len(t, findings, 1)
	assert.Equal(t, "€50,000", findings[0].Keyword)
	assert.Equal(t, models.RiskMedium, findings[0].RiskLevel)
	assert.Equal(t, CategoryMonetary, findings[0].Category)
	assert.Equal(t, 1, findings[0].Occurrences)

	require.Len(t, groups, 1)
	assert.Equal(t, CategoryMonetary, groups[0].Category)
}

func TestAnalyzeEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t  \n"} {
		findings, groups := newTestTextAnalyzer(50).Analyze(text, models.UnknownDocument)
		assert.NotNil(t, findings)
		assert.Empty(t, findings)
		assert.NotNil(t, groups)
		assert.Empty(t, groups)
	}
}

func TestAnalyzeKeywordOccurrences(t *testing.T) {
	text := strings.Repeat("termination ", 300)
	findings, _ := newTestTextAnalyzer(50).Analyze(text, models.TerminationLetter)

	keyword := findingsIn(findings, "Employment Termination")
	require.Len(t, keyword, 1)
	assert.Equal(t, "termination", keyword[0].Keyword)
	assert.Equal(t, models.RiskHigh, keyword[0].RiskLevel)
	assert.Equal(t, 300, keyword[0].Occurrences)
	assert.Equal(t, 1.0, keyword[0].Confidence)
}

func TestAnalyzeStages(t *testing.T) {
	text := "Under Section 5 of the Act, SALARY is reviewed on 12/03/2024. " +
		"The employee must return all property by 1 March 2025. Overtime is paid at EUR 25.50 per hour."
	findings, groups := newTestTextAnalyzer(10).Analyze(text, models.EmploymentContract)

	// keyword findings come first, then legal references, dates, money and clauses
	var categories []string
	for _, g := range groups {
		categories = append(categories, g.Category)
	}
	assert.Equal(t, []string{
		"Compensation",
		"Working Hours",
		CategoryLegalReferences,
		CategoryDates,
		CategoryMonetary,
		CategoryClauses,
	}, categories)

	legal := findingsIn(findings, CategoryLegalReferences)
	require.Len(t, legal, 1)
	assert.Equal(t, "section 5", legal[0].Keyword)
	assert.Equal(t, models.RiskMedium, legal[0].RiskLevel)

	dates := findingsIn(findings, CategoryDates)
	require.Len(t, dates, 2)
	assert.Equal(t, "12/03/2024", dates[0].Keyword)
	assert.Equal(t, "1 march 2025", dates[1].Keyword)
	assert.Equal(t, models.RiskLow, dates[0].RiskLevel)

	money := findingsIn(findings, CategoryMonetary)
	require.Len(t, money, 1)
	assert.Equal(t, "eur 25.50", money[0].Keyword)

	clauses := findingsIn(findings, CategoryClauses)
	require.Len(t, clauses, 1)
	assert.Equal(t, "must", clauses[0].Keyword)
	assert.Equal(t, "the employee must return all property by 1 march 2025", clauses[0].Context)
}

func TestAnalyzeUnknownWordsNotFlagged(t *testing.T) {
	findings, _ := newTestTextAnalyzer(50).Analyze("Lorem ipsum dolor sit amet", models.UnknownDocument)
	assert.Empty(t, findings)
}

func TestContextWindow(t *testing.T) {
	tests := []struct {
		name   string
		window int
		text   string
		want   string
	}{
		{
			name:   "clipped to window",
			window: 5,
			text:   "aaaaaaaaaa termination bbbbbbbbbb",
			want:   "...aaaa termination bbbb...",
		},
		{
			name:   "window larger than text",
			window: 50,
			text:   "a termination",
			want:   "...a termination...",
		},
		{
			name:   "multi-byte runes are not split",
			window: 2,
			text:   "éééé termination",
			want:   "...é termination...",
		},
		{
			name:   "zero window",
			window: 0,
			text:   "the termination",
			want:   "...termination...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings, _ := newTestTextAnalyzer(tt.window).Analyze(tt.text, models.UnknownDocument)
			require.NotEmpty(t, findings)
			assert.Equal(t, tt.want, findings[0].Context)
		})
	}
}

func TestKeywordDatabaseLookup(t *testing.T) {
	db := NewKeywordDatabase(rules.Default())

	info, ok := db.Lookup("  Termination ")
	require.True(t, ok)
	assert.Equal(t, models.RiskHigh, info.Risk)
	assert.Equal(t, "Employment Termination", info.Category)

	_, ok = db.Lookup("holiday")
	assert.False(t, ok)
	assert.Equal(t, len(rules.Default().Keywords()), db.Len())
}
