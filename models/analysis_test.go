package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDocumentType(t *testing.T) {
	tests := []struct {
		in     string
		want   DocumentType
		wantOK bool
	}{
		{"EMPLOYMENT_CONTRACT", EmploymentContract, true},
		{" termination_letter ", TerminationLetter, true},
		{"Health_Safety", HealthSafety, true},
		{"unknown", UnknownDocument, true},
		{"contract", UnknownDocument, false},
		{"", UnknownDocument, false},
	}
	for _, tt := range tests {
		got, ok := ParseDocumentType(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestDocumentTypeOrdinal(t *testing.T) {
	assert.Equal(t, 0, EmploymentContract.Ordinal())
	assert.Equal(t, 2, TerminationLetter.Ordinal())
	assert.Equal(t, len(DocumentTypes)-1, UnknownDocument.Ordinal())
	assert.Equal(t, len(DocumentTypes), DocumentType("MEMO").Ordinal())
}

func TestRiskLevel(t *testing.T) {
	assert.Less(t, RiskLow.Rank(), RiskMedium.Rank())
	assert.Less(t, RiskMedium.Rank(), RiskHigh.Rank())
	assert.Equal(t, RiskLow.Rank(), RiskLevel("SEVERE").Rank())

	lvl, ok := ParseRiskLevel("high")
	assert.True(t, ok)
	assert.Equal(t, RiskHigh, lvl)

	lvl, ok = ParseRiskLevel("severe")
	assert.False(t, ok)
	assert.Equal(t, RiskLow, lvl)
}

func TestGroupFindings(t *testing.T) {
	findings := []Finding{
		{Keyword: "termination", Category: "Employment Termination"},
		{Keyword: "section 6", Category: "Legal References"},
		{Keyword: "dismissal", Category: "Employment Termination"},
		{Keyword: "12/03/2024", Category: "Dates and Deadlines"},
	}

	groups := GroupFindings(findings)
	assert.Equal(t, []CategoryGroup{
		{Category: "Employment Termination", Findings: []Finding{findings[0], findings[2]}},
		{Category: "Legal References", Findings: []Finding{findings[1]}},
		{Category: "Dates and Deadlines", Findings: []Finding{findings[3]}},
	}, groups)

	assert.Equal(t, []CategoryGroup{}, GroupFindings(nil))
}

func TestPrimaryAct(t *testing.T) {
	assert.Equal(t, "", LegalRequirement{}.PrimaryAct())
	req := LegalRequirement{References: []LegalReference{{Act: "Unfair Dismissals Acts 1977-2015"}, {Act: "Other"}}}
	assert.Equal(t, "Unfair Dismissals Acts 1977-2015", req.PrimaryAct())
}
