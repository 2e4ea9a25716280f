package rules

import (
	"time"

	"github.com/Itish41/ClauseGuard/models"
)

// Irish employment statutes referenced by the default tables.
const (
	ActUnfairDismissals   = "Unfair Dismissals Acts 1977-2015"
	ActEmploymentEquality = "Employment Equality Acts 1998-2015"
	ActWorkingTime        = "Organisation of Working Time Act 1997"
	ActTermsOfEmployment  = "Terms of Employment (Information) Acts 1994-2014"
	ActMinimumWage        = "National Minimum Wage Act 2000"
	ActMinimumNotice      = "Minimum Notice and Terms of Employment Act 1973"
	ActPaymentOfWages     = "Payment of Wages Act 1991"
	ActIndustrialRelation = "Industrial Relations Act 1990"
	ActSafetyHealth       = "Safety, Health and Welfare at Work Act 2005"
	ActDataProtection     = "Data Protection Act 2018"
)

// Compliance keys of the default statutory table.
const (
	KeyEmploymentContract = "employment_contract"
	KeyTermination        = "termination"
	KeyDisciplinary       = "disciplinary"
	KeyGrievance          = "grievance"
	KeyWorkplacePolicy    = "workplace_policy"
	KeyHealthSafety       = "health_safety"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Default returns the built-in rulebook.
func Default() *Rulebook {
	rb, err := New(DefaultTables())
	if err != nil {
		panic("rules: built-in tables are invalid: " + err.Error())
	}
	return rb
}

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() Tables {
	return Tables{
		Keywords:       defaultKeywords(),
		Patterns:       defaultPatterns(),
		Specs:          defaultSpecs(),
		Statutes:       defaultStatutes(),
		ComplianceKeys: defaultComplianceKeys(),
	}
}

func defaultKeywords() []models.KeywordInfo {
	return []models.KeywordInfo{
		{Keyword: "termination", Risk: models.RiskHigh, Category: "Employment Termination", Description: "Indicates potential employment termination issues", Weight: 1.0},
		{Keyword: "dismissal", Risk: models.RiskHigh, Category: "Employment Termination", Description: "Related to employee dismissal", Weight: 1.0},
		{Keyword: "redundancy", Risk: models.RiskHigh, Category: "Employment Termination", Description: "Related to redundancy situations", Weight: 1.0},
		{Keyword: "discrimination", Risk: models.RiskHigh, Category: "Discrimination", Description: "Potential discrimination issues", Weight: 1.0},
		{Keyword: "harassment", Risk: models.RiskHigh, Category: "Discrimination", Description: "Harassment or sexual harassment allegations", Weight: 1.0},
		{Keyword: "victimisation", Risk: models.RiskHigh, Category: "Discrimination", Description: "Penalisation for asserting statutory rights", Weight: 1.0},
		{Keyword: "bullying", Risk: models.RiskHigh, Category: "Workplace Conduct", Description: "Workplace bullying complaints", Weight: 1.0},
		{Keyword: "salary", Risk: models.RiskMedium, Category: "Compensation", Description: "Salary-related terms", Weight: 1.0},
		{Keyword: "deduction", Risk: models.RiskMedium, Category: "Compensation", Description: "Deductions from wages", Weight: 0.8, RequiresContext: true},
		{Keyword: "overtime", Risk: models.RiskMedium, Category: "Working Hours", Description: "Overtime arrangements", Weight: 1.0},
		{Keyword: "disciplinary", Risk: models.RiskMedium, Category: "Disciplinary Process", Description: "Disciplinary proceedings", Weight: 1.0},
		{Keyword: "misconduct", Risk: models.RiskMedium, Category: "Disciplinary Process", Description: "Alleged misconduct", Weight: 1.0},
		{Keyword: "non-compete", Risk: models.RiskMedium, Category: "Restrictive Covenants", Description: "Post-employment restraint of trade", Weight: 0.9, RequiresContext: true},
		{Keyword: "annual leave", Risk: models.RiskLow, Category: "Leave", Description: "Annual leave arrangements", Weight: 1.0},
		{Keyword: "sick leave", Risk: models.RiskLow, Category: "Leave", Description: "Sick leave arrangements", Weight: 1.0},
		{Keyword: "working hours", Risk: models.RiskLow, Category: "Working Time", Description: "Working hours arrangements", Weight: 1.0},
		{Keyword: "probation", Risk: models.RiskLow, Category: "Probation", Description: "Probationary period terms", Weight: 1.0},
		{Keyword: "confidentiality", Risk: models.RiskLow, Category: "Confidentiality", Description: "Confidentiality obligations", Weight: 1.0},
	}
}

func defaultPatterns() []ClassifierPattern {
	return []ClassifierPattern{
		{
			Type:     models.EmploymentContract,
			Keywords: []string{"employment contract", "contract of employment", "terms and conditions", "job description", "position", "salary", "working hours"},
			Weight:   1.5,
		},
		{
			Type:     models.DisciplinaryNotice,
			Keywords: []string{"disciplinary", "warning", "misconduct", "improvement required", "performance issues"},
			Weight:   1.2,
		},
		{
			Type:     models.TerminationLetter,
			Keywords: []string{"termination", "dismissal", "notice period", "redundancy", "end of employment"},
			Weight:   1.3,
		},
		{
			Type:     models.GrievanceLetter,
			Keywords: []string{"grievance", "formal complaint", "complain", "bullying", "harassment"},
			Weight:   1.2,
		},
		{
			Type:     models.WorkplacePolicy,
			Keywords: []string{"policy", "procedure", "guidelines", "handbook", "rules"},
			Weight:   1.0,
		},
		{
			Type:     models.HealthSafety,
			Keywords: []string{"health and safety", "safety statement", "risk assessment", "hazard", "personal protective equipment"},
			Weight:   1.3,
		},
	}
}

func defaultSpecs() map[models.DocumentType]models.RequirementSpec {
	return map[models.DocumentType]models.RequirementSpec{
		models.EmploymentContract: {
			RequiredClauses:    []string{"job title", "salary", "working hours", "annual leave", "notice period", "probation period"},
			RecommendedClauses: []string{"grievance procedure", "disciplinary procedure", "sick leave", "confidentiality"},
			RequiredSections:   []string{"terms and conditions", "compensation and benefits", "working hours and leave", "termination"},
			Keywords:           []string{"employment", "contract", "agreement", "position", "salary"},
			MinContentLength:   1000,
			MaxContentLength:   10000,
			RiskMultiplier:     1.5,
		},
		models.TerminationLetter: {
			RequiredClauses:    []string{"termination date", "notice period", "reason for termination", "final payment details"},
			RecommendedClauses: []string{"appeal rights", "return of company property", "reference provision"},
			RequiredSections:   []string{"notice of termination", "reason for termination", "final arrangements"},
			Keywords:           []string{"termination", "dismissal", "notice", "effective date"},
			MinContentLength:   300,
			MaxContentLength:   2000,
			RiskMultiplier:     2.0,
		},
		models.DisciplinaryNotice: {
			RequiredClauses:    []string{"alleged misconduct", "right to representation", "right of appeal"},
			RecommendedClauses: []string{"improvement plan", "review date"},
			RequiredSections:   []string{"details of the allegation", "next steps"},
			Keywords:           []string{"disciplinary", "hearing", "warning"},
			MinContentLength:   200,
			MaxContentLength:   3000,
			RiskMultiplier:     1.5,
		},
		models.GrievanceLetter: {
			RequiredClauses:    []string{"nature of the grievance", "date of incident"},
			RecommendedClauses: []string{"desired outcome", "witnesses"},
			Keywords:           []string{"grievance", "complaint"},
			MinContentLength:   150,
			MaxContentLength:   5000,
			RiskMultiplier:     1.2,
		},
		models.WorkplacePolicy: {
			RequiredClauses:    []string{"purpose", "scope", "responsibilities"},
			RecommendedClauses: []string{"review date", "contact person"},
			RequiredSections:   []string{"policy statement", "procedure"},
			Keywords:           []string{"policy", "procedure", "employees"},
			MinContentLength:   500,
			RiskMultiplier:     1.0,
		},
		models.HealthSafety: {
			RequiredClauses:    []string{"safety statement", "risk assessment", "reporting of accidents"},
			RecommendedClauses: []string{"first aid", "training"},
			RequiredSections:   []string{"hazard identification"},
			Keywords:           []string{"safety", "hazard", "risk"},
			MinContentLength:   500,
			RiskMultiplier:     1.8,
		},
	}
}

func defaultStatutes() map[string][]models.LegalRequirement {
	return map[string][]models.LegalRequirement{
		KeyEmploymentContract: {
			{
				Description: "Written statement of terms of employment",
				References: []models.LegalReference{{
					Act:           ActTermsOfEmployment,
					Section:       "Section 3",
					Description:   "Obligation to provide written statement",
					URL:           "http://www.irishstatutebook.ie/eli/1994/act/5/section/3",
					EffectiveDate: date(1994, time.May, 16),
				}},
				Mandatory: true,
				Penalties: "Up to 4 weeks' remuneration",
				Category:  "EMPLOYMENT",
				Checklist: []string{"job title", "salary", "working hours", "notice period"},
			},
			{
				Description: "Annual leave entitlement",
				References: []models.LegalReference{{
					Act:           ActWorkingTime,
					Section:       "Section 19",
					Description:   "Entitlement to annual leave",
					URL:           "http://www.irishstatutebook.ie/eli/1997/act/20/section/19",
					EffectiveDate: date(1997, time.September, 30),
				}},
				Mandatory: true,
				Penalties: "Up to 2 years' remuneration",
				Category:  "WORKING_TIME",
				Checklist: []string{"annual leave"},
			},
			{
				Description: "Pay at or above the national minimum wage",
				References: []models.LegalReference{{
					Act:           ActMinimumWage,
					Section:       "Section 14",
					Description:   "Entitlement to minimum hourly rate of pay",
					URL:           "http://www.irishstatutebook.ie/eli/2000/act/5/section/14",
					EffectiveDate: date(2000, time.April, 1),
				}},
				Mandatory: true,
				Penalties: "Arrears of pay and fines on summary conviction",
				Category:  "EMPLOYMENT",
				Checklist: []string{"salary"},
			},
		},
		KeyTermination: {
			{
				Description: "Minimum notice periods",
				References: []models.LegalReference{{
					Act:           ActMinimumNotice,
					Section:       "Section 4",
					Description:   "Minimum notice requirements",
					URL:           "http://www.irishstatutebook.ie/eli/1973/act/4/section/4",
					EffectiveDate: date(1973, time.January, 1),
				}},
				Mandatory: true,
				Penalties: "Compensation for loss of notice",
				Category:  "TERMINATION",
				Checklist: []string{"notice period", "termination date"},
			},
			{
				Description: "Fair procedures on dismissal",
				References: []models.LegalReference{{
					Act:           ActUnfairDismissals,
					Section:       "Section 6",
					Description:   "Dismissal deemed unfair unless substantial grounds justify it",
					URL:           "http://www.irishstatutebook.ie/eli/1977/act/10/section/6",
					EffectiveDate: date(1977, time.April, 9),
				}},
				Mandatory: true,
				Penalties: "Up to 2 years' remuneration",
				Category:  "TERMINATION",
				Checklist: []string{"reason for termination", "appeal rights"},
			},
			{
				Description: "Payment of final wages",
				References: []models.LegalReference{{
					Act:           ActPaymentOfWages,
					Section:       "Section 5",
					Description:   "Regulation of deductions and payment of wages",
					URL:           "http://www.irishstatutebook.ie/eli/1991/act/25/section/5",
					EffectiveDate: date(1991, time.July, 16),
				}},
				Mandatory: true,
				Penalties: "Repayment of unlawful deductions",
				Category:  "TERMINATION",
				Checklist: []string{"final payment"},
			},
		},
		KeyDisciplinary: {
			{
				Description: "Fair disciplinary procedures",
				References: []models.LegalReference{{
					Act:           ActIndustrialRelation,
					Section:       "Section 42",
					Description:   "Code of Practice on Grievance and Disciplinary Procedures (S.I. 146/2000)",
					URL:           "http://www.irishstatutebook.ie/eli/2000/si/146",
					EffectiveDate: date(2000, time.May, 26),
				}},
				Mandatory: true,
				Penalties: "Procedural unfairness findings at the Workplace Relations Commission",
				Category:  "EMPLOYMENT",
				Checklist: []string{"right to representation", "right of appeal"},
			},
		},
		KeyGrievance: {
			{
				Description: "Grievance handling procedure",
				References: []models.LegalReference{{
					Act:           ActIndustrialRelation,
					Section:       "Section 42",
					Description:   "Code of Practice on Grievance and Disciplinary Procedures (S.I. 146/2000)",
					URL:           "http://www.irishstatutebook.ie/eli/2000/si/146",
					EffectiveDate: date(2000, time.May, 26),
				}},
				Mandatory: false,
				Category:  "EMPLOYMENT",
				Checklist: []string{"grievance"},
			},
		},
		KeyWorkplacePolicy: {
			{
				Description: "Equality and dignity at work",
				References: []models.LegalReference{{
					Act:           ActEmploymentEquality,
					Section:       "Section 8",
					Description:   "Discrimination by employers prohibited",
					URL:           "http://www.irishstatutebook.ie/eli/1998/act/21/section/8",
					EffectiveDate: date(1999, time.October, 18),
				}},
				Mandatory: true,
				Penalties: "Up to 2 years' remuneration",
				Category:  "DISCRIMINATION",
				Checklist: []string{"equal opportunities", "harassment"},
			},
			{
				Description: "Processing of employee personal data",
				References: []models.LegalReference{{
					Act:           ActDataProtection,
					Section:       "Section 71",
					Description:   "Principles of data processing",
					URL:           "http://www.irishstatutebook.ie/eli/2018/act/7/section/71",
					EffectiveDate: date(2018, time.May, 25),
				}},
				Mandatory: true,
				Penalties: "Administrative fines",
				Category:  "EMPLOYMENT",
				Checklist: []string{"personal data"},
			},
		},
		KeyHealthSafety: {
			{
				Description: "Safety statement based on risk assessment",
				References: []models.LegalReference{{
					Act:           ActSafetyHealth,
					Section:       "Section 20",
					Description:   "Employer must prepare a written safety statement",
					URL:           "http://www.irishstatutebook.ie/eli/2005/act/10/section/20",
					EffectiveDate: date(2005, time.September, 1),
				}},
				Mandatory: true,
				Penalties: "Fines up to EUR 3,000,000 on indictment",
				Category:  "HEALTH_SAFETY",
				Checklist: []string{"safety statement", "risk assessment"},
			},
			{
				Description: "Hazard identification",
				References: []models.LegalReference{{
					Act:           ActSafetyHealth,
					Section:       "Section 19",
					Description:   "Hazard identification and risk assessment",
					URL:           "http://www.irishstatutebook.ie/eli/2005/act/10/section/19",
					EffectiveDate: date(2005, time.September, 1),
				}},
				Mandatory: true,
				Category:  "HEALTH_SAFETY",
				Checklist: []string{"hazard"},
			},
		},
	}
}

func defaultComplianceKeys() map[models.DocumentType]string {
	return map[models.DocumentType]string{
		models.EmploymentContract: KeyEmploymentContract,
		models.TerminationLetter:  KeyTermination,
		models.DisciplinaryNotice: KeyDisciplinary,
		models.GrievanceLetter:    KeyGrievance,
		models.WorkplacePolicy:    KeyWorkplacePolicy,
		models.HealthSafety:       KeyHealthSafety,
	}
}
