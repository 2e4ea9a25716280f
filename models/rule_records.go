package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// KeywordRecord stores one entry of the risk keyword table.
type KeywordRecord struct {
	// ID is a UUID; indexed as a keyword in Elasticsearch for exact matching.
	ID string `gorm:"type:uuid;primaryKey" elastic:"type:keyword"`

	// Keyword is the lowercased term that is searched for in document text.
	Keyword string `gorm:"not null;uniqueIndex" elastic:"type:keyword"`

	// Risk is LOW, MEDIUM or HIGH.
	Risk string `gorm:"not null" elastic:"type:keyword"`

	Category        string  `gorm:"not null" elastic:"type:keyword"`
	Description     string  `elastic:"type:text,analyzer:standard"`
	Weight          float64 `elastic:"type:float"`
	RequiresContext bool    `elastic:"type:boolean"`

	// Position keeps the table order stable; findings are emitted in this order.
	Position  int       `gorm:"not null;default:0"`
	CreatedAt time.Time `elastic:"type:date"`
}

func (KeywordRecord) TableName() string { return "rule_keywords" }

// ClassifierPatternRecord stores the weighted keyword list used to recognise one document type.
type ClassifierPatternRecord struct {
	ID           string         `gorm:"type:uuid;primaryKey"`
	DocumentType string         `gorm:"not null;uniqueIndex"`
	Keywords     datatypes.JSON `gorm:"not null"`
	Weight       float64        `gorm:"not null"`
	Position     int            `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

func (ClassifierPatternRecord) TableName() string { return "rule_classifier_patterns" }

// RequirementSpecRecord stores the clause and section expectations of one document type.
type RequirementSpecRecord struct {
	ID                 string         `gorm:"type:uuid;primaryKey"`
	DocumentType       string         `gorm:"not null;uniqueIndex"`
	RequiredClauses    datatypes.JSON `gorm:"not null"`
	RecommendedClauses datatypes.JSON `gorm:"not null"`
	RequiredSections   datatypes.JSON `gorm:"not null"`
	Keywords           datatypes.JSON `gorm:"not null"`
	MinContentLength   int
	MaxContentLength   int
	RiskMultiplier     float64
	CreatedAt          time.Time
}

func (RequirementSpecRecord) TableName() string { return "rule_requirement_specs" }

// StatutoryRequirementRecord stores one statutory requirement of the compliance table.
type StatutoryRequirementRecord struct {
	ID string `gorm:"type:uuid;primaryKey" elastic:"type:keyword"`

	// ComplianceKey groups requirements per document kind (e.g. "termination").
	ComplianceKey string `gorm:"not null;index" elastic:"type:keyword"`
	Position      int    `gorm:"not null;default:0"`

	Description string `gorm:"not null" elastic:"type:text,analyzer:standard"`

	// References is a JSON array of LegalReference.
	References datatypes.JSON `elastic:"type:object"`

	Mandatory bool   `elastic:"type:boolean"`
	Penalties string `elastic:"type:text"`
	Category  string `elastic:"type:keyword"`

	// Checklist is a JSON array of phrases that must all appear in the document.
	Checklist datatypes.JSON `elastic:"type:object"`

	CreatedAt time.Time `elastic:"type:date"`
}

func (StatutoryRequirementRecord) TableName() string { return "statutory_requirements" }

// ComplianceKeyRecord maps a document type to the statutory table key checked for it.
type ComplianceKeyRecord struct {
	DocumentType  string `gorm:"primaryKey"`
	ComplianceKey string `gorm:"not null"`
}

func (ComplianceKeyRecord) TableName() string { return "rule_compliance_keys" }

func (r *KeywordRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *ClassifierPatternRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *RequirementSpecRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *StatutoryRequirementRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
