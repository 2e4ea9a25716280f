package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Itish41/ClauseGuard/models"
	"github.com/Itish41/ClauseGuard/rules"
)

// RulebookStore persists rule tables in the database.
type RulebookStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRulebookStore(db *gorm.DB, logger *slog.Logger) *RulebookStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RulebookStore{db: db, logger: logger}
}

// AutoMigrate creates the rule tables from the record structs. Postgres
// deployments use the SQL migrations instead.
func (s *RulebookStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.KeywordRecord{},
		&models.ClassifierPatternRecord{},
		&models.RequirementSpecRecord{},
		&models.StatutoryRequirementRecord{},
		&models.ComplianceKeyRecord{},
	)
}

// Empty reports whether no keyword, spec or statute rows exist.
func (s *RulebookStore) Empty(ctx context.Context) (bool, error) {
	for _, model := range []any{
		&models.KeywordRecord{},
		&models.RequirementSpecRecord{},
		&models.StatutoryRequirementRecord{},
	} {
		var n int64
		if err := s.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
			return false, fmt.Errorf("count rule rows: %w", err)
		}
		if n > 0 {
			return false, nil
		}
	}
	return true, nil
}

// Save replaces every stored rule table with the contents of rb in one transaction.
func (s *RulebookStore) Save(ctx context.Context, rb *rules.Rulebook) error {
	t := rb.Tables()

	keywords := make([]models.KeywordRecord, 0, len(t.Keywords))
	for i, kw := range t.Keywords {
		keywords = append(keywords, models.KeywordRecord{
			Keyword:         kw.Keyword,
			Risk:            string(kw.Risk),
			Category:        kw.Category,
			Description:     kw.Description,
			Weight:          kw.Weight,
			RequiresContext: kw.RequiresContext,
			Position:        i,
		})
	}

	patterns := make([]models.ClassifierPatternRecord, 0, len(t.Patterns))
	for i, p := range t.Patterns {
		patterns = append(patterns, models.ClassifierPatternRecord{
			DocumentType: string(p.Type),
			Keywords:     mustJSON(p.Keywords),
			Weight:       p.Weight,
			Position:     i,
		})
	}

	specs := make([]models.RequirementSpecRecord, 0, len(t.Specs))
	for _, dt := range models.DocumentTypes {
		spec, ok := t.Specs[dt]
		if !ok {
			continue
		}
		specs = append(specs, models.RequirementSpecRecord{
			DocumentType:       string(dt),
			RequiredClauses:    mustJSON(spec.RequiredClauses),
			RecommendedClauses: mustJSON(spec.RecommendedClauses),
			RequiredSections:   mustJSON(spec.RequiredSections),
			Keywords:           mustJSON(spec.Keywords),
			MinContentLength:   spec.MinContentLength,
			MaxContentLength:   spec.MaxContentLength,
			RiskMultiplier:     spec.RiskMultiplier,
		})
	}

	var statutes []models.StatutoryRequirementRecord
	for _, key := range rb.ComplianceKeys() {
		for i, req := range t.Statutes[key] {
			statutes = append(statutes, models.StatutoryRequirementRecord{
				ComplianceKey: key,
				Position:      i,
				Description:   req.Description,
				References:    mustJSON(req.References),
				Mandatory:     req.Mandatory,
				Penalties:     req.Penalties,
				Category:      req.Category,
				Checklist:     mustJSON(req.Checklist),
			})
		}
	}

	keys := make([]models.ComplianceKeyRecord, 0, len(t.ComplianceKeys))
	for _, dt := range models.DocumentTypes {
		if key, ok := t.ComplianceKeys[dt]; ok {
			keys = append(keys, models.ComplianceKeyRecord{DocumentType: string(dt), ComplianceKey: key})
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.KeywordRecord{},
			&models.ClassifierPatternRecord{},
			&models.RequirementSpecRecord{},
			&models.StatutoryRequirementRecord{},
			&models.ComplianceKeyRecord{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("clear rule table: %w", err)
			}
		}
		if err := createAll(tx, keywords); err != nil {
			return fmt.Errorf("insert keywords: %w", err)
		}
		if err := createAll(tx, patterns); err != nil {
			return fmt.Errorf("insert classifier patterns: %w", err)
		}
		if err := createAll(tx, specs); err != nil {
			return fmt.Errorf("insert requirement specs: %w", err)
		}
		if err := createAll(tx, statutes); err != nil {
			return fmt.Errorf("insert statutory requirements: %w", err)
		}
		if err := createAll(tx, keys); err != nil {
			return fmt.Errorf("insert compliance keys: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save rulebook: %w", err)
	}

	s.logger.Info("rulebook saved",
		"keywords", len(keywords),
		"patterns", len(patterns),
		"specs", len(specs),
		"statutes", len(statutes),
	)
	return nil
}

func createAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// Load reads the stored tables into a Rulebook. A table with no rows falls
// back to the built-in defaults for that section.
func (s *RulebookStore) Load(ctx context.Context) (*rules.Rulebook, error) {
	db := s.db.WithContext(ctx)
	tables := rules.DefaultTables()

	var keywords []models.KeywordRecord
	if err := db.Order("position").Find(&keywords).Error; err != nil {
		return nil, fmt.Errorf("load keywords: %w", err)
	}
	if len(keywords) > 0 {
		tables.Keywords = make([]models.KeywordInfo, 0, len(keywords))
		for _, r := range keywords {
			tables.Keywords = append(tables.Keywords, models.KeywordInfo{
				Keyword:         r.Keyword,
				Risk:            models.RiskLevel(r.Risk),
				Category:        r.Category,
				Description:     r.Description,
				Weight:          r.Weight,
				RequiresContext: r.RequiresContext,
			})
		}
	}

	var patterns []models.ClassifierPatternRecord
	if err := db.Order("position").Find(&patterns).Error; err != nil {
		return nil, fmt.Errorf("load classifier patterns: %w", err)
	}
	if len(patterns) > 0 {
		tables.Patterns = make([]rules.ClassifierPattern, 0, len(patterns))
		for _, r := range patterns {
			p := rules.ClassifierPattern{Type: models.DocumentType(r.DocumentType), Weight: r.Weight}
			if err := json.Unmarshal(r.Keywords, &p.Keywords); err != nil {
				return nil, fmt.Errorf("decode classifier keywords for %s: %w", r.DocumentType, err)
			}
			tables.Patterns = append(tables.Patterns, p)
		}
	}

	var specs []models.RequirementSpecRecord
	if err := db.Find(&specs).Error; err != nil {
		return nil, fmt.Errorf("load requirement specs: %w", err)
	}
	if len(specs) > 0 {
		tables.Specs = make(map[models.DocumentType]models.RequirementSpec, len(specs))
		for _, r := range specs {
			spec := models.RequirementSpec{
				MinContentLength: r.MinContentLength,
				MaxContentLength: r.MaxContentLength,
				RiskMultiplier:   r.RiskMultiplier,
			}
			for _, field := range []struct {
				raw datatypes.JSON
				dst *[]string
			}{
				{r.RequiredClauses, &spec.RequiredClauses},
				{r.RecommendedClauses, &spec.RecommendedClauses},
				{r.RequiredSections, &spec.RequiredSections},
				{r.Keywords, &spec.Keywords},
			} {
				if err := json.Unmarshal(field.raw, field.dst); err != nil {
					return nil, fmt.Errorf("decode requirement spec for %s: %w", r.DocumentType, err)
				}
			}
			tables.Specs[models.DocumentType(r.DocumentType)] = spec
		}
	}

	var statutes []models.StatutoryRequirementRecord
	if err := db.Order("compliance_key").Order("position").Find(&statutes).Error; err != nil {
		return nil, fmt.Errorf("load statutory requirements: %w", err)
	}
	if len(statutes) > 0 {
		tables.Statutes = make(map[string][]models.LegalRequirement)
		for _, r := range statutes {
			req := models.LegalRequirement{
				Description: r.Description,
				Mandatory:   r.Mandatory,
				Penalties:   r.Penalties,
				Category:    r.Category,
			}
			if err := json.Unmarshal(r.References, &req.References); err != nil {
				return nil, fmt.Errorf("decode references for %s: %w", r.ComplianceKey, err)
			}
			if err := json.Unmarshal(r.Checklist, &req.Checklist); err != nil {
				return nil, fmt.Errorf("decode checklist for %s: %w", r.ComplianceKey, err)
			}
			tables.Statutes[r.ComplianceKey] = append(tables.Statutes[r.ComplianceKey], req)
		}
	}

	var keys []models.ComplianceKeyRecord
	if err := db.Find(&keys).Error; err != nil {
		return nil, fmt.Errorf("load compliance keys: %w", err)
	}
	if len(keys) > 0 {
		tables.ComplianceKeys = make(map[models.DocumentType]string, len(keys))
		for _, r := range keys {
			tables.ComplianceKeys[models.DocumentType(r.DocumentType)] = r.ComplianceKey
		}
	}

	rb, err := rules.New(tables)
	if err != nil {
		return nil, fmt.Errorf("build rulebook from database: %w", err)
	}
	return rb, nil
}

func mustJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal rule field: %v", err))
	}
	return datatypes.JSON(b)
}
