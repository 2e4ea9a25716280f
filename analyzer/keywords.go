package analyzer

import (
	"strings"

	"github.com/Itish41/ClauseGuard/models"
	"github.com/Itish41/ClauseGuard/rules"
)

// KeywordDatabase is the read-only risk keyword table. Lookups are exact on the
// lowercased keyword; anything not in the table is never flagged.
type KeywordDatabase struct {
	entries []models.KeywordInfo
	index   map[string]int
}

func NewKeywordDatabase(rb *rules.Rulebook) *KeywordDatabase {
	entries := rb.Keywords()
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Keyword] = i
	}
	return &KeywordDatabase{entries: entries, index: index}
}

// Lookup returns the table entry for keyword, ignoring case and surrounding space.
func (db *KeywordDatabase) Lookup(keyword string) (models.KeywordInfo, bool) {
	i, ok := db.index[strings.ToLower(strings.TrimSpace(keyword))]
	if !ok {
		return models.KeywordInfo{}, false
	}
	return db.entries[i], true
}

func (db *KeywordDatabase) Len() int { return len(db.entries) }

func (db *KeywordDatabase) each(fn func(models.KeywordInfo)) {
	for _, e := range db.entries {
		fn(e)
	}
}
