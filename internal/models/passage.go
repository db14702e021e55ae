package models

// Passage is a scored unit of retrieved text. Source is the knowledge-base
// entry's source label for qualitative passages and the table name for
// record-derived passages. Passages are produced per query and never persisted.
type Passage struct {
	Text   string  `json:"text"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}

// KnowledgeEntry is one static knowledge-base passage with its role tags.
// The knowledge base is loaded once at process start and never mutated.
type KnowledgeEntry struct {
	Text   string
	Source string
	Roles  []Role
}

// HasRole reports whether the entry is visible to the given role.
func (e KnowledgeEntry) HasRole(role Role) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}
