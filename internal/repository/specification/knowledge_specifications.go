package specification

import "gorm.io/gorm"

// MetadataEquals filters on a single JSONB metadata key.
type MetadataEquals struct {
	Key   string
	Value string
}

func (s MetadataEquals) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("metadata->>? = ?", s.Key, s.Value)
}

// MetadataFilter applies every key/value pair as a JSONB equality filter.
type MetadataFilter struct {
	Filter map[string]string
}

func (s MetadataFilter) Apply(db *gorm.DB) *gorm.DB {
	for key, value := range s.Filter {
		db = db.Where("metadata->>? = ?", key, value)
	}
	return db
}

// BySource filters chunks by the source name recorded at ingestion.
type BySource struct {
	Source string
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("metadata->>'source' = ?", s.Source)
}
