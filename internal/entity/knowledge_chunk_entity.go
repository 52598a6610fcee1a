package entity

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeChunk struct {
	Id        uuid.UUID
	Content   string
	Embedding []float32
	Metadata  map[string]interface{}
	CreatedAt time.Time
}

// SourceStat is one row of the per-source aggregation used by the
// knowledge dashboard.
type SourceStat struct {
	Source string
	Chunks int64
}
