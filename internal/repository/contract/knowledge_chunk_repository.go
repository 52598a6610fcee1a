package contract

import (
	"context"

	"ai-producer-be/internal/entity"
	"ai-producer-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredKnowledgeChunk wraps KnowledgeChunk with its similarity score
type ScoredKnowledgeChunk struct {
	Chunk      *entity.KnowledgeChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type KnowledgeChunkRepository interface {
	Create(ctx context.Context, chunk *entity.KnowledgeChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySource(ctx context.Context, source string) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SearchSimilarWithScore returns chunks above the similarity threshold,
	// best first, with every filter key applied as a JSONB metadata
	// equality.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, threshold float64, limit int, filter map[string]string) ([]*ScoredKnowledgeChunk, error)

	// FindPassport fetches the persona passport chunk by metadata filter,
	// without vector search.
	FindPassport(ctx context.Context, filter map[string]string) (*entity.KnowledgeChunk, error)

	ListSources(ctx context.Context) ([]*entity.SourceStat, error)
}
