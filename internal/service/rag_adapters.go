package service

import (
	"context"

	"ai-producer-be/internal/repository/unitofwork"
	"ai-producer-be/pkg/rag/loader"
	"ai-producer-be/pkg/rag/pipeline"
	"ai-producer-be/pkg/rag/retriever"
)

// gormSearchStore adapts the knowledge chunk repository to the retriever's
// store boundary.
type gormSearchStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func newGormSearchStore(uowFactory unitofwork.RepositoryFactory) retriever.SearchStore {
	return &gormSearchStore{uowFactory: uowFactory}
}

func (s *gormSearchStore) Search(ctx context.Context, embedding []float32, threshold float64, limit int, filter map[string]string) ([]retriever.ScoredChunk, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.KnowledgeChunkRepository().SearchSimilarWithScore(ctx, embedding, threshold, limit, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]retriever.ScoredChunk, len(scored))
	for i, sc := range scored {
		rows[i] = retriever.ScoredChunk{
			Content:    sc.Chunk.Content,
			Metadata:   sc.Chunk.Metadata,
			Similarity: sc.Similarity,
		}
	}
	return rows, nil
}

// gormRecordStore adapts strategy and passport lookups to the loader
// boundary.
type gormRecordStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func newGormRecordStore(uowFactory unitofwork.RepositoryFactory) loader.RecordStore {
	return &gormRecordStore{uowFactory: uowFactory}
}

func (s *gormRecordStore) GetStrategy(ctx context.Context, userID string) (*loader.StrategyRecord, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	strategy, err := uow.StrategyRepository().FindByUserId(ctx, userID)
	if err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, nil
	}
	return &loader.StrategyRecord{
		UserID:       strategy.UserId,
		Goals:        strategy.Goals,
		Cases:        strategy.Cases,
		Triggers:     strategy.Triggers,
		FullContext:  strategy.FullContext,
		ShortsLogic:  strategy.ShortsLogic,
		Monetization: strategy.Monetization,
	}, nil
}

func (s *gormRecordStore) GetPassport(ctx context.Context, persona string) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chunk, err := uow.KnowledgeChunkRepository().FindPassport(ctx, pipeline.FilterForPersona(persona))
	if err != nil {
		return "", err
	}
	if chunk == nil {
		return "", nil
	}
	return chunk.Content, nil
}
