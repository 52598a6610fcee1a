package unitofwork

import (
	"context"

	"ai-producer-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatMessageRepository() contract.ChatMessageRepository
	KnowledgeChunkRepository() contract.KnowledgeChunkRepository
	StrategyRepository() contract.StrategyRepository
	BlueprintRepository() contract.BlueprintRepository
}
