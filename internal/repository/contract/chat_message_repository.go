package contract

import (
	"context"

	"ai-producer-be/internal/entity"
	"ai-producer-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ThreadSummary is one row of the thread listing: the thread id plus the
// first user message as its title.
type ThreadSummary struct {
	ThreadId      string
	Title         string
	LastMessageAt string
	MessageCount  int64
}

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	CreateBulk(ctx context.Context, messages []*entity.ChatMessage) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByThreadId(ctx context.Context, userId, threadId string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindRecentByThread returns the last limit messages of a thread in
	// chronological order.
	FindRecentByThread(ctx context.Context, userId, threadId string, limit int) ([]*entity.ChatMessage, error)
	ListThreads(ctx context.Context, userId string) ([]*ThreadSummary, error)
}
