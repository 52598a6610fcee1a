package contract

import (
	"context"

	"ai-producer-be/internal/entity"
)

type BlueprintRepository interface {
	// FindByThreadId returns (nil, nil) when the thread has no blueprint yet.
	FindByThreadId(ctx context.Context, threadId string) (*entity.ThreadBlueprint, error)
	// Upsert merges the given stages into the stored blueprint (latest wins
	// per stage key) and advances current_stage monotonically.
	Upsert(ctx context.Context, blueprint *entity.ThreadBlueprint) error
	DeleteByThreadId(ctx context.Context, threadId string) error
}
