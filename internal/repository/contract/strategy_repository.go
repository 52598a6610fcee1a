package contract

import (
	"context"

	"ai-producer-be/internal/entity"
)

type StrategyRepository interface {
	// FindByUserId returns (nil, nil) when the user has no strategy row.
	FindByUserId(ctx context.Context, userId string) (*entity.UserStrategy, error)
	Upsert(ctx context.Context, strategy *entity.UserStrategy) error
	Delete(ctx context.Context, userId string) error
}
