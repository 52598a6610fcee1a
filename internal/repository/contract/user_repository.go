package contract

import (
	"context"

	"ai-producer-be/internal/entity"
	"ai-producer-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Business Specific
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	TouchLastActive(ctx context.Context, id uuid.UUID) error
}
