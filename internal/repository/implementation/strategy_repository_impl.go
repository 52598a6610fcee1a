package implementation

import (
	"context"
	"errors"

	"ai-producer-be/internal/entity"
	"ai-producer-be/internal/mapper"
	"ai-producer-be/internal/model"
	"ai-producer-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StrategyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StrategyMapper
}

func NewStrategyRepository(db *gorm.DB) contract.StrategyRepository {
	return &StrategyRepositoryImpl{
		db:     db,
		mapper: mapper.NewStrategyMapper(),
	}
}

func (r *StrategyRepositoryImpl) FindByUserId(ctx context.Context, userId string) (*entity.UserStrategy, error) {
	var m model.UserStrategy
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *StrategyRepositoryImpl) Upsert(ctx context.Context, strategy *entity.UserStrategy) error {
	m := r.mapper.ToModel(strategy)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"positioning", "goals", "cases", "triggers", "full_context",
				"shorts_logic", "monetization", "content_architecture",
				"content_plan_config", "updated_at",
			}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*strategy = *r.mapper.ToEntity(m)
	return nil
}

func (r *StrategyRepositoryImpl) Delete(ctx context.Context, userId string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.UserStrategy{}).Error
}
