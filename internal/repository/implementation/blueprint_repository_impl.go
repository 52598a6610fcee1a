package implementation

import (
	"context"
	"errors"

	"ai-producer-be/internal/entity"
	"ai-producer-be/internal/mapper"
	"ai-producer-be/internal/model"
	"ai-producer-be/internal/repository/contract"

	"gorm.io/gorm"
)

type BlueprintRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BlueprintMapper
}

func NewBlueprintRepository(db *gorm.DB) contract.BlueprintRepository {
	return &BlueprintRepositoryImpl{
		db:     db,
		mapper: mapper.NewBlueprintMapper(),
	}
}

func (r *BlueprintRepositoryImpl) FindByThreadId(ctx context.Context, threadId string) (*entity.ThreadBlueprint, error) {
	var m model.ThreadBlueprint
	err := r.db.WithContext(ctx).Where("thread_id = ?", threadId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// Upsert merges stage payloads into the stored blueprint. Stage keys are
// latest-wins; current_stage only moves forward.
func (r *BlueprintRepositoryImpl) Upsert(ctx context.Context, blueprint *entity.ThreadBlueprint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.ThreadBlueprint
		err := tx.Where("thread_id = ?", blueprint.ThreadId).First(&existing).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			m := r.mapper.ToModel(blueprint)
			if createErr := tx.Create(m).Error; createErr != nil {
				return createErr
			}
			*blueprint = *r.mapper.ToEntity(m)
			return nil
		}

		current := r.mapper.ToEntity(&existing)
		if current.Stages == nil {
			current.Stages = blueprint.Stages
		} else {
			for stage, payload := range blueprint.Stages {
				current.Stages[stage] = payload
			}
		}
		if blueprint.CurrentStage > current.CurrentStage {
			current.CurrentStage = blueprint.CurrentStage
		}

		merged := r.mapper.ToModel(current)
		if saveErr := tx.Model(&model.ThreadBlueprint{}).
			Where("thread_id = ?", blueprint.ThreadId).
			Updates(map[string]interface{}{
				"current_stage": merged.CurrentStage,
				"stages":        merged.Stages,
			}).Error; saveErr != nil {
			return saveErr
		}
		*blueprint = *current
		return nil
	})
}

func (r *BlueprintRepositoryImpl) DeleteByThreadId(ctx context.Context, threadId string) error {
	return r.db.WithContext(ctx).Where("thread_id = ?", threadId).Delete(&model.ThreadBlueprint{}).Error
}
