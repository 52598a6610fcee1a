package mapper

import (
	"encoding/json"

	"ai-producer-be/internal/entity"
	"ai-producer-be/internal/model"

	"gorm.io/datatypes"
)

type StrategyMapper struct{}

func NewStrategyMapper() *StrategyMapper {
	return &StrategyMapper{}
}

func (m *StrategyMapper) ToEntity(s *model.UserStrategy) *entity.UserStrategy {
	if s == nil {
		return nil
	}
	return &entity.UserStrategy{
		Id:                s.Id,
		UserId:            s.UserId,
		Positioning:       s.Positioning,
		Goals:             s.Goals,
		Cases:             s.Cases,
		Triggers:          s.Triggers,
		FullContext:       s.FullContext,
		ShortsLogic:       json.RawMessage(s.ShortsLogic),
		Monetization:      json.RawMessage(s.Monetization),
		ContentArch:       json.RawMessage(s.ContentArch),
		ContentPlanConfig: json.RawMessage(s.ContentPlanConfig),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (m *StrategyMapper) ToModel(s *entity.UserStrategy) *model.UserStrategy {
	if s == nil {
		return nil
	}
	return &model.UserStrategy{
		Id:                s.Id,
		UserId:            s.UserId,
		Positioning:       s.Positioning,
		Goals:             s.Goals,
		Cases:             s.Cases,
		Triggers:          s.Triggers,
		FullContext:       s.FullContext,
		ShortsLogic:       datatypes.JSON(s.ShortsLogic),
		Monetization:      datatypes.JSON(s.Monetization),
		ContentArch:       datatypes.JSON(s.ContentArch),
		ContentPlanConfig: datatypes.JSON(s.ContentPlanConfig),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
