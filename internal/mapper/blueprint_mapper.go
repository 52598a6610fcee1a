package mapper

import (
	"encoding/json"
	"strconv"

	"ai-producer-be/internal/entity"
	"ai-producer-be/internal/model"

	"gorm.io/datatypes"
)

type BlueprintMapper struct{}

func NewBlueprintMapper() *BlueprintMapper {
	return &BlueprintMapper{}
}

func (m *BlueprintMapper) ToEntity(b *model.ThreadBlueprint) *entity.ThreadBlueprint {
	if b == nil {
		return nil
	}
	return &entity.ThreadBlueprint{
		Id:           b.Id,
		UserId:       b.UserId,
		ThreadId:     b.ThreadId,
		CurrentStage: b.CurrentStage,
		Stages:       jsonToStages(b.Stages),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (m *BlueprintMapper) ToModel(b *entity.ThreadBlueprint) *model.ThreadBlueprint {
	if b == nil {
		return nil
	}
	return &model.ThreadBlueprint{
		Id:           b.Id,
		UserId:       b.UserId,
		ThreadId:     b.ThreadId,
		CurrentStage: b.CurrentStage,
		Stages:       stagesToJSON(b.Stages),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// Stages persist as a JSONB object keyed by the stage number as a string.
// Non-numeric keys are dropped on read.
func jsonToStages(raw datatypes.JSON) map[int]json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil
	}
	stages := make(map[int]json.RawMessage, len(keyed))
	for key, payload := range keyed {
		stage, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		stages[stage] = payload
	}
	return stages
}

func stagesToJSON(stages map[int]json.RawMessage) datatypes.JSON {
	if len(stages) == 0 {
		return nil
	}
	keyed := make(map[string]json.RawMessage, len(stages))
	for stage, payload := range stages {
		keyed[strconv.Itoa(stage)] = payload
	}
	raw, err := json.Marshal(keyed)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
