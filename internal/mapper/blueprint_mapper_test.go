package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"ai-producer-be/internal/entity"
	"ai-producer-be/internal/model"
)

func TestBlueprintMapperRoundTrip(t *testing.T) {
	m := NewBlueprintMapper()

	e := &entity.ThreadBlueprint{
		UserId:       "u1",
		ThreadId:     "t1",
		CurrentStage: 3,
		Stages: map[int]json.RawMessage{
			1: json.RawMessage(`{"positioning":"эксперт"}`),
			2: json.RawMessage(`{"audience":"новички"}`),
		},
	}

	back := m.ToEntity(m.ToModel(e))

	assert.Equal(t, e.ThreadId, back.ThreadId)
	assert.Equal(t, e.CurrentStage, back.CurrentStage)
	assert.Len(t, back.Stages, 2)
	assert.JSONEq(t, `{"positioning":"эксперт"}`, string(back.Stages[1]))
	assert.JSONEq(t, `{"audience":"новички"}`, string(back.Stages[2]))
}

func TestBlueprintMapperNil(t *testing.T) {
	m := NewBlueprintMapper()

	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}

func TestJsonToStagesDropsNonNumericKeys(t *testing.T) {
	raw := datatypes.JSON(`{"1": {"a": 1}, "not-a-stage": {"b": 2}}`)

	stages := jsonToStages(raw)

	assert.Len(t, stages, 1)
	assert.JSONEq(t, `{"a": 1}`, string(stages[1]))
}

func TestJsonToStagesMalformed(t *testing.T) {
	assert.Nil(t, jsonToStages(datatypes.JSON(`not json`)))
	assert.Nil(t, jsonToStages(nil))
}

func TestStagesToJSONEmpty(t *testing.T) {
	assert.Nil(t, stagesToJSON(nil))
	assert.Nil(t, stagesToJSON(map[int]json.RawMessage{}))
}

func TestBlueprintMapperEmptyStages(t *testing.T) {
	m := NewBlueprintMapper()

	mod := m.ToModel(&entity.ThreadBlueprint{ThreadId: "t1"})
	assert.Nil(t, mod.Stages)

	e := m.ToEntity(&model.ThreadBlueprint{ThreadId: "t1"})
	assert.Nil(t, e.Stages)
}
