package loader

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-producer-be/pkg/rag/state"
)

type fakeRecordStore struct {
	strategy       *StrategyRecord
	strategyErr    error
	strategyUserID string
	passport       string
	passportErr    error
	strategyCalls  int
	passportCalls  int
}

func (f *fakeRecordStore) GetStrategy(ctx context.Context, userID string) (*StrategyRecord, error) {
	f.strategyCalls++
	f.strategyUserID = userID
	return f.strategy, f.strategyErr
}

func (f *fakeRecordStore) GetPassport(ctx context.Context, persona string) (string, error) {
	f.passportCalls++
	return f.passport, f.passportErr
}

func TestStrategyLoad(t *testing.T) {
	store := &fakeRecordStore{strategy: &StrategyRecord{
		UserID:      "default",
		Goals:       "100 тысяч подписчиков",
		Cases:       "кейс с воронкой",
		Triggers:    "страх упущенного",
		FullContext: "эксперт по контенту",
	}}
	l := NewStrategyLoader(store, "", nil)

	st := state.New("u", "t", "", nil)
	l.Load(context.Background(), st)

	assert.Contains(t, st.Summary, "ЭТАЛОННЫЙ КОНТЕКСТ ЭКСПЕРТА")
	assert.Contains(t, st.Summary, "эксперт по контенту")
	assert.Contains(t, st.Summary, "100 тысяч подписчиков")
}

func TestStrategyLoadConfiguredUser(t *testing.T) {
	store := &fakeRecordStore{}

	NewStrategyLoader(store, "producer-main", nil).Load(context.Background(), state.New("u", "t", "", nil))
	assert.Equal(t, "producer-main", store.strategyUserID)

	NewStrategyLoader(store, "", nil).Load(context.Background(), state.New("u", "t", "", nil))
	assert.Equal(t, "default", store.strategyUserID)
}

func TestStrategyLoadMissing(t *testing.T) {
	l := NewStrategyLoader(&fakeRecordStore{}, "", nil)

	st := state.New("u", "t", "", nil)
	l.Load(context.Background(), st)

	assert.Empty(t, st.Summary)
}

func TestStrategyLoadStoreError(t *testing.T) {
	l := NewStrategyLoader(&fakeRecordStore{strategyErr: errors.New("db down")}, "", nil)

	st := state.New("u", "t", "", nil)
	l.Load(context.Background(), st)

	// A failed load never blocks the pipeline.
	assert.Empty(t, st.Summary)
}

func TestRenderStrategyShortsAndMonetization(t *testing.T) {
	record := &StrategyRecord{
		FullContext: "контекст",
		ShortsLogic: json.RawMessage(`{"structure": ["hook", "story", "cta"], "hook_examples": ["пример 1", "пример 2"]}`),
		Monetization: json.RawMessage(`{"product": "Наставничество", "price": "150k", "assets": ["курс", "чат"]}`),
	}

	got := RenderStrategy(record)

	assert.Contains(t, got, "ПРАВИЛА ВАШИХ SHORTS")
	assert.Contains(t, got, "hook -> story -> cta")
	assert.Contains(t, got, "пример 1, пример 2")
	assert.Contains(t, got, "Наставничество за 150k")
	assert.Contains(t, got, "курс, чат")
}

func TestRenderStrategyMonetizationDefaults(t *testing.T) {
	record := &StrategyRecord{
		Monetization: json.RawMessage(`{"assets": []}`),
	}

	got := RenderStrategy(record)

	assert.Contains(t, got, "Курс за 50k")
}

func TestRenderStrategyMalformedJSONSkipped(t *testing.T) {
	record := &StrategyRecord{
		FullContext:  "контекст",
		ShortsLogic:  json.RawMessage(`{broken`),
		Monetization: json.RawMessage(`"not an object"`),
	}

	got := RenderStrategy(record)

	assert.NotContains(t, got, "SHORTS")
	assert.NotContains(t, got, "МОНЕТИЗАЦИЯ")
	assert.Contains(t, got, "контекст")
}
