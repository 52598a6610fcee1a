package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-producer-be/internal/pkg/logger"
	"ai-producer-be/pkg/rag/state"
)

// defaultStrategyUser is the profile used when none is configured.
const defaultStrategyUser = "default"

// StrategyLoader renders the user's positioning/strategy record into a text
// block and appends it to the working summary. A missing record is a no-op;
// a store failure is logged and swallowed. All requests read the single
// configured profile.
type StrategyLoader struct {
	store        RecordStore
	strategyUser string
	logger       logger.ILogger
}

func NewStrategyLoader(store RecordStore, strategyUser string, log logger.ILogger) *StrategyLoader {
	if strategyUser == "" {
		strategyUser = defaultStrategyUser
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &StrategyLoader{store: store, strategyUser: strategyUser, logger: log}
}

func (l *StrategyLoader) Load(ctx context.Context, st *state.State) {
	record, err := l.store.GetStrategy(ctx, l.strategyUser)
	if err != nil {
		l.logger.Error("strategy_loader", "failed to load user strategy", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if record == nil {
		l.logger.Info("strategy_loader", "no user strategy found", nil)
		return
	}

	st.AppendSummary(RenderStrategy(record))
	l.logger.Info("strategy_loader", "user strategy loaded into context", nil)
}

// RenderStrategy builds the expert-context block the generator sees.
// Malformed JSON columns are skipped rather than indexed into.
func RenderStrategy(record *StrategyRecord) string {
	var b strings.Builder

	b.WriteString("### ЭТАЛОННЫЙ КОНТЕКСТ ЭКСПЕРТА (КТО Я):\n")
	b.WriteString(record.FullContext)
	b.WriteString("\n\n### СТРАТЕГИЧЕСКИЕ ДАННЫЕ:\n")
	b.WriteString(fmt.Sprintf("- ЦЕЛЬ: %s\n", record.Goals))
	b.WriteString(fmt.Sprintf("- КЕЙСЫ: %s\n", record.Cases))
	b.WriteString(fmt.Sprintf("- ТРИГГЕРЫ: %s\n", record.Triggers))

	if rules, ok := parseShortsLogic(record.ShortsLogic); ok {
		b.WriteString("\n### ПРАВИЛА ВАШИХ SHORTS:\n")
		b.WriteString(fmt.Sprintf("- СТРУКТУРА: %s\n", strings.Join(rules.Structure, " -> ")))
		b.WriteString(fmt.Sprintf("- ПРИМЕРЫ ХУКОВ ДЛЯ МОДЕЛЕЙ: %s\n", strings.Join(rules.HookExamples, ", ")))
	}

	if m, ok := parseMonetization(record.Monetization); ok {
		product := m.Product
		if product == "" {
			product = "Курс"
		}
		price := m.Price
		if price == "" {
			price = "50k"
		}
		b.WriteString(fmt.Sprintf("- МОНЕТИЗАЦИЯ: %s за %s\n", product, price))
		b.WriteString(fmt.Sprintf("- АКТИВЫ: %s\n", strings.Join(m.Assets, ", ")))
	}

	return b.String()
}

type shortsLogic struct {
	Structure    []string `json:"structure"`
	HookExamples []string `json:"hook_examples"`
}

type monetization struct {
	Product string   `json:"product"`
	Price   string   `json:"price"`
	Assets  []string `json:"assets"`
}

func parseShortsLogic(raw json.RawMessage) (*shortsLogic, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var logic shortsLogic
	if err := json.Unmarshal(raw, &logic); err != nil {
		return nil, false
	}
	return &logic, true
}

func parseMonetization(raw json.RawMessage) (*monetization, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var m monetization
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	return &m, true
}
