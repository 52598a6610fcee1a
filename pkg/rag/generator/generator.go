package generator

import (
	"context"

	"ai-producer-be/internal/pkg/logger"
	"ai-producer-be/pkg/llm"
	"ai-producer-be/pkg/rag/prompt"
	"ai-producer-be/pkg/rag/state"
)

// historyWindow is how many trailing conversation messages the generator
// feeds to the model.
const historyWindow = 10

// Generator produces the final assistant answer and, when the model emits a
// structured stage payload, advances the content blueprint.
type Generator struct {
	llmProvider llm.LLMProvider
	temperature float64
	logger      logger.ILogger
}

func NewGenerator(llmProvider llm.LLMProvider, temperature float64, log logger.ILogger) *Generator {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Generator{
		llmProvider: llmProvider,
		temperature: temperature,
		logger:      log,
	}
}

// Generate appends exactly one assistant message to the state. On provider
// failure the message is the fixed apology and blueprint/stage are left
// untouched; there is no partial mutation.
func (g *Generator) Generate(ctx context.Context, st *state.State) {
	messages := g.buildMessages(st)

	answer, err := g.llmProvider.Chat(ctx, messages, llm.WithTemperature(g.temperature))
	if err != nil {
		g.logger.Error("generator", "llm call failed", map[string]interface{}{
			"error":  err.Error(),
			"thread": st.ThreadID,
		})
		st.AppendMessage(llm.RoleAssistant, prompt.Apology)
		g.recordMeta(st)
		return
	}

	// A structured stage payload in the answer moves the blueprint forward.
	// Parse failure is non-fatal: the text answer is still delivered.
	if payload, ok := ExtractStagePayload(answer); ok {
		stage := st.CurrentStage
		st.SetStage(stage, payload)
		st.AdvanceStage()
		st.SetMeta("last_saved_stage", stage)
		g.logger.Info("generator", "stage data saved to blueprint", map[string]interface{}{
			"stage":  stage,
			"thread": st.ThreadID,
		})
	}

	st.AppendMessage(llm.RoleAssistant, answer)
	g.recordMeta(st)
}

func (g *Generator) buildMessages(st *state.State) []llm.Message {
	rendered := make(map[int]string, len(st.Blueprint))
	for stage, payload := range st.Blueprint {
		rendered[stage] = string(payload)
	}

	messages := []llm.Message{{
		Role:    llm.RoleSystem,
		Content: prompt.GeneratorSystem(st.CurrentStage, rendered),
	}}

	if st.Context != "" {
		messages = append(messages, llm.Message{
			Role:    llm.RoleSystem,
			Content: prompt.ContextBlock(st.Context),
		})
	}

	if st.Summary != "" {
		messages = append(messages, llm.Message{
			Role:    llm.RoleSystem,
			Content: prompt.SummaryBlock(st.Summary),
		})
	}

	for _, msg := range st.RecentMessages(historyWindow) {
		messages = append(messages, llm.Message{Role: msg.Role, Content: msg.Content})
	}

	return messages
}

func (g *Generator) recordMeta(st *state.State) {
	st.SetMeta("sources", st.Sources)
	st.SetMeta("intent", st.Intent)
}
