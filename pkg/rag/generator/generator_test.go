package generator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-producer-be/pkg/llm"
	"ai-producer-be/pkg/rag/prompt"
	"ai-producer-be/pkg/rag/state"
)

type fakeLLM struct {
	response string
	err      error
	history  []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.history = history
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, p string, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func TestGenerateProviderFailure(t *testing.T) {
	g := NewGenerator(&fakeLLM{err: errors.New("deadline exceeded")}, 0.7, nil)

	st := state.New("u", "t", "", nil)
	st.AppendMessage("user", "расскажи про этап 1")
	st.SetStage(1, json.RawMessage(`{"done": true}`))
	st.CurrentStage = 2

	g.Generate(context.Background(), st)

	// Exactly one assistant message: the fixed apology.
	assert.Len(t, st.Messages, 2)
	last := st.Messages[len(st.Messages)-1]
	assert.Equal(t, llm.RoleAssistant, last.Role)
	assert.Equal(t, prompt.Apology, last.Content)

	// Stage bookkeeping untouched on failure.
	assert.Equal(t, 2, st.CurrentStage)
	assert.Len(t, st.Blueprint, 1)
	_, saved := st.Metadata["last_saved_stage"]
	assert.False(t, saved)
}

func TestGenerateWithStagePayload(t *testing.T) {
	answer := "Позиционирование собрано.\n```json\n{\"positioning\": \"эксперт по shorts\"}\n```"
	g := NewGenerator(&fakeLLM{response: answer}, 0.7, nil)

	st := state.New("u", "t", "", nil)
	st.AppendMessage("user", "моё позиционирование готово")

	g.Generate(context.Background(), st)

	last := st.Messages[len(st.Messages)-1]
	assert.Equal(t, llm.RoleAssistant, last.Role)
	assert.Equal(t, answer, last.Content)

	// Payload saved under the stage that was current, then advanced.
	assert.JSONEq(t, `{"positioning": "эксперт по shorts"}`, string(st.Blueprint[1]))
	assert.Equal(t, 2, st.CurrentStage)
	assert.Equal(t, 1, st.Metadata["last_saved_stage"])
}

func TestGenerateWithoutPayload(t *testing.T) {
	g := NewGenerator(&fakeLLM{response: "Давайте уточним вашу аудиторию."}, 0.7, nil)

	st := state.New("u", "t", "", nil)
	st.AppendMessage("user", "привет")
	st.CurrentStage = 3

	g.Generate(context.Background(), st)

	assert.Equal(t, 3, st.CurrentStage)
	assert.Empty(t, st.Blueprint)
	_, saved := st.Metadata["last_saved_stage"]
	assert.False(t, saved)
}

func TestGenerateStageFrozenAtMax(t *testing.T) {
	g := NewGenerator(&fakeLLM{response: "```json\n{\"final\": true}\n```"}, 0.7, nil)

	st := state.New("u", "t", "", nil)
	st.AppendMessage("user", "финал")
	st.CurrentStage = state.MaxStage

	g.Generate(context.Background(), st)

	assert.JSONEq(t, `{"final": true}`, string(st.Blueprint[state.MaxStage]))
	assert.Equal(t, state.MaxStage, st.CurrentStage)
}

func TestGenerateRecordsMeta(t *testing.T) {
	g := NewGenerator(&fakeLLM{response: "ответ"}, 0.7, nil)

	st := state.New("u", "t", "", nil)
	st.AppendMessage("user", "вопрос")
	st.Intent = state.IntentKnowledgeBaseSearch
	score := 0.9
	st.Sources = []state.Source{{Source: "book.pdf", SimilarityScore: &score}}

	g.Generate(context.Background(), st)

	assert.Equal(t, state.IntentKnowledgeBaseSearch, st.Metadata["intent"])
	assert.Equal(t, st.Sources, st.Metadata["sources"])
}

func TestGenerateMessageOrder(t *testing.T) {
	fake := &fakeLLM{response: "ok"}
	g := NewGenerator(fake, 0.7, nil)

	st := state.New("u", "t", "", nil)
	st.Context = "найденный фрагмент"
	st.Summary = "паспорт книги"
	st.AppendMessage("user", "вопрос")

	g.Generate(context.Background(), st)

	// System prompt, then context block, then summary block, then history.
	assert.GreaterOrEqual(t, len(fake.history), 4)
	assert.Equal(t, llm.RoleSystem, fake.history[0].Role)
	assert.Contains(t, fake.history[1].Content, "найденный фрагмент")
	assert.Contains(t, fake.history[2].Content, "паспорт книги")
	assert.Equal(t, llm.RoleUser, fake.history[3].Role)
	assert.Equal(t, "вопрос", fake.history[3].Content)
}
