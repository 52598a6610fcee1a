package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ai-producer-be/internal/entity"
	"ai-producer-be/pkg/rag/state"
)

func TestHistoryToState(t *testing.T) {
	now := time.Now()
	messages := []*entity.ChatMessage{
		{Role: "user", Content: "вопрос", CreatedAt: now},
		{Role: "assistant", Content: "ответ", Metadata: map[string]interface{}{"intent": "direct_response"}, CreatedAt: now},
	}

	got := historyToState(messages)

	assert.Len(t, got, 2)
	assert.Equal(t, "user", got[0].Role)
	assert.Equal(t, "вопрос", got[0].Content)
	assert.Equal(t, "direct_response", got[1].Metadata["intent"])
}

func TestLastAssistantContent(t *testing.T) {
	st := state.New("u", "t", "", nil)
	st.AppendMessage("user", "вопрос")
	st.AppendMessage("assistant", "первый ответ")
	st.AppendMessage("user", "ещё вопрос")
	st.AppendMessage("assistant", "второй ответ")

	assert.Equal(t, "второй ответ", lastAssistantContent(st))
}

func TestLastAssistantContentNone(t *testing.T) {
	st := state.New("u", "t", "", nil)
	st.AppendMessage("user", "вопрос")

	assert.Empty(t, lastAssistantContent(st))
}

func TestThreadTitle(t *testing.T) {
	assert.Equal(t, "короткий заголовок", threadTitle("  короткий заголовок  "))

	long := strings.Repeat("а", 80)
	got := threadTitle(long)
	assert.Equal(t, strings.Repeat("а", 60)+"…", got)

	assert.Empty(t, threadTitle("   "))
}
