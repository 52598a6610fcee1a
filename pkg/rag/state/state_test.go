package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	st := New("u1", "t1", "velizhanin", nil)

	assert.Equal(t, "u1", st.UserID)
	assert.Equal(t, "t1", st.ThreadID)
	assert.Equal(t, "velizhanin", st.Persona)
	assert.Equal(t, 1, st.CurrentStage)
	assert.Empty(t, st.Intent)
	assert.NotNil(t, st.Blueprint)
	assert.NotNil(t, st.Metadata)
}

func TestAdvanceStageCapped(t *testing.T) {
	st := New("u", "t", "", nil)

	for i := 0; i < MaxStage+5; i++ {
		st.AdvanceStage()
	}

	assert.Equal(t, MaxStage, st.CurrentStage)
}

func TestSetStage(t *testing.T) {
	st := New("u", "t", "", nil)

	st.SetStage(2, json.RawMessage(`{"a":1}`))
	st.SetStage(2, json.RawMessage(`{"a":2}`))
	st.SetStage(5, json.RawMessage(`{"b":true}`))

	assert.Len(t, st.Blueprint, 2)
	assert.JSONEq(t, `{"a":2}`, string(st.Blueprint[2]))
	assert.JSONEq(t, `{"b":true}`, string(st.Blueprint[5]))
}

func TestSetStageOutOfRange(t *testing.T) {
	st := New("u", "t", "", nil)

	st.SetStage(0, json.RawMessage(`{}`))
	st.SetStage(MaxStage+1, json.RawMessage(`{}`))

	assert.Empty(t, st.Blueprint)
}

func TestSetStageNilMap(t *testing.T) {
	st := &State{}

	st.SetStage(1, json.RawMessage(`{"x":1}`))

	assert.JSONEq(t, `{"x":1}`, string(st.Blueprint[1]))
}

func TestAppendSummary(t *testing.T) {
	st := New("u", "t", "", nil)

	st.AppendSummary("")
	assert.Empty(t, st.Summary)

	st.AppendSummary("first")
	assert.Equal(t, "first", st.Summary)

	st.AppendSummary("second")
	assert.Equal(t, "first\nsecond", st.Summary)
}

func TestLastUserMessage(t *testing.T) {
	st := New("u", "t", "", []Message{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
		{Role: "user", Content: "question"},
		{Role: "assistant", Content: "answer"},
	})

	content, ok := st.LastUserMessage()
	assert.True(t, ok)
	assert.Equal(t, "question", content)
}

func TestLastUserMessageEmpty(t *testing.T) {
	st := New("u", "t", "", nil)

	_, ok := st.LastUserMessage()
	assert.False(t, ok)

	st.AppendMessage("assistant", "only assistant")
	_, ok = st.LastUserMessage()
	assert.False(t, ok)
}

func TestRecentMessages(t *testing.T) {
	st := New("u", "t", "", nil)
	for i := 0; i < 6; i++ {
		st.AppendMessage("user", string(rune('a'+i)))
	}

	recent := st.RecentMessages(4)
	assert.Len(t, recent, 4)
	assert.Equal(t, "c", recent[0].Content)
	assert.Equal(t, "f", recent[3].Content)

	assert.Len(t, st.RecentMessages(100), 6)
	assert.Nil(t, st.RecentMessages(0))
}

func TestSetMeta(t *testing.T) {
	st := &State{}

	st.SetMeta("intent", "direct_response")

	assert.Equal(t, "direct_response", st.Metadata["intent"])
}
