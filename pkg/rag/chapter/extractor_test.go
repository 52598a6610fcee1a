package chapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-producer-be/pkg/llm"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func TestExtractWithRegex(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		want   string
		wantOk bool
	}{
		{"russian chapter", "расскажи про главу 5", "5", true},
		{"russian dative", "что сказано в главе 12 про триггеры", "12", true},
		{"russian accusative", "перескажи главу 3", "3", true},
		{"russian part", "часть 2 книги", "2", true},
		{"russian section", "раздел 7", "7", true},
		{"number marker", "глава номер 4", "4", true},
		{"numero sign", "глава № 9", "9", true},
		{"hash marker", "chapter #11", "11", true},
		{"english chapter", "summarize chapter 8 please", "8", true},
		{"english part", "what is in part 6", "6", true},
		{"english section", "section 15 overview", "15", true},
		{"case insensitive", "ГЛАВА 21", "21", true},
		{"no number", "расскажи про главу о позиционировании", "", false},
		{"no chapter word", "сколько будет 2 плюс 2", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractWithRegex(tt.query)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractUsesModelAnswer(t *testing.T) {
	e := NewExtractor(&fakeLLM{response: " 7 "}, nil)

	got, ok := e.Extract(context.Background(), "про седьмую главу")

	assert.True(t, ok)
	assert.Equal(t, "7", got)
}

func TestExtractModelSaysNone(t *testing.T) {
	// The model is authoritative when it responds: "none" means no chapter,
	// even if the regex would have matched.
	e := NewExtractor(&fakeLLM{response: "None"}, nil)

	got, ok := e.Extract(context.Background(), "глава 5")

	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestExtractModelGarbage(t *testing.T) {
	e := NewExtractor(&fakeLLM{response: "chapter five"}, nil)

	_, ok := e.Extract(context.Background(), "глава 5")

	assert.False(t, ok)
}

func TestExtractFallsBackOnProviderError(t *testing.T) {
	e := NewExtractor(&fakeLLM{err: errors.New("connection refused")}, nil)

	got, ok := e.Extract(context.Background(), "расскажи про главу 5")

	assert.True(t, ok)
	assert.Equal(t, "5", got)
}

func TestExtractNoProvider(t *testing.T) {
	e := NewExtractor(nil, nil)

	got, ok := e.Extract(context.Background(), "chapter 3")

	assert.True(t, ok)
	assert.Equal(t, "3", got)
}
