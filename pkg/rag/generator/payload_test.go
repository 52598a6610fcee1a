package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractStagePayload(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   string
		wantOk bool
	}{
		{
			name:   "fenced json block",
			answer: "Вот данные этапа:\n```json\n{\"positioning\": \"эксперт\"}\n```",
			want:   `{"positioning": "эксперт"}`,
			wantOk: true,
		},
		{
			name:   "bare object in text",
			answer: `Итог: {"goal": "100k subscribers"} — фиксируем.`,
			want:   `{"goal": "100k subscribers"}`,
			wantOk: true,
		},
		{
			name:   "nested object",
			answer: `{"outer": {"inner": [1, 2]}}`,
			want:   `{"outer": {"inner": [1, 2]}}`,
			wantOk: true,
		},
		{
			name:   "braces inside string literal",
			answer: `{"hook": "use {placeholder} in titles"}`,
			want:   `{"hook": "use {placeholder} in titles"}`,
			wantOk: true,
		},
		{
			name:   "escaped quote inside string",
			answer: `{"text": "he said \"go\" loudly"}`,
			want:   `{"text": "he said \"go\" loudly"}`,
			wantOk: true,
		},
		{
			name:   "fenced block wins over earlier bare object",
			answer: "{broken\n```json\n{\"a\": 1}\n```",
			want:   `{"a": 1}`,
			wantOk: true,
		},
		{
			name:   "invalid fenced block falls through to bare object",
			answer: "```json\nnot json\n```\nno, here: {\"b\": 2}",
			want:   `{"b": 2}`,
			wantOk: true,
		},
		{
			name:   "array rejected",
			answer: `[1, 2, 3]`,
			wantOk: false,
		},
		{
			name:   "scalar rejected",
			answer: "```json\n42\n```",
			wantOk: false,
		},
		{
			name:   "unbalanced braces",
			answer: `{"a": 1`,
			wantOk: false,
		},
		{
			name:   "plain text",
			answer: "Отличный вопрос! Давайте начнём с позиционирования.",
			wantOk: false,
		},
		{
			name:   "empty",
			answer: "",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, ok := ExtractStagePayload(tt.answer)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.JSONEq(t, tt.want, string(payload))
			}
		})
	}
}
