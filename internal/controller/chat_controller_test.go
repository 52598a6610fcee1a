package controller

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkWords(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   []string
	}{
		{
			name:   "several words",
			answer: "первый токен готов",
			want:   []string{"первый ", "токен ", "готов"},
		},
		{
			name:   "single word",
			answer: "привет",
			want:   []string{"привет"},
		},
		{
			name:   "collapses whitespace",
			answer: "  a \n b\tc ",
			want:   []string{"a ", "b ", "c"},
		},
		{
			name:   "empty",
			answer: "",
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chunkWords(tt.answer)

			assert.Equal(t, tt.want, got)
			// Tokens concatenate back to the normalized answer.
			assert.Equal(t, strings.Join(strings.Fields(tt.answer), " "), strings.Join(got, ""))
		})
	}
}
