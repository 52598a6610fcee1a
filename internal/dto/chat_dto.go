package dto

import (
	"encoding/json"
	"time"

	"ai-producer-be/pkg/rag/state"
)

type SendChatRequest struct {
	ThreadId string `json:"thread_id" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Persona  string `json:"persona,omitempty"`
}

type SendChatResponse struct {
	ThreadId     string         `json:"thread_id"`
	Answer       string         `json:"answer"`
	Intent       string         `json:"intent"`
	Sources      []state.Source `json:"sources"`
	CurrentStage int            `json:"current_stage"`
}

type ThreadSummaryResponse struct {
	ThreadId      string `json:"thread_id"`
	Title         string `json:"title"`
	LastMessageAt string `json:"last_message_at"`
	MessageCount  int64  `json:"message_count"`
}

type ChatHistoryResponse struct {
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type BlueprintResponse struct {
	ThreadId     string                     `json:"thread_id"`
	CurrentStage int                        `json:"current_stage"`
	Stages       map[string]json.RawMessage `json:"stages"`
}

// SSE payloads

type StreamSourcesEvent struct {
	Sources []state.Source `json:"sources"`
}

type StreamTokenEvent struct {
	Token string `json:"token"`
}

type StreamDoneEvent struct {
	ThreadId     string `json:"thread_id"`
	Intent       string `json:"intent"`
	CurrentStage int    `json:"current_stage"`
}
