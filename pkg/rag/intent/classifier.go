package intent

import (
	"context"
	"strings"

	"ai-producer-be/internal/pkg/logger"
	"ai-producer-be/pkg/llm"
	"ai-producer-be/pkg/rag/prompt"
	"ai-producer-be/pkg/rag/state"
)

// historyTurns is how many trailing history turns the classifier sees.
const historyTurns = 3

// Classifier labels a user message with one of the fixed intent labels.
// It never fails: any provider error or unrecognized label degrades to
// direct_response so the pipeline keeps moving.
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewClassifier(llmProvider llm.LLMProvider, log logger.ILogger) *Classifier {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Classifier{
		llmProvider: llmProvider,
		logger:      log,
	}
}

// Classify runs a single deterministic-leaning LLM call over the fixed
// router prompt plus at most the last three history turns.
func (c *Classifier) Classify(ctx context.Context, message string, history []llm.Message) string {
	messages := []llm.Message{{Role: llm.RoleSystem, Content: prompt.RouterSystem}}

	if len(history) > historyTurns {
		history = history[len(history)-historyTurns:]
	}
	for _, turn := range history {
		if turn.Role == llm.RoleUser {
			messages = append(messages, turn)
		}
	}

	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	response, err := c.llmProvider.Chat(ctx, messages, llm.WithTemperature(0.0))
	if err != nil {
		c.logger.Error("intent", "classification failed, defaulting to direct_response", map[string]interface{}{
			"error": err.Error(),
		})
		return state.IntentDirectResponse
	}

	label := strings.ToLower(strings.TrimSpace(response))
	switch label {
	case state.IntentKnowledgeBaseSearch, state.IntentCreativeWriting, state.IntentDirectResponse:
		return label
	}

	c.logger.Warn("intent", "unrecognized label from model", map[string]interface{}{
		"label": label,
	})
	return state.IntentDirectResponse
}
