package events

import "time"

const (
	TypeChatAnswered    = "CHAT_ANSWERED"
	TypeThreadDeleted   = "THREAD_DELETED"
	TypeSourceIngested  = "SOURCE_INGESTED"
	TypeSourceDeleted   = "SOURCE_DELETED"
	TypeStrategyUpdated = "STRATEGY_UPDATED"
)

func NewChatAnswered(userId, threadId, intent string, stage int, sources int) Event {
	return BaseEvent{
		Type: TypeChatAnswered,
		Data: map[string]interface{}{
			"user_id":   userId,
			"thread_id": threadId,
			"intent":    intent,
			"stage":     stage,
			"sources":   sources,
		},
		OccurredAt: time.Now(),
	}
}

func NewThreadDeleted(userId, threadId string) Event {
	return BaseEvent{
		Type: TypeThreadDeleted,
		Data: map[string]interface{}{
			"user_id":   userId,
			"thread_id": threadId,
		},
		OccurredAt: time.Now(),
	}
}

func NewSourceIngested(source string, chunks int) Event {
	return BaseEvent{
		Type: TypeSourceIngested,
		Data: map[string]interface{}{
			"source": source,
			"chunks": chunks,
		},
		OccurredAt: time.Now(),
	}
}

func NewSourceDeleted(source string, chunks int64) Event {
	return BaseEvent{
		Type: TypeSourceDeleted,
		Data: map[string]interface{}{
			"source": source,
			"chunks": chunks,
		},
		OccurredAt: time.Now(),
	}
}

func NewStrategyUpdated(userId string) Event {
	return BaseEvent{
		Type: TypeStrategyUpdated,
		Data: map[string]interface{}{
			"user_id": userId,
		},
		OccurredAt: time.Now(),
	}
}
