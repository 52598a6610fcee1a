package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ThreadBlueprint is the durable multi-stage plan accumulated for one chat
// thread. Stages is keyed by stage number (1..10); merging is latest-wins
// per key.
type ThreadBlueprint struct {
	Id           uuid.UUID
	UserId       string
	ThreadId     string
	CurrentStage int
	Stages       map[int]json.RawMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
