package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id        uuid.UUID
	UserId    string
	ThreadId  string
	Role      string
	Content   string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
