package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    string         `gorm:"index:idx_chat_messages_thread,priority:1;not null"`
	ThreadId  string         `gorm:"index:idx_chat_messages_thread,priority:2;not null"`
	Role      string         `gorm:"not null"`
	Content   string         `gorm:"type:text"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index:idx_chat_messages_thread,priority:3"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
