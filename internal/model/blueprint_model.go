package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ThreadBlueprint struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       string         `gorm:"index;not null"`
	ThreadId     string         `gorm:"uniqueIndex;not null"`
	CurrentStage int            `gorm:"default:1"`
	Stages       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (ThreadBlueprint) TableName() string {
	return "thread_blueprints"
}
