package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserStrategy struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId            string         `gorm:"uniqueIndex;not null"`
	Positioning       string         `gorm:"type:text"`
	Goals             string         `gorm:"type:text"`
	Cases             string         `gorm:"type:text"`
	Triggers          string         `gorm:"type:text"`
	FullContext       string         `gorm:"type:text"`
	ShortsLogic       datatypes.JSON `gorm:"type:jsonb"`
	Monetization      datatypes.JSON `gorm:"type:jsonb"`
	ContentArch       datatypes.JSON `gorm:"type:jsonb;column:content_architecture"`
	ContentPlanConfig datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime"`
}

func (UserStrategy) TableName() string {
	return "user_strategies"
}
