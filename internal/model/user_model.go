package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	SessionToken string    `gorm:"index"`
	Persona      string    `gorm:"default:''"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	LastActiveAt time.Time
}

func (User) TableName() string {
	return "users"
}
