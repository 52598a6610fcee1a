package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Username     string
	SessionToken string
	Persona      string
	CreatedAt    time.Time
	LastActiveAt time.Time
}
