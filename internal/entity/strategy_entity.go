package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type UserStrategy struct {
	Id                uuid.UUID
	UserId            string
	Positioning       string
	Goals             string
	Cases             string
	Triggers          string
	FullContext       string
	ShortsLogic       json.RawMessage
	Monetization      json.RawMessage
	ContentArch       json.RawMessage
	ContentPlanConfig json.RawMessage
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
