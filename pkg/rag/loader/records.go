package loader

import (
	"context"
	"encoding/json"
)

// StrategyRecord is the abstract shape of the user's positioning/strategy
// row. JSON columns arrive raw and are validated where they are rendered.
type StrategyRecord struct {
	UserID       string
	Goals        string
	Cases        string
	Triggers     string
	FullContext  string
	ShortsLogic  json.RawMessage
	Monetization json.RawMessage
}

// RecordStore is the document/record boundary the loaders read from.
// Both lookups return (nil/"" , nil) when nothing exists; absence is not an
// error.
type RecordStore interface {
	GetStrategy(ctx context.Context, userID string) (*StrategyRecord, error)
	GetPassport(ctx context.Context, persona string) (string, error)
}
