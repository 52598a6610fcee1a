package dto

import "encoding/json"

type UpdateStrategyRequest struct {
	Positioning       string          `json:"positioning,omitempty"`
	Goals             string          `json:"goals,omitempty"`
	Cases             string          `json:"cases,omitempty"`
	Triggers          string          `json:"triggers,omitempty"`
	FullContext       string          `json:"full_context,omitempty"`
	ShortsLogic       json.RawMessage `json:"shorts_logic,omitempty"`
	Monetization      json.RawMessage `json:"monetization,omitempty"`
	ContentArch       json.RawMessage `json:"content_architecture,omitempty"`
	ContentPlanConfig json.RawMessage `json:"content_plan_config,omitempty"`
}

type StrategyResponse struct {
	UserId            string          `json:"user_id"`
	Positioning       string          `json:"positioning"`
	Goals             string          `json:"goals"`
	Cases             string          `json:"cases"`
	Triggers          string          `json:"triggers"`
	FullContext       string          `json:"full_context"`
	ShortsLogic       json.RawMessage `json:"shorts_logic,omitempty"`
	Monetization      json.RawMessage `json:"monetization,omitempty"`
	ContentArch       json.RawMessage `json:"content_architecture,omitempty"`
	ContentPlanConfig json.RawMessage `json:"content_plan_config,omitempty"`
}
