package audit

import (
	"encoding/json"
	"time"

	"hr-hub/internal/shared/request"
)

type ListLogsQuery struct {
	request.PageQuery
	ResourceType string `form:"resource_type" binding:"omitempty,max=64"`
	ActorID      string `form:"actor_id" binding:"omitempty,uuid"`
	Action       string `form:"action" binding:"omitempty,max=64"`
}

type LogResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	ActorID      *string         `json:"actor_id"`
	Action       string          `json:"action"`
	ResourceType string          `json:"resource_type"`
	ResourceID   string          `json:"resource_id"`
	Changes      json.RawMessage `json:"changes,omitempty"`
	IP           string          `json:"ip,omitempty"`
	UserAgent    string          `json:"user_agent,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
