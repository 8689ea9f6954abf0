package audit

import (
	"context"
	"encoding/json"
	"time"

	"hr-hub/internal/session"
	"hr-hub/internal/shared/contextutil"

	"github.com/google/uuid"
)

// Log is one persisted audit row.
type Log struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID    string          `gorm:"type:uuid;not null;index"`
	ActorID      *string         `gorm:"type:uuid"`
	Action       string          `gorm:"not null"`
	ResourceType string          `gorm:"not null"`
	ResourceID   string          `gorm:"not null"`
	Changes      json.RawMessage `gorm:"type:jsonb"`
	IP           string
	UserAgent    string
	RequestID    string
	CreatedAt    time.Time
}

func (Log) TableName() string {
	return "audit_logs"
}

type Changes struct {
	Before any `json:"before,omitempty"`
	After  any `json:"after,omitempty"`
}

// Entry is what a business operation reports; the sink turns it into a Log.
type Entry struct {
	ActorID      string
	Action       string
	ResourceType string
	ResourceID   string
	CompanyID    string
	Changes      *Changes
	IP           string
	UserAgent    string
	RequestID    string
	OccurredAt   time.Time
}

// NewEntry fills actor and client details from the request context.
func NewEntry(ctx context.Context, action, resourceType, resourceID, companyID string) Entry {
	md := contextutil.ExtractMetadata(ctx)
	actor := md.UserID
	if p, ok := session.FromContext(ctx); ok {
		actor = p.UserID
	}
	return Entry{
		ActorID:      actor,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		CompanyID:    companyID,
		IP:           md.IP,
		UserAgent:    md.UserAgent,
		RequestID:    md.RequestID,
		OccurredAt:   time.Now().UTC(),
	}
}

func (e Entry) WithChanges(before, after any) Entry {
	e.Changes = &Changes{Before: before, After: after}
	return e
}

func (e Entry) toLog() (Log, error) {
	l := Log{
		ID:           uuid.New(),
		CompanyID:    e.CompanyID,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		IP:           e.IP,
		UserAgent:    e.UserAgent,
		RequestID:    e.RequestID,
		CreatedAt:    e.OccurredAt,
	}
	if e.ActorID != "" {
		actor := e.ActorID
		l.ActorID = &actor
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	if e.Changes != nil {
		raw, err := json.Marshal(e.Changes)
		if err != nil {
			return Log{}, err
		}
		l.Changes = raw
	}
	return l, nil
}
