package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"hr-hub/internal/messaging/kafka"

	"gorm.io/gorm"
)

// Outbox records created events. Err fails Create.
type Outbox struct {
	mu     sync.Mutex
	Events []kafka.OutboxEvent
	Err    error
}

func (o *Outbox) WithTx(tx *gorm.DB) kafka.OutboxRepository { return o }

func (o *Outbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	o.Events = append(o.Events, event)
	return nil
}

func (o *Outbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (o *Outbox) MarkSent(ctx context.Context, id string) error { return nil }

func (o *Outbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

// Decode unmarshals the payload of the i-th event into dst.
func (o *Outbox) Decode(t *testing.T, i int, dst any) {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	if i >= len(o.Events) {
		t.Fatalf("outbox has %d events, want index %d", len(o.Events), i)
	}
	if err := json.Unmarshal(o.Events[i].Payload, dst); err != nil {
		t.Fatalf("decode outbox payload: %v", err)
	}
}
