package testutil

import (
	"context"
	"sync"

	"hr-hub/internal/audit"

	"gorm.io/gorm"
)

// AuditRecorder keeps every entry in memory. TxErr fails RecordTx.
type AuditRecorder struct {
	mu        sync.Mutex
	Entries   []audit.Entry
	TxEntries []audit.Entry
	TxErr     error
}

func (r *AuditRecorder) Record(ctx context.Context, e audit.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, e)
}

func (r *AuditRecorder) RecordTx(ctx context.Context, tx *gorm.DB, e audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.TxErr != nil {
		return r.TxErr
	}
	r.TxEntries = append(r.TxEntries, e)
	return nil
}

// Actions lists the recorded actions in order, async entries first.
func (r *AuditRecorder) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Entries)+len(r.TxEntries))
	for _, e := range r.Entries {
		out = append(out, e.Action)
	}
	for _, e := range r.TxEntries {
		out = append(out, e.Action)
	}
	return out
}
