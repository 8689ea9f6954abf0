package audit

import (
	"context"

	"hr-hub/internal/tenant"

	"gorm.io/gorm"
)

type ListFilter struct {
	ResourceType string
	ActorID      string
	Action       string
	Offset       int
	Limit        int
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	InsertBatch(ctx context.Context, logs []Log) error
	List(ctx context.Context, f ListFilter) ([]Log, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) InsertBatch(ctx context.Context, logs []Log) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(logs, 100).Error
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Log, int64, error) {
	q := tenant.Query(ctx, r.db, "audit_logs.company_id").Model(&Log{})
	if f.ResourceType != "" {
		q = q.Where("audit_logs.resource_type = ?", f.ResourceType)
	}
	if f.ActorID != "" {
		q = q.Where("audit_logs.actor_id = ?", f.ActorID)
	}
	if f.Action != "" {
		q = q.Where("audit_logs.action = ?", f.Action)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []Log
	err := q.Order("audit_logs.created_at DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&logs).Error
	return logs, total, err
}
