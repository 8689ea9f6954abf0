package analytics

import (
	"context"

	"hr-hub/internal/tenant"

	"gorm.io/gorm"
)

// Repository runs read-only counts over the tables of other modules.
type Repository interface {
	CountActiveEmployees(ctx context.Context) (int64, error)
	CountPendingLeave(ctx context.Context) (int64, error)
	CountOpenPayrollRuns(ctx context.Context) (int64, error)
	CountOpenOnboarding(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) count(ctx context.Context, table string, where string, args ...any) (int64, error) {
	var n int64
	err := tenant.Query(ctx, r.db, table+".company_id").
		Table(table).
		Where(where, args...).
		Count(&n).Error
	return n, err
}

func (r *repository) CountActiveEmployees(ctx context.Context) (int64, error) {
	return r.count(ctx, "employees", "employees.status <> ? AND employees.deleted_at IS NULL", "TERMINATED")
}

func (r *repository) CountPendingLeave(ctx context.Context) (int64, error) {
	return r.count(ctx, "leave_requests", "leave_requests.status = ?", "PENDING")
}

func (r *repository) CountOpenPayrollRuns(ctx context.Context) (int64, error) {
	return r.count(ctx, "payroll_runs", "payroll_runs.status IN ?", []string{"DRAFT", "CALCULATING", "REVIEW", "APPROVED"})
}

func (r *repository) CountOpenOnboarding(ctx context.Context) (int64, error) {
	return r.count(ctx, "checklists",
		"checklists.kind = ? AND EXISTS (SELECT 1 FROM checklist_tasks t WHERE t.checklist_id = checklists.id AND t.status = ?)",
		"ONBOARDING", "PENDING",
	)
}
