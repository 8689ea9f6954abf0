package payroll

import (
	"context"

	"hr-hub/internal/shared/database"
	"hr-hub/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	Status Status
	Period string
	Offset int
	Limit  int
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, run *Run) error
	List(ctx context.Context, f ListFilter) ([]Run, int64, error)
	FindByID(ctx context.Context, id string) (*Run, error)
	FindWithItems(ctx context.Context, id string) (*Run, error)
	// Transition moves the run to `to` only if its status is one of `from`.
	// false means the run exists in another state or not at all.
	Transition(ctx context.Context, id string, from []Status, to Status, fields map[string]any) (bool, error)
	ReplaceItems(ctx context.Context, runID uuid.UUID, items []Item) error
	EmployeeIDs(ctx context.Context, runID uuid.UUID) ([]string, error)
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

func (r *repository) runs(ctx context.Context) *gorm.DB {
	return tenant.Query(ctx, r.db, "payroll_runs.company_id")
}

func (r *repository) items(ctx context.Context) *gorm.DB {
	return tenant.Query(ctx, r.db, "payroll_items.company_id")
}

func (r *repository) Create(ctx context.Context, run *Run) error {
	return r.db.WithContext(ctx).Omit("Items").Create(run).Error
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Run, int64, error) {
	q := r.runs(ctx).Model(&Run{})
	if f.Status != "" {
		q = q.Where("payroll_runs.status = ?", f.Status)
	}
	if f.Period != "" {
		q = q.Where("payroll_runs.period = ?", f.Period)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Run
	err := q.Order("payroll_runs.period DESC").
		Scopes(database.Paginate(f.Offset, f.Limit)).
		Find(&out).Error
	return out, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Run, error) {
	var run Run
	if err := r.runs(ctx).First(&run, "payroll_runs.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) FindWithItems(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := r.runs(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("payroll_items.employee_id ASC")
		}).
		First(&run, "payroll_runs.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) Transition(ctx context.Context, id string, from []Status, to Status, fields map[string]any) (bool, error) {
	updates := map[string]any{"status": to, "updated_at": gorm.Expr("NOW()")}
	for k, v := range fields {
		updates[k] = v
	}
	res := r.runs(ctx).
		Model(&Run{}).
		Where("payroll_runs.id = ? AND payroll_runs.status IN ?", id, from).
		Updates(updates)
	return res.RowsAffected == 1, res.Error
}

func (r *repository) ReplaceItems(ctx context.Context, runID uuid.UUID, items []Item) error {
	if err := r.items(ctx).Where("payroll_items.run_id = ?", runID).Delete(&Item{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(items, 500).Error
}

func (r *repository) EmployeeIDs(ctx context.Context, runID uuid.UUID) ([]string, error) {
	var ids []string
	err := r.items(ctx).
		Model(&Item{}).
		Where("payroll_items.run_id = ?", runID).
		Order("payroll_items.employee_id ASC").
		Pluck("payroll_items.employee_id", &ids).Error
	return ids, err
}
