package attendance

import (
	"context"
	"time"

	"hr-hub/internal/shared/database"
	"hr-hub/internal/tenant"

	"gorm.io/gorm"
)

type ListFilter struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
	Offset     int
	Limit      int
}

type Repository interface {
	Create(ctx context.Context, r *Record) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*Record, error)
	// ClockOut closes an open record. It reports false when the record was already closed.
	ClockOut(ctx context.Context, id string, at time.Time, notes *string) (bool, error)
	List(ctx context.Context, f ListFilter) ([]Record, int64, error)
	// ListRange returns an employee's records with from <= work_date < to.
	ListRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) scoped(ctx context.Context) *gorm.DB {
	return tenant.Query(ctx, r.db, "attendance_records.company_id")
}

func (r *repository) Create(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*Record, error) {
	var rec Record
	err := r.scoped(ctx).
		Where("attendance_records.employee_id = ? AND attendance_records.work_date = ?", employeeID, day.Format(dateLayout)).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) ClockOut(ctx context.Context, id string, at time.Time, notes *string) (bool, error) {
	fields := map[string]any{"clock_out": at, "updated_at": at}
	if notes != nil {
		fields["notes"] = *notes
	}
	res := r.scoped(ctx).
		Model(&Record{}).
		Where("attendance_records.id = ? AND attendance_records.clock_out IS NULL", id).
		Updates(fields)
	return res.RowsAffected == 1, res.Error
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Record, int64, error) {
	q := r.scoped(ctx).Model(&Record{})
	if f.EmployeeID != "" {
		q = q.Where("attendance_records.employee_id = ?", f.EmployeeID)
	}
	if f.From != nil {
		q = q.Where("attendance_records.work_date >= ?", f.From.Format(dateLayout))
	}
	if f.To != nil {
		q = q.Where("attendance_records.work_date <= ?", f.To.Format(dateLayout))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Record
	err := q.Order("attendance_records.work_date DESC, attendance_records.clock_in DESC").
		Scopes(database.Paginate(f.Offset, f.Limit)).
		Find(&out).Error
	return out, total, err
}

func (r *repository) ListRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error) {
	var out []Record
	err := r.scoped(ctx).
		Where("attendance_records.employee_id = ?", employeeID).
		Where("attendance_records.work_date >= ? AND attendance_records.work_date < ?", from.Format(dateLayout), to.Format(dateLayout)).
		Order("attendance_records.work_date ASC").
		Find(&out).Error
	return out, err
}
