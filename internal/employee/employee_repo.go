package employee

import (
	"context"
	"strings"

	"hr-hub/internal/shared/database"
	"hr-hub/internal/tenant"

	"gorm.io/gorm"
)

type ListFilter struct {
	Status     Status
	Department string
	Q          string
	Offset     int
	Limit      int
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Employee) error
	List(ctx context.Context, f ListFilter) ([]Employee, int64, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
	// ListActive returns every non-terminated employee in scope, oldest hire first.
	ListActive(ctx context.Context) ([]Employee, error)
	CountActive(ctx context.Context) (int64, error)
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

func (r *repository) scoped(ctx context.Context) *gorm.DB {
	return tenant.Query(ctx, r.db, "employees.company_id")
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Employee, int64, error) {
	q := r.scoped(ctx).Model(&Employee{})
	if f.Status != "" {
		q = q.Where("employees.status = ?", f.Status)
	}
	if f.Department != "" {
		q = q.Where("employees.department = ?", f.Department)
	}
	if term := strings.TrimSpace(f.Q); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("(LOWER(employees.full_name) LIKE ? OR LOWER(employees.email) LIKE ? OR employees.employee_number = ?)",
			like, like, term)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Employee
	err := q.Order("employees.full_name ASC").
		Scopes(database.Paginate(f.Offset, f.Limit)).
		Find(&out).Error
	return out, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	if err := r.scoped(ctx).First(&e, "employees.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	res := r.scoped(ctx).
		Model(&Employee{}).
		Where("employees.id = ?", e.ID).
		Select("full_name", "email", "phone", "department", "job_title", "manager_id",
			"status", "termination_date", "base_salary", "updated_at").
		Updates(e)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.scoped(ctx).Where("employees.id = ?", id).Delete(&Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ListActive(ctx context.Context) ([]Employee, error) {
	var out []Employee
	err := r.scoped(ctx).
		Where("employees.status <> ?", StatusTerminated).
		Order("employees.hire_date ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.scoped(ctx).Model(&Employee{}).
		Where("employees.status <> ?", StatusTerminated).
		Count(&n).Error
	return n, err
}
