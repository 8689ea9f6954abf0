package department

import (
	"context"

	"hr-hub/internal/shared/database"
	"hr-hub/internal/tenant"

	"gorm.io/gorm"
)

const headcountSelect = `departments.*, (SELECT COUNT(*) FROM employees e
WHERE e.company_id = departments.company_id AND e.department = departments.name
AND e.deleted_at IS NULL AND e.status <> 'TERMINATED') AS headcount`

type Repository interface {
	Create(ctx context.Context, d *Department) error
	List(ctx context.Context, q string, offset, limit int) ([]ListRow, int64, error)
	FindByID(ctx context.Context, id string) (*Department, error)
	Update(ctx context.Context, d *Department) error
	Delete(ctx context.Context, id string) error
	// CountMembers counts employees of the company still assigned to the department name.
	CountMembers(ctx context.Context, companyID, name string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) scoped(ctx context.Context) *gorm.DB {
	return tenant.Query(ctx, r.db, "departments.company_id")
}

func (r *repository) Create(ctx context.Context, d *Department) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) List(ctx context.Context, q string, offset, limit int) ([]ListRow, int64, error) {
	query := r.scoped(ctx).Model(&Department{})
	if q != "" {
		query = query.Where("departments.name ILIKE ?", "%"+q+"%")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []ListRow
	err := query.Select(headcountSelect).
		Order("departments.name ASC").
		Scopes(database.Paginate(offset, limit)).
		Find(&out).Error
	return out, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Department, error) {
	var d Department
	if err := r.scoped(ctx).First(&d, "departments.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) Update(ctx context.Context, d *Department) error {
	return r.scoped(ctx).
		Model(&Department{}).
		Where("departments.id = ?", d.ID).
		Updates(map[string]any{"name": d.Name, "description": d.Description, "updated_at": gorm.Expr("NOW()")}).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.scoped(ctx).Where("departments.id = ?", id).Delete(&Department{}).Error
}

func (r *repository) CountMembers(ctx context.Context, companyID, name string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("company_id = ? AND department = ? AND deleted_at IS NULL AND status <> ?", companyID, name, "TERMINATED").
		Count(&n).Error
	return n, err
}
