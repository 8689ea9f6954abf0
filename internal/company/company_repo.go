package company

import (
	"context"

	"hr-hub/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, offset, limit int) ([]Company, int64, error)
	FindByID(ctx context.Context, id string) (*Company, error)
	ListActive(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, company *Company) error
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

// A company is its own tenant, so the scope column is the primary key.
func (r *repository) scoped(ctx context.Context) *gorm.DB {
	return tenant.Query(ctx, r.db, "companies.id")
}

func (r *repository) List(ctx context.Context, offset, limit int) ([]Company, int64, error) {
	q := r.scoped(ctx).Model(&Company{}).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []Company
	err := q.Order("companies.name ASC").Offset(offset).Limit(limit).Find(&companies).Error
	return companies, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Company, error) {
	var company Company
	err := r.scoped(ctx).First(&company, "companies.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Company, error) {
	var companies []Company
	err := r.scoped(ctx).
		Where("companies.is_active = ?", true).
		Order("companies.name ASC").
		Find(&companies).Error
	return companies, err
}

func (r *repository) Update(ctx context.Context, company *Company) error {
	res := r.scoped(ctx).
		Model(&Company{}).
		Where("companies.id = ?", company.ID).
		Updates(map[string]any{
			"name":       company.Name,
			"timezone":   company.Timezone,
			"is_active":  company.IsActive,
			"updated_at": gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
