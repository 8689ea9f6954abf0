package performance

import (
	"context"

	"hr-hub/internal/shared/database"
	"hr-hub/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, c *Cycle) error
	List(ctx context.Context, status Status, offset, limit int) ([]Cycle, int64, error)
	FindByID(ctx context.Context, id string) (*Cycle, error)
	// Advance sets `to` only when the cycle is currently `from`.
	Advance(ctx context.Context, id string, from, to Status) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) scoped(ctx context.Context) *gorm.DB {
	return tenant.Query(ctx, r.db, "performance_cycles.company_id")
}

func (r *repository) Create(ctx context.Context, c *Cycle) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) List(ctx context.Context, status Status, offset, limit int) ([]Cycle, int64, error) {
	q := r.scoped(ctx).Model(&Cycle{})
	if status != "" {
		q = q.Where("performance_cycles.status = ?", status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Cycle
	err := q.Order("performance_cycles.starts_on DESC").Scopes(database.Paginate(offset, limit)).Find(&out).Error
	return out, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Cycle, error) {
	var c Cycle
	if err := r.scoped(ctx).First(&c, "performance_cycles.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Advance(ctx context.Context, id string, from, to Status) (bool, error) {
	res := r.scoped(ctx).
		Model(&Cycle{}).
		Where("performance_cycles.id = ? AND performance_cycles.status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": gorm.Expr("NOW()")})
	return res.RowsAffected == 1, res.Error
}
