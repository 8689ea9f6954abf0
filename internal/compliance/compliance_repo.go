package compliance

import (
	"context"
	"time"

	"hr-hub/internal/shared/database"
	"hr-hub/internal/tenant"

	"gorm.io/gorm"
)

type ConsentFilter struct {
	EmployeeID string
	Status     ConsentStatus
	Offset     int
	Limit      int
}

type Repository interface {
	Create(ctx context.Context, c *Consent) error
	List(ctx context.Context, f ConsentFilter) ([]Consent, int64, error)
	FindByID(ctx context.Context, id string) (*Consent, error)
	// Revoke flips a GRANTED consent; false means it was not GRANTED any more.
	Revoke(ctx context.Context, id string, at time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) scoped(ctx context.Context) *gorm.DB {
	return tenant.Query(ctx, r.db, "consents.company_id")
}

func (r *repository) Create(ctx context.Context, c *Consent) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) List(ctx context.Context, f ConsentFilter) ([]Consent, int64, error) {
	q := r.scoped(ctx).Model(&Consent{})
	if f.EmployeeID != "" {
		q = q.Where("consents.employee_id = ?", f.EmployeeID)
	}
	if f.Status != "" {
		q = q.Where("consents.status = ?", f.Status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Consent
	err := q.Order("consents.granted_at DESC").Scopes(database.Paginate(f.Offset, f.Limit)).Find(&out).Error
	return out, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Consent, error) {
	var c Consent
	if err := r.scoped(ctx).First(&c, "consents.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Revoke(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.scoped(ctx).
		Model(&Consent{}).
		Where("consents.id = ? AND consents.status = ?", id, ConsentGranted).
		Updates(map[string]any{"status": ConsentRevoked, "revoked_at": at, "updated_at": at})
	return res.RowsAffected == 1, res.Error
}
