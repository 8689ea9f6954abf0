package notification

import (
	"context"
	"time"

	"hr-hub/internal/shared/database"
	"hr-hub/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Insert ignores a notification already stored for the same event and employee.
	Insert(ctx context.Context, n *Notification) (bool, error)
	ListForEmployee(ctx context.Context, employeeID string, unreadOnly bool, offset, limit int) ([]Notification, int64, error)
	MarkRead(ctx context.Context, employeeID, id string, at time.Time) (*Notification, error)
	MarkAllRead(ctx context.Context, employeeID string, at time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) scoped(ctx context.Context) *gorm.DB {
	return tenant.Query(ctx, r.db, "notifications.company_id")
}

func (r *repository) Insert(ctx context.Context, n *Notification) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "employee_id"}},
			DoNothing: true,
		}).
		Create(n)
	return res.RowsAffected == 1, res.Error
}

func (r *repository) ListForEmployee(ctx context.Context, employeeID string, unreadOnly bool, offset, limit int) ([]Notification, int64, error) {
	q := r.scoped(ctx).Model(&Notification{}).Where("notifications.employee_id = ?", employeeID)
	if unreadOnly {
		q = q.Where("notifications.read_at IS NULL")
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Notification
	err := q.Order("notifications.created_at DESC").Scopes(database.Paginate(offset, limit)).Find(&out).Error
	return out, total, err
}

// MarkRead keeps the first read time when called again.
func (r *repository) MarkRead(ctx context.Context, employeeID, id string, at time.Time) (*Notification, error) {
	var n Notification
	err := r.scoped(ctx).
		Where("notifications.id = ? AND notifications.employee_id = ?", id, employeeID).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	if n.ReadAt != nil {
		return &n, nil
	}

	err = r.scoped(ctx).
		Model(&Notification{}).
		Where("notifications.id = ? AND notifications.read_at IS NULL", id).
		Update("read_at", at).Error
	if err != nil {
		return nil, err
	}
	n.ReadAt = &at
	return &n, nil
}

func (r *repository) MarkAllRead(ctx context.Context, employeeID string, at time.Time) (int64, error) {
	res := r.scoped(ctx).
		Model(&Notification{}).
		Where("notifications.employee_id = ? AND notifications.read_at IS NULL", employeeID).
		Update("read_at", at)
	return res.RowsAffected, res.Error
}
