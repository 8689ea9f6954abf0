package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	IP        string
	UserAgent string
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (Session) TableName() string {
	return "sessions"
}

type principalRow struct {
	UserID     string
	EmployeeID *string
	Role       string
	CompanyID  string
	ExpiresAt  time.Time
}

// Store persists sessions. It resolves identity before any tenant is known,
// so it deliberately reads users without a tenant predicate.
type Store interface {
	Create(ctx context.Context, s *Session) error
	FindActive(ctx context.Context, sessionID string, now time.Time) (Principal, time.Time, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Create(ctx context.Context, sess *Session) error {
	return s.db.WithContext(ctx).Create(sess).Error
}

func (s *store) FindActive(ctx context.Context, sessionID string, now time.Time) (Principal, time.Time, error) {
	var row principalRow
	err := s.db.WithContext(ctx).
		Table("sessions").
		Select("users.id AS user_id, users.employee_id, users.role, users.company_id, sessions.expires_at").
		Joins("JOIN users ON users.id = sessions.user_id").
		Where("sessions.id = ? AND sessions.expires_at > ? AND users.is_active = ?", sessionID, now, true).
		Take(&row).Error
	if err != nil {
		return Principal{}, time.Time{}, err
	}

	p := Principal{
		UserID:    row.UserID,
		Role:      Role(row.Role),
		CompanyID: row.CompanyID,
	}
	if row.EmployeeID != nil {
		p.EmployeeID = *row.EmployeeID
	}
	return p, row.ExpiresAt, nil
}

func (s *store) Delete(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).Where("id = ?", sessionID).Delete(&Session{}).Error
}

func (s *store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&Session{})
	return res.RowsAffected, res.Error
}
