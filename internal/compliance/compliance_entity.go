package compliance

import (
	"time"

	"github.com/google/uuid"
)

type ConsentStatus string

const (
	ConsentGranted ConsentStatus = "GRANTED"
	ConsentRevoked ConsentStatus = "REVOKED"
)

// Consent records an employee's agreement to a data-processing purpose.
// uq_consent_active allows one GRANTED row per (employee_id, purpose).
type Consent struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey"`
	CompanyID  string        `gorm:"type:uuid;not null;index"`
	EmployeeID string        `gorm:"type:uuid;not null;index"`
	Purpose    string        `gorm:"type:varchar(64);not null"`
	Regime     string        `gorm:"type:varchar(32);not null"`
	Status     ConsentStatus `gorm:"type:varchar(16);not null"`
	GrantedAt  time.Time     `gorm:"not null"`
	RevokedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Consent) TableName() string {
	return "consents"
}
