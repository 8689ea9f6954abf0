package performance

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusActive      Status = "ACTIVE"
	StatusEvalOpen    Status = "EVAL_OPEN"
	StatusCalibration Status = "CALIBRATION"
	StatusClosed      Status = "CLOSED"
)

var path = []Status{StatusDraft, StatusActive, StatusEvalOpen, StatusCalibration, StatusClosed}

// Previous returns the state a cycle must be in to advance to s.
func (s Status) Previous() (Status, bool) {
	for i := 1; i < len(path); i++ {
		if path[i] == s {
			return path[i-1], true
		}
	}
	return "", false
}

type Cycle struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID string    `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(120);not null"`
	StartsOn  time.Time `gorm:"type:date;not null"`
	EndsOn    time.Time `gorm:"type:date;not null"`
	Status    Status    `gorm:"type:varchar(16);not null"`
	CreatedBy string    `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cycle) TableName() string {
	return "performance_cycles"
}
