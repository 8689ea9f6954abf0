package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification rows carry uq_notification_event_employee (event_id, employee_id).
type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  string    `gorm:"type:uuid;not null;index"`
	EmployeeID string    `gorm:"type:uuid;not null;index;uniqueIndex:uq_notification_event_employee"`
	EventID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_notification_event_employee"`
	Kind       string    `gorm:"type:varchar(40);not null"`
	Title      string    `gorm:"type:varchar(150);not null"`
	Body       string    `gorm:"type:text;not null"`
	ReadAt     *time.Time
	CreatedAt  time.Time
}

func (Notification) TableName() string {
	return "notifications"
}

// Delivery is what event consumers hand over to be stored.
type Delivery struct {
	EventID    string
	CompanyID  string
	EmployeeID string
	Kind       string
	Title      string
	Body       string
}
