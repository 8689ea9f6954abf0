package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusOnLeave    Status = "ON_LEAVE"
	StatusTerminated Status = "TERMINATED"
)

// Employee rows carry uq_employee_number (company_id, employee_number) and
// uq_employee_email (company_id, email).
type Employee struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID       string          `gorm:"type:uuid;not null;index"`
	EmployeeNumber  string          `gorm:"type:varchar(32);not null"`
	FullName        string          `gorm:"type:varchar(150);not null"`
	Email           string          `gorm:"type:varchar(255);not null"`
	Phone           string          `gorm:"type:varchar(32)"`
	Department      string          `gorm:"type:varchar(100);index"`
	JobTitle        string          `gorm:"type:varchar(100)"`
	ManagerID       *string         `gorm:"type:uuid"`
	HireDate        time.Time       `gorm:"type:date;not null"`
	TerminationDate *time.Time      `gorm:"type:date"`
	Status          Status          `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	BaseSalary      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
