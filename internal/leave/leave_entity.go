package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeAnnual Type = "ANNUAL"
	TypeSick   Type = "SICK"
	TypeUnpaid Type = "UNPAID"
)

// Tracked reports whether requests of this type draw from a balance row.
func (t Type) Tracked() bool {
	return t != TypeUnpaid
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// Balance holds one employee's allowance for a leave type and calendar year.
// Available days are Entitled - Used - Pending.
type Balance struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID  string          `gorm:"type:uuid;not null;index"`
	EmployeeID string          `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance"`
	LeaveType  Type            `gorm:"type:varchar(16);not null;uniqueIndex:uq_leave_balance"`
	Year       int             `gorm:"not null;uniqueIndex:uq_leave_balance"`
	Entitled   decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	Used       decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	Pending    decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Balance) TableName() string {
	return "leave_balances"
}

func (b Balance) Available() decimal.Decimal {
	return b.Entitled.Sub(b.Used).Sub(b.Pending)
}

type Request struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID       string          `gorm:"type:uuid;not null;index:idx_leave_requests_company_status"`
	EmployeeID      string          `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	LeaveType       Type            `gorm:"type:varchar(16);not null"`
	StartDate       time.Time       `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate         time.Time       `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	Days            decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	Reason          string          `gorm:"type:text"`
	Status          Status          `gorm:"type:varchar(16);not null;index:idx_leave_requests_company_status"`
	CreatedBy       string          `gorm:"type:uuid;not null"`
	DecidedBy       *string         `gorm:"type:uuid"`
	DecidedAt       *time.Time
	RejectionReason *string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Request) TableName() string {
	return "leave_requests"
}

// WorkingDays counts Monday to Friday between start and end, both inclusive.
func WorkingDays(start, end time.Time) decimal.Decimal {
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return decimal.NewFromInt(int64(n))
}
