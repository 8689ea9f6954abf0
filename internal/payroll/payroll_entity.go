package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusCalculating Status = "CALCULATING"
	StatusReview      Status = "REVIEW"
	StatusApproved    Status = "APPROVED"
	StatusPaid        Status = "PAID"
	StatusCancelled   Status = "CANCELLED"
)

// cancellable lists every non-terminal state.
var cancellable = []Status{StatusDraft, StatusCalculating, StatusReview, StatusApproved}

// Run is one company's payroll for a calendar month. uq_payroll_run_period
// allows a single run per (company_id, period).
type Run struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID        string          `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_run_period"`
	Period           string          `gorm:"type:char(7);not null;uniqueIndex:uq_payroll_run_period"`
	Status           Status          `gorm:"type:varchar(16);not null;index"`
	EmployeeCount    int             `gorm:"not null"`
	TotalGross       decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	TotalWithholding decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	TotalNet         decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	CreatedBy        string          `gorm:"type:uuid;not null"`
	ApprovedBy       *string         `gorm:"type:uuid"`
	ApprovedAt       *time.Time
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Items []Item `gorm:"foreignKey:RunID"`
}

func (Run) TableName() string {
	return "payroll_runs"
}

type Item struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RunID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_item_employee"`
	CompanyID   string          `gorm:"type:uuid;not null;index"`
	EmployeeID  string          `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_item_employee"`
	Gross       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Withholding decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Net         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt   time.Time
}

func (Item) TableName() string {
	return "payroll_items"
}

// NewItem applies a flat withholding rate to a monthly gross, rounded to cents.
func NewItem(run *Run, employeeID string, gross, rate decimal.Decimal) Item {
	withholding := gross.Mul(rate).Round(2)
	return Item{
		ID:          uuid.New(),
		RunID:       run.ID,
		CompanyID:   run.CompanyID,
		EmployeeID:  employeeID,
		Gross:       gross,
		Withholding: withholding,
		Net:         gross.Sub(withholding),
	}
}
