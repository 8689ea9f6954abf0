package payroll

import (
	"time"

	"hr-hub/internal/shared/request"

	"github.com/shopspring/decimal"
)

type CreateRunRequest struct {
	// CompanyID is only read for super-admins working across tenants.
	CompanyID string `json:"company_id" binding:"omitempty,uuid"`
	Period    string `json:"period" binding:"required,datetime=2006-01"`
}

type ListRunsQuery struct {
	request.PageQuery
	Status Status `form:"status" binding:"omitempty,oneof=DRAFT CALCULATING REVIEW APPROVED PAID CANCELLED"`
	Period string `form:"period" binding:"omitempty,datetime=2006-01"`
}

type ItemResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Gross       decimal.Decimal `json:"gross"`
	Withholding decimal.Decimal `json:"withholding"`
	Net         decimal.Decimal `json:"net"`
}

type RunResponse struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	Period           string          `json:"period"`
	Status           Status          `json:"status"`
	EmployeeCount    int             `json:"employee_count"`
	TotalGross       decimal.Decimal `json:"total_gross"`
	TotalWithholding decimal.Decimal `json:"total_withholding"`
	TotalNet         decimal.Decimal `json:"total_net"`
	CreatedBy        string          `json:"created_by"`
	ApprovedBy       *string         `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	Items            []ItemResponse  `json:"items,omitempty"`
}
