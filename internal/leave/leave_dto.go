package leave

import (
	"strings"
	"time"

	"hr-hub/internal/shared/request"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type ListBalancesQuery struct {
	request.PageQuery
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Year       int    `form:"year" binding:"omitempty,min=2000,max=2100"`
}

type CreateBalanceRequest struct {
	EmployeeID string          `json:"employee_id" binding:"required,uuid"`
	LeaveType  Type            `json:"leave_type" binding:"required,oneof=ANNUAL SICK"`
	Year       int             `json:"year" binding:"required,min=2000,max=2100"`
	Entitled   decimal.Decimal `json:"entitled"`
}

type BalanceResponse struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	EmployeeID string          `json:"employee_id"`
	LeaveType  Type            `json:"leave_type"`
	Year       int             `json:"year"`
	Entitled   decimal.Decimal `json:"entitled"`
	Used       decimal.Decimal `json:"used"`
	Pending    decimal.Decimal `json:"pending"`
	Available  decimal.Decimal `json:"available"`
}

type ListRequestsQuery struct {
	request.PageQuery
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     Status `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED"`
}

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	LeaveType  Type   `json:"leave_type" binding:"required,oneof=ANNUAL SICK UNPAID"`
	StartDate  string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Reason     string `json:"reason" binding:"omitempty,max=500"`
}

func (r *CreateLeaveRequest) Normalize() {
	r.Reason = strings.TrimSpace(r.Reason)
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}

type AccrueRequest struct {
	Year int `json:"year" binding:"required,min=2000,max=2100"`
}

type AccrueResult struct {
	Year      int   `json:"year"`
	Companies int   `json:"companies"`
	Created   int64 `json:"created"`
}

type LeaveResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	EmployeeID      string          `json:"employee_id"`
	LeaveType       Type            `json:"leave_type"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	Days            decimal.Decimal `json:"days"`
	Reason          string          `json:"reason"`
	Status          Status          `json:"status"`
	CreatedBy       string          `json:"created_by"`
	DecidedBy       *string         `json:"decided_by,omitempty"`
	DecidedAt       *time.Time      `json:"decided_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
}
