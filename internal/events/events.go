package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"
	LeaveLifecycleTopic    = "hr.leave.lifecycle.v1"
	PayrollLifecycleTopic  = "hr.payroll.lifecycle.v1"
)

const (
	TypeEmployeeCreated = "employee.created"
	TypeLeaveApproved   = "leave.approved"
	TypeLeaveRejected   = "leave.rejected"
	TypePayrollPaid     = "payroll.paid"
)

// Meta is carried by every event; EventID is what consumers deduplicate on.
type Meta struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	CompanyID  string    `json:"company_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewMeta(eventType, companyID string) Meta {
	return Meta{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		CompanyID:  companyID,
		OccurredAt: time.Now().UTC(),
	}
}

// Event is implemented by every payload through its embedded Meta.
type Event interface {
	Header() Meta
}

func (m Meta) Header() Meta {
	return m
}

type EmployeeCreated struct {
	Meta
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	HireDate   string `json:"hire_date"`
}

// LeaveDecided is published for both approvals and rejections.
type LeaveDecided struct {
	Meta
	LeaveRequestID string `json:"leave_request_id"`
	EmployeeID     string `json:"employee_id"`
	LeaveType      string `json:"leave_type"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Reason         string `json:"reason,omitempty"`
}

type PayrollPaid struct {
	Meta
	RunID       string   `json:"run_id"`
	Period      string   `json:"period"`
	EmployeeIDs []string `json:"employee_ids"`
}
