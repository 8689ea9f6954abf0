package employee

import (
	"strings"

	"hr-hub/internal/shared/request"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateEmployeeRequest struct {
	// CompanyID is only read for super-admins working across tenants.
	CompanyID      string          `json:"company_id" binding:"omitempty,uuid"`
	EmployeeNumber string          `json:"employee_number" binding:"omitempty,max=32"`
	FullName       string          `json:"full_name" binding:"required,min=2,max=150"`
	Email          string          `json:"email" binding:"required,email,max=255"`
	Phone          string          `json:"phone" binding:"omitempty,max=32"`
	Department     string          `json:"department" binding:"omitempty,max=100"`
	JobTitle       string          `json:"job_title" binding:"omitempty,max=100"`
	ManagerID      *string         `json:"manager_id" binding:"omitempty,uuid"`
	HireDate       string          `json:"hire_date" binding:"required,datetime=2006-01-02"`
	Status         Status          `json:"status" binding:"oneof=ACTIVE ON_LEAVE"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
}

func (r *CreateEmployeeRequest) SetDefaults() {
	r.Status = StatusActive
}

func (r *CreateEmployeeRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
}

// UpdateEmployeeRequest changes only the fields that are present.
type UpdateEmployeeRequest struct {
	FullName        *string          `json:"full_name" binding:"omitempty,min=2,max=150"`
	Email           *string          `json:"email" binding:"omitempty,email,max=255"`
	Phone           *string          `json:"phone" binding:"omitempty,max=32"`
	Department      *string          `json:"department" binding:"omitempty,max=100"`
	JobTitle        *string          `json:"job_title" binding:"omitempty,max=100"`
	ManagerID       *string          `json:"manager_id" binding:"omitempty,uuid"`
	Status          *Status          `json:"status" binding:"omitempty,oneof=ACTIVE ON_LEAVE TERMINATED"`
	TerminationDate *string          `json:"termination_date" binding:"omitempty,datetime=2006-01-02"`
	BaseSalary      *decimal.Decimal `json:"base_salary"`
}

func (r *UpdateEmployeeRequest) Normalize() {
	if r.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &e
	}
}

type ListEmployeesQuery struct {
	request.PageQuery
	Status     Status `form:"status" binding:"omitempty,oneof=ACTIVE ON_LEAVE TERMINATED"`
	Department string `form:"department" binding:"omitempty,max=100"`
	Q          string `form:"q" binding:"omitempty,max=100"`
}

type EmployeeResponse struct {
	ID              string           `json:"id"`
	CompanyID       string           `json:"company_id"`
	EmployeeNumber  string           `json:"employee_number"`
	FullName        string           `json:"full_name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone,omitempty"`
	Department      string           `json:"department,omitempty"`
	JobTitle        string           `json:"job_title,omitempty"`
	ManagerID       *string          `json:"manager_id"`
	HireDate        string           `json:"hire_date"`
	TerminationDate *string          `json:"termination_date"`
	Status          Status           `json:"status"`
	BaseSalary      *decimal.Decimal `json:"base_salary,omitempty"`
}

// Redacted hides compensation from callers outside HR and leadership.
func (r EmployeeResponse) Redacted() EmployeeResponse {
	r.BaseSalary = nil
	return r
}
