package onboarding

import (
	"time"

	"hr-hub/internal/shared/request"
)

type CreateChecklistRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type ListChecklistsQuery struct {
	request.PageQuery
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
}

type UpdateTaskRequest struct {
	Status TaskStatus `json:"status" binding:"required,oneof=DONE SKIPPED"`
}

type TaskResponse struct {
	ID          string     `json:"id"`
	Position    int        `json:"position"`
	Title       string     `json:"title"`
	Status      TaskStatus `json:"status"`
	CompletedBy *string    `json:"completed_by,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type ChecklistResponse struct {
	ID         string         `json:"id"`
	CompanyID  string         `json:"company_id"`
	EmployeeID string         `json:"employee_id"`
	Kind       Kind           `json:"kind"`
	Progress   int            `json:"progress"`
	Tasks      []TaskResponse `json:"tasks"`
	CreatedAt  time.Time      `json:"created_at"`
}
