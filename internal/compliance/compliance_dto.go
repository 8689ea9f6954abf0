package compliance

import (
	"time"

	"hr-hub/internal/shared/request"
)

type ListConsentsQuery struct {
	request.PageQuery
	EmployeeID string        `form:"employee_id" binding:"omitempty,uuid"`
	Status     ConsentStatus `form:"status" binding:"omitempty,oneof=GRANTED REVOKED"`
}

type GrantConsentRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Purpose    string `json:"purpose" binding:"required,oneof=payroll_processing biometric_attendance background_check cross_border_transfer marketing"`
}

type ConsentResponse struct {
	ID         string        `json:"id"`
	CompanyID  string        `json:"company_id"`
	EmployeeID string        `json:"employee_id"`
	Purpose    string        `json:"purpose"`
	Regime     string        `json:"regime"`
	Status     ConsentStatus `json:"status"`
	GrantedAt  time.Time     `json:"granted_at"`
	RevokedAt  *time.Time    `json:"revoked_at"`
}
