package analytics

import "time"

type Dashboard struct {
	Headcount       int64     `json:"headcount"`
	PendingLeave    int64     `json:"pending_leave_requests"`
	OpenPayrollRuns int64     `json:"open_payroll_runs"`
	OpenOnboarding  int64     `json:"open_onboarding_checklists"`
	GeneratedAt     time.Time `json:"generated_at"`
}

type AttritionResponse struct {
	EmployeeID  string  `json:"employee_id"`
	Risk        float64 `json:"risk"`
	Placeholder bool    `json:"placeholder"`
}
