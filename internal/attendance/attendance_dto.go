package attendance

import (
	"strings"
	"time"

	"hr-hub/internal/shared/request"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type ClockInRequest struct {
	Source    Source   `json:"source" binding:"omitempty,oneof=MANUAL MOBILE KIOSK"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	Notes     *string  `json:"notes" binding:"omitempty,max=500"`
}

func (r *ClockInRequest) SetDefaults() {
	r.Source = SourceManual
}

func (r *ClockInRequest) Normalize() {
	if r.Notes != nil {
		v := strings.TrimSpace(*r.Notes)
		r.Notes = &v
	}
}

type ClockOutRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=500"`
}

type ListQuery struct {
	request.PageQuery
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

type SummaryQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	WeekStart  string `form:"week_start" binding:"required,datetime=2006-01-02"`
}

type RecordResponse struct {
	ID         string     `json:"id"`
	CompanyID  string     `json:"company_id"`
	EmployeeID string     `json:"employee_id"`
	WorkDate   string     `json:"work_date"`
	ClockIn    time.Time  `json:"clock_in"`
	ClockOut   *time.Time `json:"clock_out,omitempty"`
	Status     Status     `json:"status"`
	Source     Source     `json:"source"`
	Latitude   *float64   `json:"latitude,omitempty"`
	Longitude  *float64   `json:"longitude,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

type WeeklySummary struct {
	EmployeeID    string          `json:"employee_id"`
	WeekStart     string          `json:"week_start"`
	WeekEnd       string          `json:"week_end"`
	Days          int             `json:"days"`
	WorkedHours   decimal.Decimal `json:"worked_hours"`
	WeeklyHourCap int             `json:"weekly_hour_cap"`
	Overtime      bool            `json:"overtime"`
}
