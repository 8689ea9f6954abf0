package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
)

type Source string

const (
	SourceManual Source = "MANUAL"
	SourceMobile Source = "MOBILE"
	SourceKiosk  Source = "KIOSK"
)

// Record rows carry uq_attendance_employee_day (employee_id, work_date).
type Record struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID  string     `gorm:"type:uuid;not null;index"`
	EmployeeID string     `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_employee_day"`
	WorkDate   time.Time  `gorm:"type:date;not null;uniqueIndex:uq_attendance_employee_day"`
	ClockIn    time.Time  `gorm:"type:timestamptz;not null"`
	ClockOut   *time.Time `gorm:"type:timestamptz"`
	Status     Status     `gorm:"type:varchar(10);not null"`
	Source     Source     `gorm:"type:varchar(10);not null"`
	Latitude   *float64
	Longitude  *float64
	Notes      *string `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Record) TableName() string {
	return "attendance_records"
}

// lateAfter is the clock-in time of day after which a record is LATE.
const lateAfter = 9*time.Hour + 15*time.Minute

func statusAt(t time.Time) Status {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	if t.Sub(day) > lateAfter {
		return StatusLate
	}
	return StatusPresent
}

// Hours is the worked time of a closed record, zero while still clocked in.
func (r Record) Hours() decimal.Decimal {
	if r.ClockOut == nil || !r.ClockOut.After(r.ClockIn) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(r.ClockOut.Sub(r.ClockIn).Hours())
}
