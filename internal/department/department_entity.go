package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Department names are unique per company (uq_department_company_name).
// Employees reference a department by name.
type Department struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID   string         `gorm:"type:uuid;not null;uniqueIndex:uq_department_company_name"`
	Name        string         `gorm:"type:varchar(100);not null;uniqueIndex:uq_department_company_name"`
	Description string         `gorm:"type:varchar(255)"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Department) TableName() string {
	return "departments"
}

// ListRow is a department with its headcount, which counts non-terminated employees.
type ListRow struct {
	Department `gorm:"embedded"`
	Headcount  int64 `gorm:"column:headcount"`
}
