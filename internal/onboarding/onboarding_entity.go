package onboarding

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindOnboarding  Kind = "ONBOARDING"
	KindOffboarding Kind = "OFFBOARDING"
)

type TaskStatus string

const (
	TaskPending TaskStatus = "PENDING"
	TaskDone    TaskStatus = "DONE"
	TaskSkipped TaskStatus = "SKIPPED"
)

// Checklist rows carry uq_checklist_employee_kind (employee_id, kind).
type Checklist struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  string    `gorm:"type:uuid;not null;index"`
	EmployeeID string    `gorm:"type:uuid;not null;uniqueIndex:uq_checklist_employee_kind"`
	Kind       Kind      `gorm:"type:varchar(16);not null;uniqueIndex:uq_checklist_employee_kind"`
	CreatedBy  *string   `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Tasks      []Task `gorm:"foreignKey:ChecklistID"`
}

func (Checklist) TableName() string {
	return "checklists"
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ChecklistID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Position    int        `gorm:"not null"`
	Title       string     `gorm:"type:varchar(150);not null"`
	Status      TaskStatus `gorm:"type:varchar(10);not null"`
	CompletedBy *string    `gorm:"type:uuid"`
	CompletedAt *time.Time
}

func (Task) TableName() string {
	return "checklist_tasks"
}

var templates = map[Kind][]string{
	KindOnboarding: {
		"Sign employment contract",
		"Submit tax and identity documents",
		"Provision laptop and accounts",
		"Assign onboarding buddy",
		"Complete compliance training",
		"First-week check-in with manager",
	},
	KindOffboarding: {
		"Confirm last working day",
		"Collect company equipment",
		"Revoke system access",
		"Settle final payroll",
		"Conduct exit interview",
	},
}

// NewChecklist builds a checklist with the default task template for kind.
func NewChecklist(kind Kind, companyID, employeeID string, createdBy *string) Checklist {
	cl := Checklist{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Kind:       kind,
		CreatedBy:  createdBy,
	}
	for i, title := range templates[kind] {
		cl.Tasks = append(cl.Tasks, Task{
			ID:          uuid.New(),
			ChecklistID: cl.ID,
			Position:    i + 1,
			Title:       title,
			Status:      TaskPending,
		})
	}
	return cl
}
