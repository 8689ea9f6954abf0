package onboarding

import (
	"context"
	"time"

	"hr-hub/internal/shared/database"
	"hr-hub/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	Kind       Kind
	EmployeeID string
	Offset     int
	Limit      int
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, cl *Checklist) error
	// CreateIfAbsent inserts the checklist and its tasks unless the employee
	// already has one of the same kind. It reports whether a row was written.
	CreateIfAbsent(ctx context.Context, cl *Checklist) (bool, error)
	List(ctx context.Context, f ListFilter) ([]Checklist, int64, error)
	FindByID(ctx context.Context, kind Kind, id string) (*Checklist, error)
	FindTask(ctx context.Context, kind Kind, taskID string) (*Task, error)
	// CompleteTask moves a PENDING task to status.
	CompleteTask(ctx context.Context, taskID string, status TaskStatus, actorID *string, at time.Time) (bool, error)
	// CountOpen counts checklists of kind with at least one pending task.
	CountOpen(ctx context.Context, kind Kind) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) scoped(ctx context.Context) *gorm.DB {
	return tenant.Query(ctx, r.db, "checklists.company_id")
}

func (r *repository) Create(ctx context.Context, cl *Checklist) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tasks").Create(cl).Error; err != nil {
			return err
		}
		if len(cl.Tasks) == 0 {
			return nil
		}
		return tx.Create(&cl.Tasks).Error
	})
}

func (r *repository) CreateIfAbsent(ctx context.Context, cl *Checklist) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Omit("Tasks").
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "employee_id"}, {Name: "kind"}},
				DoNothing: true,
			}).
			Create(cl)
		if res.Error != nil || res.RowsAffected == 0 {
			return res.Error
		}
		created = true
		if len(cl.Tasks) == 0 {
			return nil
		}
		return tx.Create(&cl.Tasks).Error
	})
	return created, err
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Checklist, int64, error) {
	q := r.scoped(ctx).Model(&Checklist{}).Where("checklists.kind = ?", f.Kind)
	if f.EmployeeID != "" {
		q = q.Where("checklists.employee_id = ?", f.EmployeeID)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Checklist
	err := q.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("checklist_tasks.position ASC")
	}).
		Order("checklists.created_at DESC").
		Scopes(database.Paginate(f.Offset, f.Limit)).
		Find(&out).Error
	return out, total, err
}

func (r *repository) FindByID(ctx context.Context, kind Kind, id string) (*Checklist, error) {
	var cl Checklist
	err := r.scoped(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("checklist_tasks.position ASC")
		}).
		Where("checklists.kind = ?", kind).
		First(&cl, "checklists.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

func (r *repository) FindTask(ctx context.Context, kind Kind, taskID string) (*Task, error) {
	var t Task
	err := tenant.Query(ctx, r.db, "checklists.company_id").
		Joins("JOIN checklists ON checklists.id = checklist_tasks.checklist_id").
		Where("checklists.kind = ?", kind).
		First(&t, "checklist_tasks.id = ?", taskID).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) CompleteTask(ctx context.Context, taskID string, status TaskStatus, actorID *string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Task{}).
		Where("id = ? AND status = ?", taskID, TaskPending).
		Updates(map[string]any{
			"status":       status,
			"completed_by": actorID,
			"completed_at": at,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *repository) CountOpen(ctx context.Context, kind Kind) (int64, error) {
	var n int64
	err := r.scoped(ctx).
		Model(&Checklist{}).
		Where("checklists.kind = ?", kind).
		Where("EXISTS (SELECT 1 FROM checklist_tasks t WHERE t.checklist_id = checklists.id AND t.status = ?)", TaskPending).
		Count(&n).Error
	return n, err
}
