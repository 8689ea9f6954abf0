package leave

import (
	"context"
	"time"

	"hr-hub/internal/shared/database"
	"hr-hub/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BalanceFilter struct {
	EmployeeID string
	Year       int
	Offset     int
	Limit      int
}

type RequestFilter struct {
	EmployeeID string
	Status     Status
	Offset     int
	Limit      int
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateBalance(ctx context.Context, b *Balance) error
	ListBalances(ctx context.Context, f BalanceFilter) ([]Balance, int64, error)
	// FindBalanceForUpdate locks the balance row until the transaction ends.
	FindBalanceForUpdate(ctx context.Context, employeeID string, leaveType Type, year int) (*Balance, error)
	AdjustBalance(ctx context.Context, id uuid.UUID, usedDelta, pendingDelta decimal.Decimal) error
	// SeedBalances inserts rows that do not exist yet and reports how many were new.
	SeedBalances(ctx context.Context, balances []Balance) (int64, error)

	CreateRequest(ctx context.Context, r *Request) error
	ListRequests(ctx context.Context, f RequestFilter) ([]Request, int64, error)
	FindRequest(ctx context.Context, id string) (*Request, error)
	FindRequestForUpdate(ctx context.Context, id string) (*Request, error)
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	// Decide moves a request out of PENDING; false means it was no longer PENDING.
	Decide(ctx context.Context, r *Request) (bool, error)
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

func (r *repository) balances(ctx context.Context) *gorm.DB {
	return tenant.Query(ctx, r.db, "leave_balances.company_id")
}

func (r *repository) requests(ctx context.Context) *gorm.DB {
	return tenant.Query(ctx, r.db, "leave_requests.company_id")
}

func (r *repository) CreateBalance(ctx context.Context, b *Balance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) ListBalances(ctx context.Context, f BalanceFilter) ([]Balance, int64, error) {
	q := r.balances(ctx).Model(&Balance{})
	if f.EmployeeID != "" {
		q = q.Where("leave_balances.employee_id = ?", f.EmployeeID)
	}
	if f.Year != 0 {
		q = q.Where("leave_balances.year = ?", f.Year)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Balance
	err := q.Order("leave_balances.year DESC, leave_balances.leave_type ASC").
		Scopes(database.Paginate(f.Offset, f.Limit)).
		Find(&out).Error
	return out, total, err
}

func (r *repository) FindBalanceForUpdate(ctx context.Context, employeeID string, leaveType Type, year int) (*Balance, error) {
	var b Balance
	err := database.ForUpdate(r.balances(ctx)).
		Where("leave_balances.employee_id = ? AND leave_balances.leave_type = ? AND leave_balances.year = ?", employeeID, leaveType, year).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) AdjustBalance(ctx context.Context, id uuid.UUID, usedDelta, pendingDelta decimal.Decimal) error {
	res := r.balances(ctx).
		Model(&Balance{}).
		Where("leave_balances.id = ?", id).
		Updates(map[string]any{
			"used":       gorm.Expr("used + ?", usedDelta),
			"pending":    gorm.Expr("pending + ?", pendingDelta),
			"updated_at": gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) SeedBalances(ctx context.Context, balances []Balance) (int64, error) {
	if len(balances) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "leave_type"}, {Name: "year"}},
			DoNothing: true,
		}).
		CreateInBatches(balances, 500)
	return res.RowsAffected, res.Error
}

func (r *repository) CreateRequest(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) ListRequests(ctx context.Context, f RequestFilter) ([]Request, int64, error) {
	q := r.requests(ctx).Model(&Request{})
	if f.EmployeeID != "" {
		q = q.Where("leave_requests.employee_id = ?", f.EmployeeID)
	}
	if f.Status != "" {
		q = q.Where("leave_requests.status = ?", f.Status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Request
	err := q.Order("leave_requests.start_date DESC").
		Scopes(database.Paginate(f.Offset, f.Limit)).
		Find(&out).Error
	return out, total, err
}

func (r *repository) FindRequest(ctx context.Context, id string) (*Request, error) {
	var req Request
	if err := r.requests(ctx).First(&req, "leave_requests.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) FindRequestForUpdate(ctx context.Context, id string) (*Request, error) {
	var req Request
	if err := database.ForUpdate(r.requests(ctx)).First(&req, "leave_requests.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.requests(ctx).
		Model(&Request{}).
		Where("leave_requests.employee_id = ?", employeeID).
		Where("leave_requests.status IN ?", []Status{StatusPending, StatusApproved}).
		Where("NOT (leave_requests.end_date < ? OR leave_requests.start_date > ?)", start, end).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Decide(ctx context.Context, req *Request) (bool, error) {
	res := r.requests(ctx).
		Model(&Request{}).
		Where("leave_requests.id = ? AND leave_requests.status = ?", req.ID, StatusPending).
		Updates(map[string]any{
			"status":           req.Status,
			"decided_by":       req.DecidedBy,
			"decided_at":       req.DecidedAt,
			"rejection_reason": req.RejectionReason,
			"updated_at":       gorm.Expr("NOW()"),
		})
	return res.RowsAffected == 1, res.Error
}
