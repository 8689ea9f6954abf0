package leave

import (
	"context"
	"errors"
	"time"

	"hr-hub/internal/audit"
	"hr-hub/internal/company"
	"hr-hub/internal/compliance"
	"hr-hub/internal/employee"
	"hr-hub/internal/events"
	leaveerrors "hr-hub/internal/leave/errors"
	"hr-hub/internal/messaging/kafka"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/shared/database"
	"hr-hub/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	ListBalances(ctx context.Context, q ListBalancesQuery) ([]BalanceResponse, int64, error)
	CreateBalance(ctx context.Context, req CreateBalanceRequest) (BalanceResponse, error)

	ListRequests(ctx context.Context, q ListRequestsQuery) ([]LeaveResponse, int64, error)
	GetRequest(ctx context.Context, id string) (LeaveResponse, error)
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, id string) (LeaveResponse, error)
	Reject(ctx context.Context, id, reason string) (LeaveResponse, error)
	Cancel(ctx context.Context, id string) (LeaveResponse, error)

	// Accrue seeds ANNUAL balances for every active employee of every active company.
	Accrue(ctx context.Context, year int) (AccrueResult, error)
}

// CompanyDirectory lists the tenants accrual runs over.
type CompanyDirectory interface {
	ActiveCompanies(ctx context.Context) ([]company.CompanyResponse, error)
}

// RuleBook answers the statutory leave allowance of a country.
type RuleBook interface {
	Rule(country string) (compliance.Rule, error)
}

type service struct {
	transactor database.Transactor
	repo       Repository
	employees  employee.Repository
	companies  CompanyDirectory
	rules      RuleBook
	outbox     kafka.OutboxRepository
	audit      audit.Recorder
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	transactor database.Transactor,
	repo Repository,
	employees employee.Repository,
	companies CompanyDirectory,
	rules RuleBook,
	outboxRepo kafka.OutboxRepository,
	recorder audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		transactor: transactor,
		repo:       repo,
		employees:  employees,
		companies:  companies,
		rules:      rules,
		outbox:     outboxRepo,
		audit:      recorder,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     l,
	}
}

func (s *service) ListBalances(ctx context.Context, q ListBalancesQuery) ([]BalanceResponse, int64, error) {
	rows, total, err := s.repo.ListBalances(ctx, BalanceFilter{
		EmployeeID: q.EmployeeID,
		Year:       q.Year,
		Offset:     q.Offset(),
		Limit:      q.Limit,
	})
	if err != nil {
		s.logger.Error("list leave balances failed", zap.Error(err))
		return nil, 0, apperror.FromStorage(err)
	}
	out := make([]BalanceResponse, len(rows))
	for i, b := range rows {
		out[i] = mapBalance(b)
	}
	return out, total, nil
}

func (s *service) CreateBalance(ctx context.Context, req CreateBalanceRequest) (BalanceResponse, error) {
	if req.Entitled.IsNegative() {
		return BalanceResponse{}, leaveerrors.ErrNegativeEntitlement
	}
	empl, err := s.findEmployee(ctx, req.EmployeeID)
	if err != nil {
		return BalanceResponse{}, err
	}

	b := &Balance{
		ID:         uuid.New(),
		CompanyID:  empl.CompanyID,
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		Year:       req.Year,
		Entitled:   req.Entitled,
		Used:       decimal.Zero,
		Pending:    decimal.Zero,
	}
	if err := s.repo.CreateBalance(ctx, b); err != nil {
		if apperror.IsUniqueViolation(err, "uq_leave_balance") {
			return BalanceResponse{}, leaveerrors.ErrBalanceAlreadyExists
		}
		s.logger.Error("create leave balance failed", zap.Error(err))
		return BalanceResponse{}, apperror.FromStorage(err)
	}

	resp := mapBalance(*b)
	s.audit.Record(ctx, audit.NewEntry(ctx, "leave.balance.create", "leave_balance", resp.ID, b.CompanyID).WithChanges(nil, resp))
	return resp, nil
}

func (s *service) ListRequests(ctx context.Context, q ListRequestsQuery) ([]LeaveResponse, int64, error) {
	rows, total, err := s.repo.ListRequests(ctx, RequestFilter{
		EmployeeID: q.EmployeeID,
		Status:     q.Status,
		Offset:     q.Offset(),
		Limit:      q.Limit,
	})
	if err != nil {
		s.logger.Error("list leave requests failed", zap.Error(err))
		return nil, 0, apperror.FromStorage(err)
	}
	out := make([]LeaveResponse, len(rows))
	for i, r := range rows {
		out[i] = mapRequest(r)
	}
	return out, total, nil
}

func (s *service) GetRequest(ctx context.Context, id string) (LeaveResponse, error) {
	req, err := s.repo.FindRequest(ctx, id)
	if err != nil {
		return LeaveResponse{}, s.mapRequestError("get leave request failed", err)
	}
	return mapRequest(*req), nil
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	start, end, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	days := WorkingDays(start, end)
	if days.IsZero() {
		return LeaveResponse{}, leaveerrors.ErrNoWorkingDays
	}
	empl, err := s.findEmployee(ctx, req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	actor, _ := session.FromContext(ctx)

	l := &Request{
		ID:         uuid.New(),
		CompanyID:  empl.CompanyID,
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		Reason:     req.Reason,
		Status:     StatusPending,
		CreatedBy:  actor.UserID,
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		overlap, err := repo.HasOverlap(ctx, req.EmployeeID, start, end)
		if err != nil {
			return err
		}
		if overlap {
			return leaveerrors.ErrLeaveOverlap
		}

		if l.LeaveType.Tracked() {
			b, err := repo.FindBalanceForUpdate(ctx, req.EmployeeID, l.LeaveType, start.Year())
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return leaveerrors.ErrBalanceNotFound
				}
				return err
			}
			if b.Available().LessThan(days) {
				return leaveerrors.ErrInsufficientBalance
			}
			if err := repo.AdjustBalance(ctx, b.ID, decimal.Zero, days); err != nil {
				return err
			}
		}
		return repo.CreateRequest(ctx, l)
	})
	if err != nil {
		return LeaveResponse{}, s.mapRequestError("create leave request failed", err)
	}

	resp := mapRequest(*l)
	s.audit.Record(ctx, audit.NewEntry(ctx, "leave.request.create", "leave_request", resp.ID, l.CompanyID).WithChanges(nil, resp))
	s.logger.Info("leave requested",
		zap.String("leave_id", resp.ID),
		zap.String("employee_id", l.EmployeeID),
		zap.String("days", days.String()),
	)
	return resp, nil
}

// Approve flips the request and moves its days from pending to used in one transaction.
// Without a balance row nothing changes and the request stays PENDING.
func (s *service) Approve(ctx context.Context, id string) (LeaveResponse, error) {
	return s.decide(ctx, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, id, reason string) (LeaveResponse, error) {
	return s.decide(ctx, id, StatusRejected, &reason)
}

func (s *service) Cancel(ctx context.Context, id string) (LeaveResponse, error) {
	return s.decide(ctx, id, StatusCancelled, nil)
}

func (s *service) decide(ctx context.Context, id string, to Status, reason *string) (LeaveResponse, error) {
	actor, _ := session.FromContext(ctx)
	var (
		before LeaveResponse
		l      *Request
	)

	err := s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		var err error
		l, err = repo.FindRequestForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if l.Status != StatusPending {
			return leaveerrors.ErrNotPending
		}
		if err := authorizeDecision(actor, l, to); err != nil {
			return err
		}
		before = mapRequest(*l)

		if l.LeaveType.Tracked() {
			b, err := repo.FindBalanceForUpdate(ctx, l.EmployeeID, l.LeaveType, l.StartDate.Year())
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if to == StatusApproved {
					return leaveerrors.ErrBalanceNotFound
				}
			case err != nil:
				return err
			default:
				used := decimal.Zero
				if to == StatusApproved {
					used = l.Days
				}
				if err := repo.AdjustBalance(ctx, b.ID, used, l.Days.Neg()); err != nil {
					return err
				}
			}
		}

		now := s.now()
		l.Status = to
		if actor.UserID != "" {
			l.DecidedBy = &actor.UserID
		}
		l.DecidedAt = &now
		l.RejectionReason = reason
		ok, err := repo.Decide(ctx, l)
		if err != nil {
			return err
		}
		if !ok {
			return leaveerrors.ErrNotPending
		}

		eventType := ""
		switch to {
		case StatusApproved:
			eventType = events.TypeLeaveApproved
		case StatusRejected:
			eventType = events.TypeLeaveRejected
		default:
			return nil
		}
		ev := events.LeaveDecided{
			Meta:           events.NewMeta(eventType, l.CompanyID),
			LeaveRequestID: l.ID.String(),
			EmployeeID:     l.EmployeeID,
			LeaveType:      string(l.LeaveType),
			StartDate:      l.StartDate.Format(dateLayout),
			EndDate:        l.EndDate.Format(dateLayout),
		}
		if reason != nil {
			ev.Reason = *reason
		}
		outboxEvent, err := kafka.NewOutboxEvent(ctx, events.LeaveLifecycleTopic, "leave_request", l.ID.String(), ev)
		if err != nil {
			return err
		}
		return s.outbox.WithTx(tx).Create(ctx, outboxEvent)
	})
	if err != nil {
		return LeaveResponse{}, s.mapRequestError("decide leave request failed", err)
	}

	after := mapRequest(*l)
	action := map[Status]string{
		StatusApproved:  "leave.request.approve",
		StatusRejected:  "leave.request.reject",
		StatusCancelled: "leave.request.cancel",
	}[to]
	s.audit.Record(ctx, audit.NewEntry(ctx, action, "leave_request", id, l.CompanyID).WithChanges(before, after))
	s.logger.Info("leave request decided", zap.String("leave_id", id), zap.String("status", string(to)))
	return after, nil
}

// authorizeDecision keeps approvers off their own requests and limits cancellation to the owner or staff.
func authorizeDecision(actor session.Principal, l *Request, to Status) error {
	own := actor.EmployeeID != "" && actor.EmployeeID == l.EmployeeID
	if to == StatusCancelled {
		if !own && !actor.IsStaff() {
			return leaveerrors.ErrNotOwner
		}
		return nil
	}
	if own && !actor.IsSuperAdmin() {
		return leaveerrors.ErrSelfApproval
	}
	return nil
}

func (s *service) Accrue(ctx context.Context, year int) (AccrueResult, error) {
	result := AccrueResult{Year: year}

	companies, err := s.companies.ActiveCompanies(ctx)
	if err != nil {
		return result, err
	}

	for _, c := range companies {
		rule, err := s.rules.Rule(c.CountryCode)
		if err != nil {
			s.logger.Warn("accrual skipped company without labor rules",
				zap.String("company_id", c.ID),
				zap.String("country", c.CountryCode),
			)
			continue
		}

		companyCtx := tenant.WithScope(ctx, tenant.ForCompany(c.ID))
		active, err := s.employees.ListActive(companyCtx)
		if err != nil {
			s.logger.Error("accrual list employees failed", zap.String("company_id", c.ID), zap.Error(err))
			return result, apperror.FromStorage(err)
		}

		entitled := decimal.NewFromInt(int64(rule.AnnualLeaveDays))
		balances := make([]Balance, 0, len(active))
		for _, e := range active {
			balances = append(balances, Balance{
				ID:         uuid.New(),
				CompanyID:  c.ID,
				EmployeeID: e.ID.String(),
				LeaveType:  TypeAnnual,
				Year:       year,
				Entitled:   entitled,
				Used:       decimal.Zero,
				Pending:    decimal.Zero,
			})
		}

		created, err := s.repo.SeedBalances(companyCtx, balances)
		if err != nil {
			s.logger.Error("accrual seed balances failed", zap.String("company_id", c.ID), zap.Error(err))
			return result, apperror.FromStorage(err)
		}
		result.Companies++
		result.Created += created
	}

	s.logger.Info("leave accrual finished",
		zap.Int("year", year),
		zap.Int("companies", result.Companies),
		zap.Int64("created", result.Created),
	)
	return result, nil
}

func (s *service) findEmployee(ctx context.Context, id string) (*employee.Employee, error) {
	empl, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Employee not found")
		}
		return nil, apperror.FromStorage(err)
	}
	return empl, nil
}

func (s *service) mapRequestError(msg string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return apperror.FromStorage(err)
}

func parsePeriod(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.BadRequest("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.BadRequest("end_date must be YYYY-MM-DD")
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	if start.Year() != end.Year() {
		return time.Time{}, time.Time{}, leaveerrors.ErrSpansYears
	}
	return start, end, nil
}

func mapBalance(b Balance) BalanceResponse {
	return BalanceResponse{
		ID:         b.ID.String(),
		CompanyID:  b.CompanyID,
		EmployeeID: b.EmployeeID,
		LeaveType:  b.LeaveType,
		Year:       b.Year,
		Entitled:   b.Entitled,
		Used:       b.Used,
		Pending:    b.Pending,
		Available:  b.Available(),
	}
}

func mapRequest(l Request) LeaveResponse {
	return LeaveResponse{
		ID:              l.ID.String(),
		CompanyID:       l.CompanyID,
		EmployeeID:      l.EmployeeID,
		LeaveType:       l.LeaveType,
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		Days:            l.Days,
		Reason:          l.Reason,
		Status:          l.Status,
		CreatedBy:       l.CreatedBy,
		DecidedBy:       l.DecidedBy,
		DecidedAt:       l.DecidedAt,
		RejectionReason: l.RejectionReason,
	}
}
