package payroll

import (
	"context"
	"errors"
	"time"

	"hr-hub/internal/audit"
	"hr-hub/internal/compliance"
	"hr-hub/internal/employee"
	"hr-hub/internal/events"
	"hr-hub/internal/messaging/kafka"
	payrollerrors "hr-hub/internal/payroll/errors"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/shared/contextutil"
	"hr-hub/internal/shared/database"
	"hr-hub/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateRunRequest) (RunResponse, error)
	List(ctx context.Context, q ListRunsQuery) ([]RunResponse, int64, error)
	GetByID(ctx context.Context, id string) (RunResponse, error)
	Calculate(ctx context.Context, id string) (RunResponse, error)
	Approve(ctx context.Context, id string) (RunResponse, error)
	Pay(ctx context.Context, id string) (RunResponse, error)
	Cancel(ctx context.Context, id string) (RunResponse, error)
	ImportKPMG(ctx context.Context) error
}

// RuleSource returns the withholding rate that applies to a company.
type RuleSource interface {
	RuleForCompany(ctx context.Context, companyID string) (compliance.Rule, error)
}

type service struct {
	transactor database.Transactor
	repo       Repository
	employees  employee.Repository
	rules      RuleSource
	outbox     kafka.OutboxRepository
	audit      audit.Recorder
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	transactor database.Transactor,
	repo Repository,
	employees employee.Repository,
	rules RuleSource,
	outboxRepo kafka.OutboxRepository,
	recorder audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		transactor: transactor,
		repo:       repo,
		employees:  employees,
		rules:      rules,
		outbox:     outboxRepo,
		audit:      recorder,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, req CreateRunRequest) (RunResponse, error) {
	scope, _ := tenant.FromContext(ctx)
	companyID, err := scope.WriteCompanyID(req.CompanyID)
	if err != nil {
		return RunResponse{}, err
	}
	actor, _ := session.FromContext(ctx)

	run := &Run{
		ID:               uuid.New(),
		CompanyID:        companyID,
		Period:           req.Period,
		Status:           StatusDraft,
		TotalGross:       decimal.Zero,
		TotalWithholding: decimal.Zero,
		TotalNet:         decimal.Zero,
		CreatedBy:        actor.UserID,
	}
	if err := s.repo.Create(ctx, run); err != nil {
		if apperror.IsUniqueViolation(err, "uq_payroll_run_period") {
			return RunResponse{}, payrollerrors.ErrRunAlreadyExists
		}
		s.logger.Error("create payroll run failed", zap.Error(err))
		return RunResponse{}, apperror.FromStorage(err)
	}

	resp := mapToResponse(*run)
	s.audit.Record(ctx, audit.NewEntry(ctx, "payroll.run.create", "payroll_run", resp.ID, companyID).WithChanges(nil, resp))
	s.logger.Info("payroll run created",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("run_id", resp.ID),
		zap.String("period", run.Period),
	)
	return resp, nil
}

func (s *service) List(ctx context.Context, q ListRunsQuery) ([]RunResponse, int64, error) {
	runs, total, err := s.repo.List(ctx, ListFilter{
		Status: q.Status,
		Period: q.Period,
		Offset: q.Offset(),
		Limit:  q.Limit,
	})
	if err != nil {
		s.logger.Error("list payroll runs failed", zap.Error(err))
		return nil, 0, apperror.FromStorage(err)
	}
	out := make([]RunResponse, len(runs))
	for i, r := range runs {
		out[i] = mapToResponse(r)
	}
	return out, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (RunResponse, error) {
	run, err := s.repo.FindWithItems(ctx, id)
	if err != nil {
		return RunResponse{}, s.mapError("get payroll run failed", err)
	}
	return mapToResponse(*run), nil
}

// Calculate claims the DRAFT run, computes items, then moves it to REVIEW.
// If computing fails the run goes back to DRAFT.
func (s *service) Calculate(ctx context.Context, id string) (RunResponse, error) {
	run, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RunResponse{}, s.mapError("calculate payroll fetch failed", err)
	}
	if run.Status != StatusDraft {
		return RunResponse{}, payrollerrors.ErrInvalidTransition
	}

	claimed, err := s.repo.Transition(ctx, id, []Status{StatusDraft}, StatusCalculating, nil)
	if err != nil {
		return RunResponse{}, s.mapError("calculate payroll claim failed", err)
	}
	if !claimed {
		return RunResponse{}, payrollerrors.ErrInvalidTransition
	}
	before := mapToResponse(*run)

	err = s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		rule, err := s.rules.RuleForCompany(ctx, run.CompanyID)
		if err != nil {
			return err
		}
		companyCtx := tenant.WithScope(ctx, tenant.ForCompany(run.CompanyID))
		active, err := s.employees.WithTx(tx).ListActive(companyCtx)
		if err != nil {
			return err
		}
		if len(active) == 0 {
			return payrollerrors.ErrNoEmployees
		}

		items := make([]Item, 0, len(active))
		gross, withholding, net := decimal.Zero, decimal.Zero, decimal.Zero
		for _, e := range active {
			item := NewItem(run, e.ID.String(), e.BaseSalary, rule.WithholdingRate)
			items = append(items, item)
			gross = gross.Add(item.Gross)
			withholding = withholding.Add(item.Withholding)
			net = net.Add(item.Net)
		}

		repo := s.repo.WithTx(tx)
		if err := repo.ReplaceItems(ctx, run.ID, items); err != nil {
			return err
		}
		moved, err := repo.Transition(ctx, id, []Status{StatusCalculating}, StatusReview, map[string]any{
			"employee_count":    len(items),
			"total_gross":       gross,
			"total_withholding": withholding,
			"total_net":         net,
		})
		if err != nil {
			return err
		}
		if !moved {
			return payrollerrors.ErrInvalidTransition
		}
		run.Status = StatusReview
		run.EmployeeCount = len(items)
		run.TotalGross, run.TotalWithholding, run.TotalNet = gross, withholding, net
		run.Items = items
		return nil
	})
	if err != nil {
		if _, revertErr := s.repo.Transition(context.WithoutCancel(ctx), id, []Status{StatusCalculating}, StatusDraft, nil); revertErr != nil {
			s.logger.Error("calculate payroll revert failed", zap.String("run_id", id), zap.Error(revertErr))
		}
		return RunResponse{}, s.mapError("calculate payroll failed", err)
	}

	after := mapToResponse(*run)
	s.audit.Record(ctx, audit.NewEntry(ctx, "payroll.run.calculate", "payroll_run", id, run.CompanyID).WithChanges(before, after))
	s.logger.Info("payroll run calculated",
		zap.String("run_id", id),
		zap.Int("employees", run.EmployeeCount),
		zap.String("total_net", run.TotalNet.String()),
	)
	return after, nil
}

// Approve writes its audit row in the same transaction as the status change.
func (s *service) Approve(ctx context.Context, id string) (RunResponse, error) {
	actor, _ := session.FromContext(ctx)
	var run *Run

	err := s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		var err error
		run, err = repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		before := mapToResponse(*run)

		now := s.now()
		fields := map[string]any{"approved_at": now}
		if actor.UserID != "" {
			fields["approved_by"] = actor.UserID
			run.ApprovedBy = &actor.UserID
		}
		moved, err := repo.Transition(ctx, id, []Status{StatusReview}, StatusApproved, fields)
		if err != nil {
			return err
		}
		if !moved {
			return payrollerrors.ErrInvalidTransition
		}
		run.Status = StatusApproved
		run.ApprovedAt = &now

		entry := audit.NewEntry(ctx, "payroll.run.approve", "payroll_run", id, run.CompanyID).WithChanges(before, mapToResponse(*run))
		return s.audit.RecordTx(ctx, tx, entry)
	})
	if err != nil {
		return RunResponse{}, s.mapError("approve payroll failed", err)
	}

	s.logger.Info("payroll run approved", zap.String("run_id", id))
	return mapToResponse(*run), nil
}

func (s *service) Pay(ctx context.Context, id string) (RunResponse, error) {
	var (
		run    *Run
		before RunResponse
	)

	err := s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		var err error
		run, err = repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		before = mapToResponse(*run)

		now := s.now()
		moved, err := repo.Transition(ctx, id, []Status{StatusApproved}, StatusPaid, map[string]any{"paid_at": now})
		if err != nil {
			return err
		}
		if !moved {
			return payrollerrors.ErrInvalidTransition
		}
		run.Status = StatusPaid
		run.PaidAt = &now

		employeeIDs, err := repo.EmployeeIDs(ctx, run.ID)
		if err != nil {
			return err
		}
		ev := events.PayrollPaid{
			Meta:        events.NewMeta(events.TypePayrollPaid, run.CompanyID),
			RunID:       id,
			Period:      run.Period,
			EmployeeIDs: employeeIDs,
		}
		outboxEvent, err := kafka.NewOutboxEvent(ctx, events.PayrollLifecycleTopic, "payroll_run", id, ev)
		if err != nil {
			return err
		}
		return s.outbox.WithTx(tx).Create(ctx, outboxEvent)
	})
	if err != nil {
		return RunResponse{}, s.mapError("pay payroll failed", err)
	}

	after := mapToResponse(*run)
	s.audit.Record(ctx, audit.NewEntry(ctx, "payroll.run.pay", "payroll_run", id, run.CompanyID).WithChanges(before, after))
	s.logger.Info("payroll run paid", zap.String("run_id", id))
	return after, nil
}

func (s *service) Cancel(ctx context.Context, id string) (RunResponse, error) {
	run, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RunResponse{}, s.mapError("cancel payroll fetch failed", err)
	}
	before := mapToResponse(*run)

	moved, err := s.repo.Transition(ctx, id, cancellable, StatusCancelled, nil)
	if err != nil {
		return RunResponse{}, s.mapError("cancel payroll failed", err)
	}
	if !moved {
		return RunResponse{}, payrollerrors.ErrInvalidTransition
	}
	run.Status = StatusCancelled

	after := mapToResponse(*run)
	s.audit.Record(ctx, audit.NewEntry(ctx, "payroll.run.cancel", "payroll_run", id, run.CompanyID).WithChanges(before, after))
	return after, nil
}

func (s *service) ImportKPMG(ctx context.Context) error {
	return payrollerrors.ErrImportNotImplemented
}

func (s *service) mapError(msg string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrRunNotFound
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return apperror.FromStorage(err)
}

func mapToResponse(r Run) RunResponse {
	resp := RunResponse{
		ID:               r.ID.String(),
		CompanyID:        r.CompanyID,
		Period:           r.Period,
		Status:           r.Status,
		EmployeeCount:    r.EmployeeCount,
		TotalGross:       r.TotalGross,
		TotalWithholding: r.TotalWithholding,
		TotalNet:         r.TotalNet,
		CreatedBy:        r.CreatedBy,
		ApprovedBy:       r.ApprovedBy,
		ApprovedAt:       r.ApprovedAt,
		PaidAt:           r.PaidAt,
		CreatedAt:        r.CreatedAt,
	}
	for _, it := range r.Items {
		resp.Items = append(resp.Items, ItemResponse{
			ID:          it.ID.String(),
			EmployeeID:  it.EmployeeID,
			Gross:       it.Gross,
			Withholding: it.Withholding,
			Net:         it.Net,
		})
	}
	return resp
}
