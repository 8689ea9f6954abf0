package employee

import (
	"context"
	"fmt"
	"time"

	"hr-hub/internal/audit"
	employeeerrors "hr-hub/internal/employee/errors"
	"hr-hub/internal/events"
	"hr-hub/internal/messaging/kafka"
	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/shared/contextutil"
	"hr-hub/internal/shared/counter"
	"hr-hub/internal/shared/database"
	"hr-hub/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	List(ctx context.Context, q ListEmployeesQuery) ([]EmployeeResponse, int64, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	transactor database.Transactor
	repo       Repository
	counter    counter.Repository
	outbox     kafka.OutboxRepository
	audit      audit.Recorder
	logger     *zap.Logger
}

func NewService(
	transactor database.Transactor,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	recorder audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		transactor: transactor,
		repo:       repo,
		counter:    counter,
		outbox:     outboxRepo,
		audit:      recorder,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	scope, _ := tenant.FromContext(ctx)
	companyID, err := scope.WriteCompanyID(req.CompanyID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("email", req.Email),
	)

	if req.BaseSalary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrNegativeSalary
	}
	hireDate, err := time.Parse(dateLayout, req.HireDate)
	if err != nil {
		return EmployeeResponse{}, apperror.BadRequest("hire_date must be YYYY-MM-DD")
	}

	empl := &Employee{
		ID:             uuid.New(),
		CompanyID:      companyID,
		EmployeeNumber: req.EmployeeNumber,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Department:     req.Department,
		JobTitle:       req.JobTitle,
		ManagerID:      req.ManagerID,
		HireDate:       hireDate,
		Status:         req.Status,
		BaseSalary:     req.BaseSalary,
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if empl.EmployeeNumber == "" {
			next, err := s.counter.WithTx(tx).GetNextValue(ctx, companyID, counter.EmployeeNumber)
			if err != nil {
				s.logger.Error("create employee generate number failed", zap.Error(err))
				return err
			}
			empl.EmployeeNumber = fmt.Sprintf("EMP-%06d", next)
		}

		if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
			return err
		}

		event := events.EmployeeCreated{
			Meta:       events.NewMeta(events.TypeEmployeeCreated, companyID),
			EmployeeID: empl.ID.String(),
			FullName:   empl.FullName,
			HireDate:   req.HireDate,
		}
		outboxEvent, err := kafka.NewOutboxEvent(ctx, events.EmployeeLifecycleTopic, "employee", empl.ID.String(), event)
		if err != nil {
			return err
		}
		return s.outbox.WithTx(tx).Create(ctx, outboxEvent)
	})
	if err != nil {
		mapped := mapRepositoryError(err)
		if appErr, ok := apperror.As(mapped); ok && appErr.HTTPStatus < 500 {
			s.logger.Warn("create employee rejected", zap.String("request_id", rid), zap.String("code", appErr.Code))
		} else {
			s.logger.Error("create employee failed", zap.String("request_id", rid), zap.Error(err))
		}
		return EmployeeResponse{}, mapped
	}

	resp := mapToResponse(*empl)
	s.audit.Record(ctx, audit.NewEntry(ctx, "employee.create", "employee", resp.ID, companyID).WithChanges(nil, resp))
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", resp.ID),
		zap.String("employee_number", resp.EmployeeNumber),
	)
	return resp, nil
}

func (s *service) List(ctx context.Context, q ListEmployeesQuery) ([]EmployeeResponse, int64, error) {
	rows, total, err := s.repo.List(ctx, ListFilter{
		Status:     q.Status,
		Department: q.Department,
		Q:          q.Q,
		Offset:     q.Offset(),
		Limit:      q.Limit,
	})
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}
	return mapToListResponse(rows), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if req == (UpdateEmployeeRequest{}) {
		return EmployeeResponse{}, employeeerrors.ErrNothingToUpdate
	}
	if req.BaseSalary != nil && req.BaseSalary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrNegativeSalary
	}

	var before, after EmployeeResponse
	var companyID string
	err := s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		empl, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		before = mapToResponse(*empl)
		companyID = empl.CompanyID

		if err := applyUpdate(empl, req); err != nil {
			return err
		}
		if err := repo.Update(ctx, empl); err != nil {
			return err
		}
		after = mapToResponse(*empl)
		return nil
	})
	if err != nil {
		s.logger.Warn("update employee failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.audit.Record(ctx, audit.NewEntry(ctx, "employee.update", "employee", id, companyID).WithChanges(before, after))
	s.logger.Info("update employee success", zap.String("employee_id", id))
	return after, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.audit.Record(ctx, audit.NewEntry(ctx, "employee.delete", "employee", id, empl.CompanyID).WithChanges(mapToResponse(*empl), nil))
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func applyUpdate(empl *Employee, req UpdateEmployeeRequest) error {
	if req.FullName != nil {
		empl.FullName = *req.FullName
	}
	if req.Email != nil {
		empl.Email = *req.Email
	}
	if req.Phone != nil {
		empl.Phone = *req.Phone
	}
	if req.Department != nil {
		empl.Department = *req.Department
	}
	if req.JobTitle != nil {
		empl.JobTitle = *req.JobTitle
	}
	if req.ManagerID != nil {
		if *req.ManagerID == empl.ID.String() {
			return apperror.BadRequest("An employee cannot manage themselves")
		}
		empl.ManagerID = req.ManagerID
	}
	if req.Status != nil {
		empl.Status = *req.Status
	}
	if req.TerminationDate != nil {
		d, err := time.Parse(dateLayout, *req.TerminationDate)
		if err != nil {
			return apperror.BadRequest("termination_date must be YYYY-MM-DD")
		}
		if d.Before(empl.HireDate) {
			return apperror.BadRequest("termination_date must not be before hire_date")
		}
		empl.TerminationDate = &d
	}
	if req.BaseSalary != nil {
		empl.BaseSalary = *req.BaseSalary
	}
	return nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	salary := empl.BaseSalary
	resp := EmployeeResponse{
		ID:             empl.ID.String(),
		CompanyID:      empl.CompanyID,
		EmployeeNumber: empl.EmployeeNumber,
		FullName:       empl.FullName,
		Email:          empl.Email,
		Phone:          empl.Phone,
		Department:     empl.Department,
		JobTitle:       empl.JobTitle,
		ManagerID:      empl.ManagerID,
		HireDate:       empl.HireDate.Format(dateLayout),
		Status:         empl.Status,
		BaseSalary:     &salary,
	}
	if empl.TerminationDate != nil {
		d := empl.TerminationDate.Format(dateLayout)
		resp.TerminationDate = &d
	}
	return resp
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res
}
