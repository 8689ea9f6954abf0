package onboarding

import (
	"context"
	"errors"
	"time"

	"hr-hub/internal/audit"
	"hr-hub/internal/employee"
	onboardingerrors "hr-hub/internal/onboarding/errors"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/tenant"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, kind Kind, req CreateChecklistRequest) (ChecklistResponse, error)
	List(ctx context.Context, kind Kind, q ListChecklistsQuery) ([]ChecklistResponse, int64, error)
	GetByID(ctx context.Context, kind Kind, id string) (ChecklistResponse, error)
	UpdateTask(ctx context.Context, kind Kind, taskID string, status TaskStatus) (TaskResponse, error)
	// StartForNewHire creates the onboarding checklist of a newly created
	// employee. Replays of the same event are no-ops.
	StartForNewHire(ctx context.Context, companyID, employeeID string) error
	CountOpen(ctx context.Context, kind Kind) (int64, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	audit     audit.Recorder
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, employees employee.Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("onboarding.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("onboarding.service")
	}
	return &service{repo: repo, employees: employees, audit: recorder, now: time.Now, logger: l}
}

func (s *service) Create(ctx context.Context, kind Kind, req CreateChecklistRequest) (ChecklistResponse, error) {
	emp, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChecklistResponse{}, apperror.NotFound("Employee not found")
		}
		return ChecklistResponse{}, s.mapError(err)
	}

	var createdBy *string
	if actor, ok := session.FromContext(ctx); ok && actor.UserID != "" {
		createdBy = &actor.UserID
	}

	cl := NewChecklist(kind, emp.CompanyID, req.EmployeeID, createdBy)
	if err := s.repo.Create(ctx, &cl); err != nil {
		if apperror.IsUniqueViolation(err, "uq_checklist_employee_kind") {
			return ChecklistResponse{}, onboardingerrors.ErrChecklistExists
		}
		return ChecklistResponse{}, s.mapError(err)
	}

	resp := mapToResponse(cl)
	s.audit.Record(ctx, audit.NewEntry(ctx, auditPrefix(kind)+".create", "checklist", resp.ID, cl.CompanyID).WithChanges(nil, resp))
	return resp, nil
}

func (s *service) StartForNewHire(ctx context.Context, companyID, employeeID string) error {
	ctx = tenant.WithScope(ctx, tenant.ForCompany(companyID))
	cl := NewChecklist(KindOnboarding, companyID, employeeID, nil)

	created, err := s.repo.CreateIfAbsent(ctx, &cl)
	if err != nil {
		s.logger.Error("create onboarding checklist failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return err
	}
	if !created {
		s.logger.Debug("onboarding checklist already exists", zap.String("employee_id", employeeID))
		return nil
	}
	s.audit.Record(ctx, audit.NewEntry(ctx, "onboarding.checklist.create", "checklist", cl.ID.String(), companyID))
	return nil
}

func (s *service) List(ctx context.Context, kind Kind, q ListChecklistsQuery) ([]ChecklistResponse, int64, error) {
	rows, total, err := s.repo.List(ctx, ListFilter{
		Kind:       kind,
		EmployeeID: q.EmployeeID,
		Offset:     q.Offset(),
		Limit:      q.Limit,
	})
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	out := make([]ChecklistResponse, len(rows))
	for i, cl := range rows {
		out[i] = mapToResponse(cl)
	}
	return out, total, nil
}

func (s *service) GetByID(ctx context.Context, kind Kind, id string) (ChecklistResponse, error) {
	cl, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		return ChecklistResponse{}, s.mapError(err)
	}
	return mapToResponse(*cl), nil
}

func (s *service) UpdateTask(ctx context.Context, kind Kind, taskID string, status TaskStatus) (TaskResponse, error) {
	task, err := s.repo.FindTask(ctx, kind, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, onboardingerrors.ErrTaskNotFound
		}
		return TaskResponse{}, s.mapError(err)
	}
	if task.Status != TaskPending {
		return TaskResponse{}, onboardingerrors.ErrTaskNotPending
	}

	var actorID *string
	if actor, ok := session.FromContext(ctx); ok && actor.UserID != "" {
		actorID = &actor.UserID
	}
	at := s.now().UTC()

	moved, err := s.repo.CompleteTask(ctx, taskID, status, actorID, at)
	if err != nil {
		return TaskResponse{}, s.mapError(err)
	}
	if !moved {
		return TaskResponse{}, onboardingerrors.ErrTaskNotPending
	}

	before := mapTask(*task)
	task.Status = status
	task.CompletedBy = actorID
	task.CompletedAt = &at
	after := mapTask(*task)

	scope, _ := tenant.FromContext(ctx)
	s.audit.Record(ctx, audit.NewEntry(ctx, auditPrefix(kind)+".task.update", "checklist_task", taskID, scope.CompanyID()).WithChanges(before, after))
	return after, nil
}

func (s *service) CountOpen(ctx context.Context, kind Kind) (int64, error) {
	n, err := s.repo.CountOpen(ctx, kind)
	if err != nil {
		return 0, s.mapError(err)
	}
	return n, nil
}

func (s *service) mapError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return onboardingerrors.ErrChecklistNotFound
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	s.logger.Error("checklist storage failed", zap.Error(err))
	return apperror.FromStorage(err)
}

func auditPrefix(kind Kind) string {
	if kind == KindOffboarding {
		return "offboarding.checklist"
	}
	return "onboarding.checklist"
}

func mapTask(t Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID.String(),
		Position:    t.Position,
		Title:       t.Title,
		Status:      t.Status,
		CompletedBy: t.CompletedBy,
		CompletedAt: t.CompletedAt,
	}
}

func mapToResponse(cl Checklist) ChecklistResponse {
	resp := ChecklistResponse{
		ID:         cl.ID.String(),
		CompanyID:  cl.CompanyID,
		EmployeeID: cl.EmployeeID,
		Kind:       cl.Kind,
		Tasks:      make([]TaskResponse, len(cl.Tasks)),
		CreatedAt:  cl.CreatedAt,
	}
	closed := 0
	for i, t := range cl.Tasks {
		resp.Tasks[i] = mapTask(t)
		if t.Status != TaskPending {
			closed++
		}
	}
	if len(cl.Tasks) > 0 {
		resp.Progress = closed * 100 / len(cl.Tasks)
	}
	return resp
}
