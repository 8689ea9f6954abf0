package performance

import (
	"context"
	"errors"
	"time"

	"hr-hub/internal/audit"
	performanceerrors "hr-hub/internal/performance/errors"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateCycleRequest) (CycleResponse, error)
	List(ctx context.Context, q ListCyclesQuery) ([]CycleResponse, int64, error)
	GetByID(ctx context.Context, id string) (CycleResponse, error)
	Advance(ctx context.Context, id string, to Status) (CycleResponse, error)
}

type service struct {
	repo   Repository
	audit  audit.Recorder
	logger *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("performance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("performance.service")
	}
	return &service{repo: repo, audit: recorder, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCycleRequest) (CycleResponse, error) {
	scope, _ := tenant.FromContext(ctx)
	companyID, err := scope.WriteCompanyID(req.CompanyID)
	if err != nil {
		return CycleResponse{}, err
	}
	startsOn, err := time.Parse(dateLayout, req.StartsOn)
	if err != nil {
		return CycleResponse{}, apperror.BadRequest("starts_on must be YYYY-MM-DD")
	}
	endsOn, err := time.Parse(dateLayout, req.EndsOn)
	if err != nil {
		return CycleResponse{}, apperror.BadRequest("ends_on must be YYYY-MM-DD")
	}
	if !startsOn.Before(endsOn) {
		return CycleResponse{}, performanceerrors.ErrInvalidPeriod
	}
	actor, _ := session.FromContext(ctx)

	c := &Cycle{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      req.Name,
		StartsOn:  startsOn,
		EndsOn:    endsOn,
		Status:    StatusDraft,
		CreatedBy: actor.UserID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("create performance cycle failed", zap.Error(err))
		return CycleResponse{}, apperror.FromStorage(err)
	}

	resp := mapToResponse(*c)
	s.audit.Record(ctx, audit.NewEntry(ctx, "performance.cycle.create", "performance_cycle", resp.ID, companyID).WithChanges(nil, resp))
	return resp, nil
}

func (s *service) List(ctx context.Context, q ListCyclesQuery) ([]CycleResponse, int64, error) {
	rows, total, err := s.repo.List(ctx, q.Status, q.Offset(), q.Limit)
	if err != nil {
		s.logger.Error("list performance cycles failed", zap.Error(err))
		return nil, 0, apperror.FromStorage(err)
	}
	out := make([]CycleResponse, len(rows))
	for i, c := range rows {
		out[i] = mapToResponse(c)
	}
	return out, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CycleResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CycleResponse{}, s.mapError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) Advance(ctx context.Context, id string, to Status) (CycleResponse, error) {
	from, ok := to.Previous()
	if !ok {
		return CycleResponse{}, performanceerrors.ErrInvalidTransition
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CycleResponse{}, s.mapError(err)
	}
	if c.Status != from {
		return CycleResponse{}, performanceerrors.ErrInvalidTransition
	}
	before := mapToResponse(*c)

	moved, err := s.repo.Advance(ctx, id, from, to)
	if err != nil {
		return CycleResponse{}, s.mapError(err)
	}
	if !moved {
		return CycleResponse{}, performanceerrors.ErrInvalidTransition
	}
	c.Status = to

	after := mapToResponse(*c)
	s.audit.Record(ctx, audit.NewEntry(ctx, "performance.cycle.advance", "performance_cycle", id, c.CompanyID).WithChanges(before, after))
	s.logger.Info("performance cycle advanced", zap.String("cycle_id", id), zap.String("status", string(to)))
	return after, nil
}

func (s *service) mapError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return performanceerrors.ErrCycleNotFound
	}
	s.logger.Error("performance cycle storage failed", zap.Error(err))
	return apperror.FromStorage(err)
}

func mapToResponse(c Cycle) CycleResponse {
	return CycleResponse{
		ID:        c.ID.String(),
		CompanyID: c.CompanyID,
		Name:      c.Name,
		StartsOn:  c.StartsOn.Format(dateLayout),
		EndsOn:    c.EndsOn.Format(dateLayout),
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}
