package department

import (
	"context"
	"errors"

	"hr-hub/internal/audit"
	departmenterrors "hr-hub/internal/department/errors"
	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const uniqueNameConstraint = "uq_department_company_name"

type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	List(ctx context.Context, q ListDepartmentsQuery) ([]DepartmentResponse, int64, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	audit  audit.Recorder
	logger *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{repo: repo, audit: recorder, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	scope, _ := tenant.FromContext(ctx)
	companyID, err := scope.WriteCompanyID(req.CompanyID)
	if err != nil {
		return DepartmentResponse{}, err
	}

	d := &Department{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return DepartmentResponse{}, s.mapError(err)
	}

	resp := mapToResponse(*d, nil)
	s.audit.Record(ctx, audit.NewEntry(ctx, "department.create", "department", resp.ID, companyID).WithChanges(nil, resp))
	return resp, nil
}

func (s *service) List(ctx context.Context, q ListDepartmentsQuery) ([]DepartmentResponse, int64, error) {
	rows, total, err := s.repo.List(ctx, q.Q, q.Offset(), q.Limit)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	out := make([]DepartmentResponse, len(rows))
	for i, row := range rows {
		headcount := row.Headcount
		out[i] = mapToResponse(row.Department, &headcount)
	}
	return out, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, s.mapError(err)
	}
	headcount, err := s.repo.CountMembers(ctx, d.CompanyID, d.Name)
	if err != nil {
		return DepartmentResponse{}, s.mapError(err)
	}
	return mapToResponse(*d, &headcount), nil
}

// Update renames in place; employees referencing the old name keep it until they are edited.
func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, s.mapError(err)
	}
	before := mapToResponse(*d, nil)

	if req.Name != nil && *req.Name != d.Name {
		members, err := s.repo.CountMembers(ctx, d.CompanyID, d.Name)
		if err != nil {
			return DepartmentResponse{}, s.mapError(err)
		}
		if members > 0 {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentInUse
		}
		d.Name = *req.Name
	}
	if req.Description != nil {
		d.Description = *req.Description
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return DepartmentResponse{}, s.mapError(err)
	}

	after := mapToResponse(*d, nil)
	s.audit.Record(ctx, audit.NewEntry(ctx, "department.update", "department", id, d.CompanyID).WithChanges(before, after))
	return after, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapError(err)
	}
	members, err := s.repo.CountMembers(ctx, d.CompanyID, d.Name)
	if err != nil {
		return s.mapError(err)
	}
	if members > 0 {
		return departmenterrors.ErrDepartmentInUse
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(err)
	}

	s.audit.Record(ctx, audit.NewEntry(ctx, "department.delete", "department", id, d.CompanyID).WithChanges(mapToResponse(*d, nil), nil))
	s.logger.Info("department deleted", zap.String("department_id", id))
	return nil
}

func (s *service) mapError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}
	if apperror.IsUniqueViolation(err, uniqueNameConstraint) {
		return departmenterrors.ErrDepartmentExists
	}
	if appErr, ok := apperror.As(err); ok {
		return appErr
	}
	s.logger.Error("department storage failed", zap.Error(err))
	return apperror.FromStorage(err)
}

func mapToResponse(d Department, headcount *int64) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID.String(),
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		Description: d.Description,
		Headcount:   headcount,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
