package company

import (
	"context"
	"errors"

	"hr-hub/internal/audit"
	companyerrors "hr-hub/internal/company/errors"
	"hr-hub/internal/shared/apperror"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	List(ctx context.Context, q ListCompaniesQuery) ([]CompanyResponse, int64, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error)
	// CountryOf returns the country code that selects labor rules for the company.
	CountryOf(ctx context.Context, id string) (string, error)
	// ActiveCompanies lists every active company visible to the scope; cron jobs run with all tenants.
	ActiveCompanies(ctx context.Context) ([]CompanyResponse, error)
}

type service struct {
	repo   Repository
	audit  audit.Recorder
	logger *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, audit: recorder, logger: l}
}

func (s *service) List(ctx context.Context, q ListCompaniesQuery) ([]CompanyResponse, int64, error) {
	companies, total, err := s.repo.List(ctx, q.Offset(), q.Limit)
	if err != nil {
		s.logger.Error("list companies failed", zap.Error(err))
		return nil, 0, apperror.FromStorage(err)
	}

	out := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		out[i] = mapToResponse(c)
	}
	return out, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	comp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, s.mapError("get company failed", err)
	}
	return mapToResponse(*comp), nil
}

func (s *service) CountryOf(ctx context.Context, id string) (string, error) {
	comp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", s.mapError("resolve company country failed", err)
	}
	return comp.CountryCode, nil
}

func (s *service) ActiveCompanies(ctx context.Context) ([]CompanyResponse, error) {
	companies, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("list active companies failed", zap.Error(err))
		return nil, apperror.FromStorage(err)
	}
	out := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		out[i] = mapToResponse(c)
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error) {
	if req.Name == nil && req.Timezone == nil && req.IsActive == nil {
		return CompanyResponse{}, companyerrors.ErrNothingToUpdate
	}

	comp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, s.mapError("update company fetch failed", err)
	}
	before := mapToResponse(*comp)

	if req.Name != nil {
		comp.Name = *req.Name
	}
	if req.Timezone != nil {
		comp.Timezone = *req.Timezone
	}
	if req.IsActive != nil {
		comp.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		return CompanyResponse{}, s.mapError("update company persist failed", err)
	}

	after := mapToResponse(*comp)
	s.audit.Record(ctx, audit.NewEntry(ctx, "company.update", "company", id, id).WithChanges(before, after))
	s.logger.Info("update company success", zap.String("company_id", id))
	return after, nil
}

func (s *service) mapError(msg string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}
	s.logger.Error(msg, zap.Error(err))
	return apperror.FromStorage(err)
}

func mapToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		CountryCode: c.CountryCode,
		Timezone:    c.Timezone,
		Currency:    c.Currency,
		IsActive:    c.IsActive,
	}
}
