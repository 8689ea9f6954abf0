package compliance

import (
	"context"
	"errors"
	"time"

	"hr-hub/internal/audit"
	complianceerrors "hr-hub/internal/compliance/errors"
	"hr-hub/internal/employee"
	"hr-hub/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CountryResolver maps a company to the country whose rules apply.
type CountryResolver interface {
	CountryOf(ctx context.Context, companyID string) (string, error)
}

type Service interface {
	Rules() []Rule
	Rule(country string) (Rule, error)
	// RuleForCompany is used by leave, payroll and attendance.
	RuleForCompany(ctx context.Context, companyID string) (Rule, error)
	ListConsents(ctx context.Context, q ListConsentsQuery) ([]ConsentResponse, int64, error)
	Grant(ctx context.Context, req GrantConsentRequest) (ConsentResponse, error)
	Revoke(ctx context.Context, id string) (ConsentResponse, error)
}

type service struct {
	rules     *Rules
	repo      Repository
	employees employee.Repository
	countries CountryResolver
	audit     audit.Recorder
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	rules *Rules,
	repo Repository,
	employees employee.Repository,
	countries CountryResolver,
	recorder audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("compliance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("compliance.service")
	}
	return &service{
		rules:     rules,
		repo:      repo,
		employees: employees,
		countries: countries,
		audit:     recorder,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    l,
	}
}

func (s *service) Rules() []Rule {
	return s.rules.All()
}

func (s *service) Rule(country string) (Rule, error) {
	rule, ok := s.rules.Get(country)
	if !ok {
		return Rule{}, complianceerrors.ErrUnknownCountry
	}
	return rule, nil
}

func (s *service) RuleForCompany(ctx context.Context, companyID string) (Rule, error) {
	country, err := s.countries.CountryOf(ctx, companyID)
	if err != nil {
		return Rule{}, err
	}
	rule, ok := s.rules.Get(country)
	if !ok {
		s.logger.Error("company country has no labor rules", zap.String("company_id", companyID), zap.String("country", country))
		return Rule{}, complianceerrors.ErrUnknownCountry
	}
	return rule, nil
}

func (s *service) ListConsents(ctx context.Context, q ListConsentsQuery) ([]ConsentResponse, int64, error) {
	rows, total, err := s.repo.List(ctx, ConsentFilter{
		EmployeeID: q.EmployeeID,
		Status:     q.Status,
		Offset:     q.Offset(),
		Limit:      q.Limit,
	})
	if err != nil {
		s.logger.Error("list consents failed", zap.Error(err))
		return nil, 0, apperror.FromStorage(err)
	}
	out := make([]ConsentResponse, len(rows))
	for i, c := range rows {
		out[i] = mapConsent(c)
	}
	return out, total, nil
}

func (s *service) Grant(ctx context.Context, req GrantConsentRequest) (ConsentResponse, error) {
	empl, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConsentResponse{}, apperror.NotFound("Employee not found")
		}
		return ConsentResponse{}, apperror.FromStorage(err)
	}
	rule, err := s.RuleForCompany(ctx, empl.CompanyID)
	if err != nil {
		return ConsentResponse{}, err
	}

	now := s.now()
	c := &Consent{
		ID:         uuid.New(),
		CompanyID:  empl.CompanyID,
		EmployeeID: req.EmployeeID,
		Purpose:    req.Purpose,
		Regime:     rule.DataProtection,
		Status:     ConsentGranted,
		GrantedAt:  now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if apperror.IsUniqueViolation(err, "uq_consent_active") {
			return ConsentResponse{}, complianceerrors.ErrConsentAlreadyGranted
		}
		s.logger.Error("grant consent failed", zap.Error(err))
		return ConsentResponse{}, apperror.FromStorage(err)
	}

	resp := mapConsent(*c)
	s.audit.Record(ctx, audit.NewEntry(ctx, "consent.grant", "consent", resp.ID, c.CompanyID).WithChanges(nil, resp))
	s.logger.Info("consent granted", zap.String("consent_id", resp.ID), zap.String("purpose", c.Purpose))
	return resp, nil
}

// Revoke succeeds once the row is updated; the audit entry is best effort.
func (s *service) Revoke(ctx context.Context, id string) (ConsentResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConsentResponse{}, complianceerrors.ErrConsentNotFound
		}
		return ConsentResponse{}, apperror.FromStorage(err)
	}
	before := mapConsent(*c)

	now := s.now()
	ok, err := s.repo.Revoke(ctx, id, now)
	if err != nil {
		s.logger.Error("revoke consent failed", zap.String("consent_id", id), zap.Error(err))
		return ConsentResponse{}, apperror.FromStorage(err)
	}
	if !ok {
		return ConsentResponse{}, complianceerrors.ErrConsentAlreadyRevoked
	}

	c.Status = ConsentRevoked
	c.RevokedAt = &now
	after := mapConsent(*c)
	s.audit.Record(ctx, audit.NewEntry(ctx, "consent.revoke", "consent", id, c.CompanyID).WithChanges(before, after))
	s.logger.Info("consent revoked", zap.String("consent_id", id))
	return after, nil
}

func mapConsent(c Consent) ConsentResponse {
	return ConsentResponse{
		ID:         c.ID.String(),
		CompanyID:  c.CompanyID,
		EmployeeID: c.EmployeeID,
		Purpose:    c.Purpose,
		Regime:     c.Regime,
		Status:     c.Status,
		GrantedAt:  c.GrantedAt,
		RevokedAt:  c.RevokedAt,
	}
}
