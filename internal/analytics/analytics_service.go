package analytics

import (
	"context"
	"errors"
	"time"

	"hr-hub/internal/employee"
	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/shared/cache"
	"hr-hub/internal/tenant"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	dashboardTTL = 60 * time.Second
	// attritionPlaceholder stands in until a trained model is available.
	attritionPlaceholder = 0.2
)

type Service interface {
	Dashboard(ctx context.Context) (Dashboard, error)
	Attrition(ctx context.Context, employeeID string) (AttritionResponse, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	cache     *cache.Cache
	now       func() time.Time
	logger    *zap.Logger
}

// NewService accepts a nil cache; every dashboard request then hits the database.
func NewService(repo Repository, employees employee.Repository, c *cache.Cache, logger ...*zap.Logger) Service {
	l := zap.L().Named("analytics.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("analytics.service")
	}
	return &service{repo: repo, employees: employees, cache: c, now: time.Now, logger: l}
}

func (s *service) Dashboard(ctx context.Context) (Dashboard, error) {
	scope, ok := tenant.FromContext(ctx)
	if !ok {
		return Dashboard{}, tenant.ErrMissingScope
	}
	return cache.Remember(ctx, s.cache, "analytics:dashboard:"+scope.Key(), dashboardTTL, s.loadDashboard)
}

func (s *service) loadDashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Headcount, err = s.repo.CountActiveEmployees(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.PendingLeave, err = s.repo.CountPendingLeave(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.OpenPayrollRuns, err = s.repo.CountOpenPayrollRuns(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.OpenOnboarding, err = s.repo.CountOpenOnboarding(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("load dashboard failed", zap.Error(err))
		return Dashboard{}, apperror.FromStorage(err)
	}
	d.GeneratedAt = s.now().UTC()
	return d, nil
}

func (s *service) Attrition(ctx context.Context, employeeID string) (AttritionResponse, error) {
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttritionResponse{}, apperror.NotFound("Employee not found")
		}
		return AttritionResponse{}, apperror.FromStorage(err)
	}
	return AttritionResponse{
		EmployeeID:  employeeID,
		Risk:        attritionPlaceholder,
		Placeholder: true,
	}, nil
}
