package compliance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hr-hub/internal/audit"
	"hr-hub/internal/compliance"
	complianceerrors "hr-hub/internal/compliance/errors"
	"hr-hub/internal/employee"
	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/shared/testutil"
	"hr-hub/internal/tenant"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeConsentRepo struct {
	CreateFn   func(ctx context.Context, c *compliance.Consent) error
	ListFn     func(ctx context.Context, f compliance.ConsentFilter) ([]compliance.Consent, int64, error)
	FindByIDFn func(ctx context.Context, id string) (*compliance.Consent, error)
	RevokeFn   func(ctx context.Context, id string, at time.Time) (bool, error)
}

func (f *fakeConsentRepo) Create(ctx context.Context, c *compliance.Consent) error {
	return f.CreateFn(ctx, c)
}
func (f *fakeConsentRepo) List(ctx context.Context, fl compliance.ConsentFilter) ([]compliance.Consent, int64, error) {
	return f.ListFn(ctx, fl)
}
func (f *fakeConsentRepo) FindByID(ctx context.Context, id string) (*compliance.Consent, error) {
	return f.FindByIDFn(ctx, id)
}
func (f *fakeConsentRepo) Revoke(ctx context.Context, id string, at time.Time) (bool, error) {
	return f.RevokeFn(ctx, id, at)
}

type countries map[string]string

func (c countries) CountryOf(ctx context.Context, companyID string) (string, error) {
	country, ok := c[companyID]
	if !ok {
		return "", apperror.NotFound("Company not found")
	}
	return country, nil
}

// failingAuditRepo makes every asynchronous flush fail.
type failingAuditRepo struct{}

func (failingAuditRepo) WithTx(tx *gorm.DB) audit.Repository { return failingAuditRepo{} }
func (failingAuditRepo) InsertBatch(ctx context.Context, logs []audit.Log) error {
	return errors.New("audit_logs unavailable")
}
func (failingAuditRepo) List(ctx context.Context, f audit.ListFilter) ([]audit.Log, int64, error) {
	return nil, 0, errors.New("audit_logs unavailable")
}

var (
	krCompany = uuid.NewString()
	plCompany = uuid.NewString()
)

func newComplianceService(t *testing.T, repo compliance.Repository, employees employee.Repository, recorder audit.Recorder) compliance.Service {
	t.Helper()
	rules, err := compliance.DefaultRules()
	require.NoError(t, err)
	return compliance.NewService(rules, repo, employees, countries{krCompany: "KR", plCompany: "PL"}, recorder, zap.NewNop())
}

func TestComplianceService_Rule(t *testing.T) {
	svc := newComplianceService(t, &fakeConsentRepo{}, testutil.NewEmployees(), &testutil.AuditRecorder{})

	rule, err := svc.Rule("pl")
	require.NoError(t, err)
	assert.Equal(t, "GDPR", rule.DataProtection)

	_, err = svc.Rule("ZZ")
	assert.ErrorIs(t, err, complianceerrors.ErrUnknownCountry)

	rule, err = svc.RuleForCompany(context.Background(), krCompany)
	require.NoError(t, err)
	assert.Equal(t, 52, rule.WeeklyHourCap)
}

func TestComplianceService_Grant(t *testing.T) {
	empl := employee.Employee{ID: uuid.New(), CompanyID: plCompany, Status: employee.StatusActive}
	ctx := tenant.WithScope(context.Background(), tenant.ForCompany(plCompany))

	t.Run("regime follows the company country", func(t *testing.T) {
		recorder := &testutil.AuditRecorder{}
		repo := &fakeConsentRepo{CreateFn: func(ctx context.Context, c *compliance.Consent) error {
			assert.Equal(t, plCompany, c.CompanyID)
			assert.Equal(t, compliance.ConsentGranted, c.Status)
			return nil
		}}
		svc := newComplianceService(t, repo, testutil.NewEmployees(empl), recorder)

		resp, err := svc.Grant(ctx, compliance.GrantConsentRequest{EmployeeID: empl.ID.String(), Purpose: "payroll_processing"})

		require.NoError(t, err)
		assert.Equal(t, "GDPR", resp.Regime)
		assert.Equal(t, []string{"consent.grant"}, recorder.Actions())
	})

	t.Run("second active consent conflicts", func(t *testing.T) {
		repo := &fakeConsentRepo{CreateFn: func(ctx context.Context, c *compliance.Consent) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_consent_active"}
		}}
		svc := newComplianceService(t, repo, testutil.NewEmployees(empl), &testutil.AuditRecorder{})

		_, err := svc.Grant(ctx, compliance.GrantConsentRequest{EmployeeID: empl.ID.String(), Purpose: "marketing"})

		assert.ErrorIs(t, err, complianceerrors.ErrConsentAlreadyGranted)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc := newComplianceService(t, &fakeConsentRepo{}, testutil.NewEmployees(), &testutil.AuditRecorder{})

		_, err := svc.Grant(ctx, compliance.GrantConsentRequest{EmployeeID: uuid.NewString(), Purpose: "marketing"})

		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.HTTPStatus)
	})
}

func TestComplianceService_Revoke(t *testing.T) {
	id := uuid.New()
	granted := func() *compliance.Consent {
		return &compliance.Consent{ID: id, CompanyID: krCompany, Status: compliance.ConsentGranted, GrantedAt: time.Now()}
	}

	t.Run("succeeds even when the audit store is down", func(t *testing.T) {
		sink := audit.NewAsyncSink(failingAuditRepo{}, audit.SinkConfig{BufferSize: 4, BatchSize: 1, FlushInterval: time.Millisecond}, nil, zap.NewNop())
		defer sink.Close()

		repo := &fakeConsentRepo{
			FindByIDFn: func(ctx context.Context, id string) (*compliance.Consent, error) { return granted(), nil },
			RevokeFn:   func(ctx context.Context, id string, at time.Time) (bool, error) { return true, nil },
		}
		svc := newComplianceService(t, repo, testutil.NewEmployees(), sink)

		resp, err := svc.Revoke(context.Background(), id.String())

		require.NoError(t, err)
		assert.Equal(t, compliance.ConsentRevoked, resp.Status)
		assert.NotNil(t, resp.RevokedAt)
	})

	t.Run("already revoked", func(t *testing.T) {
		repo := &fakeConsentRepo{
			FindByIDFn: func(ctx context.Context, id string) (*compliance.Consent, error) { return granted(), nil },
			RevokeFn:   func(ctx context.Context, id string, at time.Time) (bool, error) { return false, nil },
		}
		recorder := &testutil.AuditRecorder{}
		svc := newComplianceService(t, repo, testutil.NewEmployees(), recorder)

		_, err := svc.Revoke(context.Background(), id.String())

		assert.ErrorIs(t, err, complianceerrors.ErrConsentAlreadyRevoked)
		assert.Empty(t, recorder.Actions())
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeConsentRepo{
			FindByIDFn: func(ctx context.Context, id string) (*compliance.Consent, error) { return nil, gorm.ErrRecordNotFound },
		}
		svc := newComplianceService(t, repo, testutil.NewEmployees(), &testutil.AuditRecorder{})

		_, err := svc.Revoke(context.Background(), id.String())

		assert.ErrorIs(t, err, complianceerrors.ErrConsentNotFound)
	})
}
