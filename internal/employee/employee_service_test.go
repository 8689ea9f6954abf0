package employee_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hr-hub/internal/employee"
	employeeerrors "hr-hub/internal/employee/errors"
	"hr-hub/internal/events"
	"hr-hub/internal/shared/contextutil"
	"hr-hub/internal/shared/counter"
	"hr-hub/internal/shared/testutil"
	"hr-hub/internal/tenant"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeEmployeeRepo struct {
	CreateFn      func(ctx context.Context, e *employee.Employee) error
	ListFn        func(ctx context.Context, f employee.ListFilter) ([]employee.Employee, int64, error)
	FindByIDFn    func(ctx context.Context, id string) (*employee.Employee, error)
	UpdateFn      func(ctx context.Context, e *employee.Employee) error
	DeleteFn      func(ctx context.Context, id string) error
	ListActiveFn  func(ctx context.Context) ([]employee.Employee, error)
	CountActiveFn func(ctx context.Context) (int64, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *gorm.DB) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	return f.CreateFn(ctx, e)
}
func (f *fakeEmployeeRepo) List(ctx context.Context, fl employee.ListFilter) ([]employee.Employee, int64, error) {
	return f.ListFn(ctx, fl)
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.FindByIDFn(ctx, id)
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error {
	return f.UpdateFn(ctx, e)
}
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return f.DeleteFn(ctx, id) }
func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return f.ListActiveFn(ctx)
}
func (f *fakeEmployeeRepo) CountActive(ctx context.Context) (int64, error) {
	return f.CountActiveFn(ctx)
}

type fakeCounter struct {
	next  int64
	calls int
}

func (f *fakeCounter) WithTx(tx *gorm.DB) counter.Repository { return f }
func (f *fakeCounter) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.calls++
	return f.next, nil
}

type serviceDeps struct {
	repo     *fakeEmployeeRepo
	counter  *fakeCounter
	outbox   *testutil.Outbox
	tx       *testutil.Transactor
	recorder *testutil.AuditRecorder
	service  employee.Service
}

func setupServiceTest() *serviceDeps {
	d := &serviceDeps{
		repo:     &fakeEmployeeRepo{},
		counter:  &fakeCounter{next: 123},
		outbox:   &testutil.Outbox{},
		tx:       &testutil.Transactor{},
		recorder: &testutil.AuditRecorder{},
	}
	d.service = employee.NewService(d.tx, d.repo, d.counter, d.outbox, d.recorder)
	return d
}

func validCreate() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		FullName:   "Kim Minji",
		Email:      "minji@hub.kr",
		HireDate:   "2026-01-05",
		Status:     employee.StatusActive,
		BaseSalary: decimal.NewFromInt(4200000),
	}
}

func TestEmployeeService_Create(t *testing.T) {
	companyID := uuid.NewString()
	ctx := tenant.WithScope(contextutil.WithRequestID(context.Background(), "req-1"), tenant.ForCompany(companyID))

	t.Run("auto generates number, queues event and audits", func(t *testing.T) {
		d := setupServiceTest()
		d.repo.CreateFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, companyID, e.CompanyID)
			assert.Equal(t, "EMP-000123", e.EmployeeNumber)
			return nil
		}

		resp, err := d.service.Create(ctx, validCreate())

		require.NoError(t, err)
		assert.Equal(t, "EMP-000123", resp.EmployeeNumber)
		assert.Equal(t, 1, d.tx.Calls)
		require.Len(t, d.outbox.Events, 1)
		assert.Equal(t, events.EmployeeLifecycleTopic, d.outbox.Events[0].Topic)
		assert.Equal(t, "req-1", d.outbox.Events[0].RequestID)

		var ev events.EmployeeCreated
		d.outbox.Decode(t, 0, &ev)
		assert.Equal(t, resp.ID, ev.EmployeeID)
		assert.Equal(t, companyID, ev.CompanyID)
		assert.Equal(t, []string{"employee.create"}, d.recorder.Actions())
	})

	t.Run("explicit number skips the counter", func(t *testing.T) {
		d := setupServiceTest()
		d.repo.CreateFn = func(ctx context.Context, e *employee.Employee) error { return nil }
		req := validCreate()
		req.EmployeeNumber = "KR-7"

		resp, err := d.service.Create(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "KR-7", resp.EmployeeNumber)
		assert.Zero(t, d.counter.calls)
	})

	t.Run("duplicate number is a conflict", func(t *testing.T) {
		d := setupServiceTest()
		d.repo.CreateFn = func(ctx context.Context, e *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_number"}
		}

		_, err := d.service.Create(ctx, validCreate())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNumberAlreadyExists)
		assert.Empty(t, d.recorder.Actions())
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		d := setupServiceTest()
		d.repo.CreateFn = func(ctx context.Context, e *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}
		}

		_, err := d.service.Create(ctx, validCreate())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})

	t.Run("outbox failure rolls the create back", func(t *testing.T) {
		d := setupServiceTest()
		d.repo.CreateFn = func(ctx context.Context, e *employee.Employee) error { return nil }
		d.outbox.Err = errors.New("insert outbox failed")

		_, err := d.service.Create(ctx, validCreate())

		assert.Error(t, err)
		assert.Empty(t, d.recorder.Actions())
	})

	t.Run("negative salary", func(t *testing.T) {
		d := setupServiceTest()
		req := validCreate()
		req.BaseSalary = decimal.NewFromInt(-1)

		_, err := d.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrNegativeSalary)
		assert.Zero(t, d.tx.Calls)
	})

	t.Run("super-admin across tenants must name the company", func(t *testing.T) {
		d := setupServiceTest()
		allCtx := tenant.WithScope(context.Background(), tenant.AllTenants())

		_, err := d.service.Create(allCtx, validCreate())

		assert.ErrorIs(t, err, tenant.ErrCompanyRequired)
	})

	t.Run("tenant user cannot write into another company", func(t *testing.T) {
		d := setupServiceTest()
		req := validCreate()
		req.CompanyID = uuid.NewString()

		_, err := d.service.Create(ctx, req)

		assert.ErrorIs(t, err, tenant.ErrForeignTenant)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	id := uuid.New()
	existing := func() *employee.Employee {
		return &employee.Employee{
			ID: id, CompanyID: "kr", FullName: "Kim Minji", Email: "minji@hub.kr",
			HireDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), Status: employee.StatusActive,
		}
	}

	t.Run("partial update audits before and after", func(t *testing.T) {
		d := setupServiceTest()
		d.repo.FindByIDFn = func(ctx context.Context, got string) (*employee.Employee, error) { return existing(), nil }
		d.repo.UpdateFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, "Platform", e.Department)
			assert.Equal(t, "Kim Minji", e.FullName)
			return nil
		}
		dept := "Platform"

		resp, err := d.service.Update(context.Background(), id.String(), employee.UpdateEmployeeRequest{Department: &dept})

		require.NoError(t, err)
		assert.Equal(t, "Platform", resp.Department)
		require.Len(t, d.recorder.Entries, 1)
		assert.NotNil(t, d.recorder.Entries[0].Changes)
	})

	t.Run("termination before hire date", func(t *testing.T) {
		d := setupServiceTest()
		d.repo.FindByIDFn = func(ctx context.Context, got string) (*employee.Employee, error) { return existing(), nil }
		date := "2025-12-31"

		_, err := d.service.Update(context.Background(), id.String(), employee.UpdateEmployeeRequest{TerminationDate: &date})

		assert.Error(t, err)
		assert.Empty(t, d.recorder.Actions())
	})

	t.Run("foreign employee is not found", func(t *testing.T) {
		d := setupServiceTest()
		d.repo.FindByIDFn = func(ctx context.Context, got string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}
		name := "Somebody"

		_, err := d.service.Update(context.Background(), id.String(), employee.UpdateEmployeeRequest{FullName: &name})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("empty body", func(t *testing.T) {
		d := setupServiceTest()
		_, err := d.service.Update(context.Background(), id.String(), employee.UpdateEmployeeRequest{})
		assert.ErrorIs(t, err, employeeerrors.ErrNothingToUpdate)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	d := setupServiceTest()
	id := uuid.New()
	d.repo.FindByIDFn = func(ctx context.Context, got string) (*employee.Employee, error) {
		return &employee.Employee{ID: id, CompanyID: "kr"}, nil
	}
	d.repo.DeleteFn = func(ctx context.Context, got string) error { return nil }

	require.NoError(t, d.service.Delete(context.Background(), id.String()))
	assert.Equal(t, []string{"employee.delete"}, d.recorder.Actions())
}
