package employee_test

import (
	"context"
	"testing"

	"hr-hub/internal/employee"
	"hr-hub/internal/shared/testutil"
	"hr-hub/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRepository_ListAppliesTenantAndFilters(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	ctx := tenant.WithScope(context.Background(), tenant.ForCompany("kr"))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "employees" WHERE employees.company_id = \$1 AND employees.status = \$2 AND employees.department = \$3`).
		WithArgs("kr", "ACTIVE", "Platform").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))
	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE employees.company_id = \$1 AND employees.status = \$2 AND employees.department = \$3 .*ORDER BY employees.full_name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "full_name"}).
			AddRow(uuid.NewString(), "kr", "Kim Minji"))

	rows, total, err := employee.NewRepository(db).List(ctx, employee.ListFilter{
		Status: employee.StatusActive, Department: "Platform", Offset: 0, Limit: 20,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(45), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "kr", rows[0].CompanyID)
}

func TestRepository_FindByIDForeignTenantIsNotFound(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	ctx := tenant.WithScope(context.Background(), tenant.ForCompany("kr"))
	id := uuid.NewString()

	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE employees.company_id = \$1 AND employees.id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := employee.NewRepository(db).FindByID(ctx, id)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_DeleteIsSoft(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	ctx := tenant.WithScope(context.Background(), tenant.ForCompany("kr"))

	mock.ExpectExec(`UPDATE "employees" SET "deleted_at"=\$1 WHERE employees.company_id = \$2 AND employees.id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, employee.NewRepository(db).Delete(ctx, uuid.NewString()))
}

func TestRepository_QueryWithoutScopeFailsClosed(t *testing.T) {
	db, _ := testutil.NewGormMock(t)

	_, err := employee.NewRepository(db).ListActive(context.Background())

	assert.ErrorIs(t, err, tenant.ErrMissingScope)
}
