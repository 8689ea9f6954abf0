package department_test

import (
	"context"
	"testing"

	"hr-hub/internal/department"
	"hr-hub/internal/shared/testutil"
	"hr-hub/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ListIsTenantScoped(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	companyID := uuid.NewString()
	ctx := tenant.WithScope(context.Background(), tenant.ForCompany(companyID))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "departments" WHERE departments.company_id = \$1 AND departments.name ILIKE \$2`).
		WithArgs(companyID, "%eng%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT departments.\*, \(SELECT COUNT\(\*\) FROM employees e .*\) AS headcount FROM "departments" WHERE departments.company_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "name", "headcount"}).
			AddRow(uuid.NewString(), companyID, "Engineering", 4))

	rows, total, err := department.NewRepository(db).List(ctx, "eng", 0, 20)

	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 4, rows[0].Headcount)
	assert.Equal(t, "Engineering", rows[0].Name)
}

func TestRepository_FailsClosedWithoutScope(t *testing.T) {
	db, _ := testutil.NewGormMock(t)

	_, err := department.NewRepository(db).FindByID(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, tenant.ErrMissingScope)
}
