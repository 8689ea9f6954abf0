package analytics_test

import (
	"context"
	"testing"

	"hr-hub/internal/analytics"
	"hr-hub/internal/shared/testutil"
	"hr-hub/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_CountsAreTenantScoped(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	ctx := tenant.WithScope(context.Background(), tenant.ForCompany("kr"))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "leave_requests" WHERE leave_requests.company_id = \$1 AND leave_requests.status = \$2`).
		WithArgs("kr", "PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := analytics.NewRepository(db).CountPendingLeave(ctx)

	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}

func TestRepository_CountWithoutScopeFails(t *testing.T) {
	db, _ := testutil.NewGormMock(t)

	_, err := analytics.NewRepository(db).CountActiveEmployees(context.Background())

	assert.ErrorIs(t, err, tenant.ErrMissingScope)
}
