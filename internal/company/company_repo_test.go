package company_test

import (
	"context"
	"testing"

	"hr-hub/internal/company"
	"hr-hub/internal/shared/testutil"
	"hr-hub/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRepository_ListTenantSeesOwnCompany(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	own := uuid.NewString()
	ctx := tenant.WithScope(context.Background(), tenant.ForCompany(own))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "companies" WHERE companies.id = \$1 AND "companies"."deleted_at" IS NULL`).
		WithArgs(own).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "companies" WHERE companies.id = \$1 AND "companies"."deleted_at" IS NULL ORDER BY companies.name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "country_code"}).AddRow(own, "Hub KR", "KR"))

	companies, total, err := company.NewRepository(db).List(ctx, 0, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, companies, 1)
	assert.Equal(t, own, companies[0].ID.String())
}

func TestRepository_ListSuperAdminUnfiltered(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	ctx := tenant.WithScope(context.Background(), tenant.AllTenants())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "companies" WHERE "companies"."deleted_at" IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "companies" WHERE "companies"."deleted_at" IS NULL ORDER BY companies.name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(uuid.NewString(), "Hub KR").
			AddRow(uuid.NewString(), "Hub US"))

	companies, total, err := company.NewRepository(db).List(ctx, 0, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, companies, 2)
}

func TestRepository_UpdateForeignCompanyIsNotFound(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	ctx := tenant.WithScope(context.Background(), tenant.ForCompany(uuid.NewString()))

	mock.ExpectExec(`UPDATE "companies" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := company.NewRepository(db).Update(ctx, &company.Company{ID: uuid.New(), Name: "x"})

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
