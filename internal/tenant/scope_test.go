package tenant_test

import (
	"context"
	"testing"

	"hr-hub/internal/session"
	"hr-hub/internal/shared/testutil"
	"hr-hub/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type employee struct {
	ID        string
	CompanyID string
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		principal session.Principal
		requested string
		wantErr   error
		wantAll   bool
		wantID    string
	}{
		{"tenant user own company", session.Principal{Role: session.RoleHRAdmin, CompanyID: "kr"}, "", nil, false, "kr"},
		{"tenant user same param", session.Principal{Role: session.RoleEmployee, CompanyID: "kr"}, "kr", nil, false, "kr"},
		{"tenant user foreign param", session.Principal{Role: session.RoleExecutive, CompanyID: "kr"}, "us", tenant.ErrForeignTenant, false, ""},
		{"super admin unfiltered", session.Principal{Role: session.RoleSuperAdmin, CompanyID: "hq"}, "", nil, true, ""},
		{"super admin filtered", session.Principal{Role: session.RoleSuperAdmin, CompanyID: "hq"}, "pl", nil, false, "pl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tenant.Resolve(tt.principal, tt.requested)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAll, s.IsAll())
			assert.Equal(t, tt.wantID, s.CompanyID())
		})
	}
}

func TestScope_WriteCompanyID(t *testing.T) {
	id, err := tenant.ForCompany("kr").WriteCompanyID("")
	require.NoError(t, err)
	assert.Equal(t, "kr", id)

	_, err = tenant.ForCompany("kr").WriteCompanyID("us")
	assert.ErrorIs(t, err, tenant.ErrForeignTenant)

	_, err = tenant.AllTenants().WriteCompanyID("")
	assert.ErrorIs(t, err, tenant.ErrCompanyRequired)

	id, err = tenant.AllTenants().WriteCompanyID("vn")
	require.NoError(t, err)
	assert.Equal(t, "vn", id)

	_, err = tenant.Scope{}.WriteCompanyID("vn")
	assert.ErrorIs(t, err, tenant.ErrMissingScope)
}

func TestScope_Allows(t *testing.T) {
	assert.True(t, tenant.ForCompany("kr").Allows("kr"))
	assert.False(t, tenant.ForCompany("kr").Allows("cn"))
	assert.True(t, tenant.AllTenants().Allows("cn"))
	assert.False(t, tenant.Scope{}.Allows("kr"))
	assert.False(t, tenant.ForCompany("").Valid())
}

func TestQuery_InjectsPredicate(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	ctx := tenant.WithScope(context.Background(), tenant.ForCompany("kr"))

	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE employees.company_id = \$1`).
		WithArgs("kr").
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id"}).AddRow("e-1", "kr"))

	var rows []employee
	err := tenant.Query(ctx, db, "employees.company_id").Table("employees").Find(&rows).Error

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "kr", rows[0].CompanyID)
}

func TestQuery_AllTenantsUnfiltered(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	ctx := tenant.WithScope(context.Background(), tenant.AllTenants())

	mock.ExpectQuery(`SELECT \* FROM "employees"$`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id"}).AddRow("e-1", "kr").AddRow("e-2", "us"))

	var rows []employee
	err := tenant.Query(ctx, db, "employees.company_id").Table("employees").Find(&rows).Error

	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestQuery_FailsClosedWithoutScope(t *testing.T) {
	db, _ := testutil.NewGormMock(t)

	var rows []employee
	err := tenant.Query(context.Background(), db, "employees.company_id").Table("employees").Find(&rows).Error

	assert.ErrorIs(t, err, tenant.ErrMissingScope)
	assert.Empty(t, rows)
}
