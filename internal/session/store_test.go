package session_test

import (
	"context"
	"testing"
	"time"

	"hr-hub/internal/session"
	"hr-hub/internal/shared/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStore_FindActive(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	store := session.NewStore(db)
	now := time.Now()
	expires := now.Add(time.Hour)

	mock.ExpectQuery(`SELECT users.id AS user_id, users.employee_id, users.role, users.company_id, sessions.expires_at FROM "sessions" JOIN users`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "employee_id", "role", "company_id", "expires_at"}).
			AddRow("user-1", "emp-1", "MANAGER", "company-1", expires))

	p, exp, err := store.FindActive(context.Background(), "sid-1", now)

	require.NoError(t, err)
	assert.Equal(t, session.Principal{UserID: "user-1", EmployeeID: "emp-1", Role: session.RoleManager, CompanyID: "company-1"}, p)
	assert.Equal(t, expires, exp)
}

func TestStore_FindActive_NotFound(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	store := session.NewStore(db)

	mock.ExpectQuery(`FROM "sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "employee_id", "role", "company_id", "expires_at"}))

	_, _, err := store.FindActive(context.Background(), "sid-1", time.Now())

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStore_Delete(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	store := session.NewStore(db)

	mock.ExpectExec(`DELETE FROM "sessions" WHERE id = \$1`).
		WithArgs("sid-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Delete(context.Background(), "sid-1"))
}
