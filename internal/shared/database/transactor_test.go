package database_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"hr-hub/internal/shared/database"
	"hr-hub/internal/shared/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestWithinTransaction_Commit(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE leave_requests`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := database.NewTransactor(db).WithinTransaction(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec("UPDATE leave_requests SET status = ?", "APPROVED").Error
	})

	assert.NoError(t, err)
}

func TestWithinTransaction_RollbackOnError(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := database.NewTransactor(db).WithinTransaction(context.Background(), func(tx *gorm.DB) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestPaginate(t *testing.T) {
	db, _ := testutil.NewGormMock(t)
	dry := db.Session(&gorm.Session{DryRun: true})

	t.Run("offset past every row", func(t *testing.T) {
		var rows []map[string]any
		stmt := dry.Table("employees").Scopes(database.Paginate(math.MaxInt, 20)).Find(&rows).Statement

		assert.Contains(t, stmt.SQL.String(), "OFFSET")
		assert.Contains(t, stmt.Vars, math.MaxInt)
	})

	t.Run("negative offset selects nothing", func(t *testing.T) {
		var rows []map[string]any
		stmt := dry.Table("employees").Scopes(database.Paginate(-40, 20)).Find(&rows).Statement

		assert.Contains(t, stmt.SQL.String(), "WHERE 1 = 0")
	})
}
