package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hr-hub/internal/attendance"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAttendanceService struct {
	attendance.Service
	ListFn    func(ctx context.Context, q attendance.ListQuery) ([]attendance.RecordResponse, int64, error)
	SummaryFn func(ctx context.Context, employeeID, weekStart string) (attendance.WeeklySummary, error)
}

func (f *fakeAttendanceService) List(ctx context.Context, q attendance.ListQuery) ([]attendance.RecordResponse, int64, error) {
	return f.ListFn(ctx, q)
}

func (f *fakeAttendanceService) WeeklySummary(ctx context.Context, employeeID, weekStart string) (attendance.WeeklySummary, error) {
	return f.SummaryFn(ctx, employeeID, weekStart)
}

func get(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestAttendanceHandler_ListForcesOwnRecords(t *testing.T) {
	own := session.Principal{UserID: "u-1", EmployeeID: uuid.NewString(), Role: session.RoleEmployee}
	svc := &fakeAttendanceService{ListFn: func(ctx context.Context, q attendance.ListQuery) ([]attendance.RecordResponse, int64, error) {
		assert.Equal(t, own.EmployeeID, q.EmployeeID)
		return nil, 0, nil
	}}
	c, w := get("/api/v1/attendance?employee_id=" + uuid.NewString())

	attendance.NewHandler(svc).List(c, own)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestAttendanceHandler_Summary(t *testing.T) {
	apperror.Init()

	t.Run("employee asking for someone else", func(t *testing.T) {
		p := session.Principal{UserID: "u-1", EmployeeID: uuid.NewString(), Role: session.RoleEmployee}
		c, w := get("/api/v1/attendance/summary?week_start=2026-03-02&employee_id=" + uuid.NewString())

		attendance.NewHandler(&fakeAttendanceService{}).Summary(c, p)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing week_start", func(t *testing.T) {
		p := session.Principal{UserID: "u-1", EmployeeID: uuid.NewString(), Role: session.RoleHRAdmin}
		c, w := get("/api/v1/attendance/summary")

		attendance.NewHandler(&fakeAttendanceService{}).Summary(c, p)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "week_start")
	})

	t.Run("hr admin for an employee", func(t *testing.T) {
		p := session.Principal{UserID: "u-1", Role: session.RoleHRAdmin}
		target := uuid.NewString()
		svc := &fakeAttendanceService{SummaryFn: func(ctx context.Context, employeeID, weekStart string) (attendance.WeeklySummary, error) {
			assert.Equal(t, target, employeeID)
			return attendance.WeeklySummary{EmployeeID: employeeID, WeekStart: weekStart, WeeklyHourCap: 52, Overtime: true}, nil
		}}
		c, w := get("/api/v1/attendance/summary?week_start=2026-03-02&employee_id=" + target)

		attendance.NewHandler(svc).Summary(c, p)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"overtime":true`)
	})
}
