package performance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hr-hub/internal/performance"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePerformanceService struct {
	performance.Service
	AdvanceFn func(ctx context.Context, id string, to performance.Status) (performance.CycleResponse, error)
}

func (f *fakePerformanceService) Advance(ctx context.Context, id string, to performance.Status) (performance.CycleResponse, error) {
	return f.AdvanceFn(ctx, id, to)
}

func TestPerformanceHandler_Advance(t *testing.T) {
	apperror.Init()
	gin.SetMode(gin.TestMode)
	hr := session.Principal{UserID: "u-1", Role: session.RoleHRAdmin}

	t.Run("unknown status", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		id := uuid.NewString()
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/performance/cycles/"+id+"/advance", strings.NewReader(`{"to_status":"DONE"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		performance.NewHandler(&fakePerformanceService{}).Advance(c, hr)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "to_status")
	})

	t.Run("advanced", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		id := uuid.NewString()
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/performance/cycles/"+id+"/advance", strings.NewReader(`{"to_status":"ACTIVE"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		svc := &fakePerformanceService{AdvanceFn: func(ctx context.Context, got string, to performance.Status) (performance.CycleResponse, error) {
			assert.Equal(t, id, got)
			return performance.CycleResponse{ID: got, Status: to}, nil
		}}

		performance.NewHandler(svc).Advance(c, hr)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ACTIVE"`)
	})
}
