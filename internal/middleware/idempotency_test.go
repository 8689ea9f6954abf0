package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hr-hub/internal/middleware"
	"hr-hub/internal/rbac"
	"hr-hub/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const payrollRoute = "/payroll/runs"

func idempotentRouter(rdb *redis.Client, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	gate := middleware.NewGate(resolverFor(map[string]session.Principal{"hr-token": hrAdmin}), grants(map[session.Role][]rbac.Permission{
		session.RoleHRAdmin: {{Module: rbac.ModulePayroll, Action: rbac.ActionCreate}},
	}), zap.NewNop())

	r := gin.New()
	group := r.Group("", gate.Authenticate(), middleware.Idempotency(rdb, time.Hour, zap.NewNop()))
	group.POST(payrollRoute, gate.Handle(rbac.ModulePayroll, rbac.ActionCreate, func(c *gin.Context, p session.Principal) {
		*calls++
		c.JSON(http.StatusCreated, gin.H{"data": gin.H{"run": *calls}})
	}))
	return r
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, payrollRoute, nil)
	req.Header.Set("Authorization", "Bearer hr-token")
	if key != "" {
		req.Header.Set(middleware.IdempotencyHeader, key)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	key := middleware.IdempotencyKey(payrollRoute, hrAdmin.UserID, "k-1")
	mock.ExpectGet(key).SetVal(`{"status":201,"body":{"data":{"run":99}}}`)

	calls := 0
	w := postWithKey(idempotentRouter(rdb, &calls), "k-1")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"data":{"run":99}}`, w.Body.String())
	assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
	assert.Zero(t, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_InFlightDuplicateIsConflict(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	key := middleware.IdempotencyKey(payrollRoute, hrAdmin.UserID, "k-2")
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSetNX(key+":lock", "locked", 30*time.Second).SetVal(false)

	calls := 0
	w := postWithKey(idempotentRouter(rdb, &calls), "k-2")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Zero(t, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_StoresThenReplays(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	calls := 0
	r := idempotentRouter(rdb, &calls)

	first := postWithKey(r, "k-3")
	second := postWithKey(r, "k-3")
	other := postWithKey(r, "k-4")

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.JSONEq(t, `{"data":{"run":2}}`, other.Body.String())
	assert.Equal(t, 2, calls)
	assert.False(t, mr.Exists(middleware.IdempotencyKey(payrollRoute, hrAdmin.UserID, "k-3")+":lock"))
}

func TestIdempotency_WithoutKeyOrRedis(t *testing.T) {
	calls := 0
	r := idempotentRouter(nil, &calls)

	postWithKey(r, "k-5")
	postWithKey(r, "k-5")

	assert.Equal(t, 2, calls)
}
