package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hr-hub/internal/auth"
	autherrors "hr-hub/internal/auth/errors"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	LoginFn  func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	LogoutFn func(ctx context.Context, token string) error
	MeFn     func(ctx context.Context, p session.Principal) (auth.MeResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	return f.LoginFn(ctx, req)
}
func (f *fakeAuthService) Logout(ctx context.Context, token string) error {
	return f.LogoutFn(ctx, token)
}
func (f *fakeAuthService) Me(ctx context.Context, p session.Principal) (auth.MeResponse, error) {
	return f.MeFn(ctx, p)
}
func (f *fakeAuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return 0, nil
}

func TestHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	t.Run("sets the session cookie", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
				assert.Equal(t, "minji@hub.kr", req.Email)
				return auth.LoginResponse{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}, nil
			},
		}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"Minji@Hub.kr","password":"correct-horse"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		auth.NewHandler(svc, true).Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, session.CookieName, cookies[0].Name)
		assert.Equal(t, "tok", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
	})

	t.Run("validation lists every field", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"nope","password":"short"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		auth.NewHandler(&fakeAuthService{}, false).Login(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"email"`)
		assert.Contains(t, w.Body.String(), `"field":"password"`)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
				return auth.LoginResponse{}, autherrors.ErrInvalidCredentials
			},
		}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"minji@hub.kr","password":"wrong-horse"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		auth.NewHandler(svc, false).Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestHandler_LogoutClearsCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var got string
	svc := &fakeAuthService{
		LogoutFn: func(ctx context.Context, token string) error {
			got = token
			return nil
		},
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	c.Request.AddCookie(&http.Cookie{Name: session.CookieName, Value: "tok"})

	auth.NewHandler(svc, false).Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok", got)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}
