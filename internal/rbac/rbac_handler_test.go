package rbac_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hr-hub/internal/rbac"
	"hr-hub/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRBACService struct {
	EnforceFn        func(role session.Role, module rbac.Module, action rbac.Action) (bool, error)
	PermissionsForFn func(role session.Role) []rbac.Permission
	RolesFn          func() []rbac.RoleResponse
}

func (f *fakeRBACService) Enforce(role session.Role, module rbac.Module, action rbac.Action) (bool, error) {
	return f.EnforceFn(role, module, action)
}
func (f *fakeRBACService) PermissionsFor(role session.Role) []rbac.Permission {
	return f.PermissionsForFn(role)
}
func (f *fakeRBACService) Roles() []rbac.RoleResponse {
	return f.RolesFn()
}

func TestHandler_MyPermissions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeRBACService{
		PermissionsForFn: func(role session.Role) []rbac.Permission {
			assert.Equal(t, session.RoleManager, role)
			return []rbac.Permission{{Module: rbac.ModuleLeave, Action: rbac.ActionApprove}}
		},
	}
	h := rbac.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/rbac/permissions/me", nil)

	h.MyPermissions(c, session.Principal{UserID: "u-1", Role: session.RoleManager, CompanyID: "c-1"})

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data rbac.MyPermissionsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "MANAGER", body.Data.Role)
	assert.Equal(t, "leave:approve", body.Data.Permissions[0].String())
}

func TestHandler_ListRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeRBACService{
		RolesFn: func() []rbac.RoleResponse {
			return []rbac.RoleResponse{{Name: "EMPLOYEE", Permissions: []string{"leave:view"}}}
		},
	}
	h := rbac.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/rbac/roles", nil)

	h.ListRoles(c, session.Principal{UserID: "u-1", Role: session.RoleHRAdmin, CompanyID: "c-1"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[{"name":"EMPLOYEE","permissions":["leave:view"]}]}`, w.Body.String())
}
