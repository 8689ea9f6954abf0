package rbac_test

import (
	"testing"

	"hr-hub/internal/rbac"
	"hr-hub/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultPolicy(t *testing.T) {
	svc, err := rbac.NewService("", zap.NewNop())
	require.NoError(t, err)

	tests := []struct {
		role    session.Role
		module  rbac.Module
		action  rbac.Action
		allowed bool
	}{
		{session.RoleEmployee, rbac.ModuleLeave, rbac.ActionCreate, true},
		{session.RoleEmployee, rbac.ModuleLeave, rbac.ActionApprove, false},
		{session.RoleEmployee, rbac.ModulePayroll, rbac.ActionView, false},
		{session.RoleManager, rbac.ModuleLeave, rbac.ActionApprove, true},
		{session.RoleHRAdmin, rbac.ModuleEmployees, rbac.ActionDelete, true},
		{session.RoleHRAdmin, rbac.ModulePayroll, rbac.ActionApprove, false},
		{session.RoleExecutive, rbac.ModulePayroll, rbac.ActionApprove, true},
		{session.RoleSuperAdmin, rbac.ModuleAudit, rbac.ActionExport, true},
		{session.Role("INTERN"), rbac.ModuleEmployees, rbac.ActionView, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.module)+":"+string(tt.action), func(t *testing.T) {
			allowed, err := svc.Enforce(tt.role, tt.module, tt.action)
			assert.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestNewServiceFromYAML_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown role":   "roles:\n  INTERN:\n    employees: [view]\n",
		"unknown module": "roles:\n  EMPLOYEE:\n    spaceships: [view]\n",
		"unknown action": "roles:\n  EMPLOYEE:\n    employees: [launch]\n",
		"bad yaml":       "roles: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := rbac.NewServiceFromYAML([]byte(doc), zap.NewNop())
			assert.Error(t, err)
		})
	}
}

func TestPermissionsFor_ExpandsWildcards(t *testing.T) {
	svc, err := rbac.NewServiceFromYAML([]byte("roles:\n  HR_ADMIN:\n    leave: [\"*\"]\n  EMPLOYEE:\n    leave: [view]\n"), zap.NewNop())
	require.NoError(t, err)

	perms := svc.PermissionsFor(session.RoleHRAdmin)
	assert.Len(t, perms, len(rbac.Actions))
	for _, p := range perms {
		assert.Equal(t, rbac.ModuleLeave, p.Module)
	}

	assert.Equal(t, []rbac.Permission{{Module: rbac.ModuleLeave, Action: rbac.ActionView}}, svc.PermissionsFor(session.RoleEmployee))
	assert.Empty(t, svc.PermissionsFor(session.RoleManager))
}

func TestRoles_Sorted(t *testing.T) {
	svc, err := rbac.NewServiceFromYAML([]byte("roles:\n  MANAGER:\n    leave: [approve]\n  EMPLOYEE:\n    leave: [view]\n"), zap.NewNop())
	require.NoError(t, err)

	roles := svc.Roles()
	require.Len(t, roles, 2)
	assert.Equal(t, "EMPLOYEE", roles[0].Name)
	assert.Equal(t, []string{"leave:view"}, roles[0].Permissions)
	assert.Equal(t, "MANAGER", roles[1].Name)
}
