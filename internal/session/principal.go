package session

import "context"

type Role string

const (
	RoleEmployee   Role = "EMPLOYEE"
	RoleManager    Role = "MANAGER"
	RoleHRAdmin    Role = "HR_ADMIN"
	RoleExecutive  Role = "EXECUTIVE"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHRAdmin, RoleExecutive, RoleSuperAdmin:
		return true
	}
	return false
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID     string `json:"user_id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Role       Role   `json:"role"`
	CompanyID  string `json:"company_id"`
}

func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

// IsStaff reports whether the principal acts on behalf of others rather than only on itself.
func (p Principal) IsStaff() bool {
	switch p.Role {
	case RoleHRAdmin, RoleExecutive, RoleSuperAdmin:
		return true
	}
	return false
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
