package auth

import (
	"strings"
	"time"

	"hr-hub/internal/rbac"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type UserResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	CompanyID  string  `json:"company_id"`
	EmployeeID *string `json:"employee_id"`
}

type LoginResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
	// Token is also set as the session cookie; API clients send it as a bearer token.
	Token string `json:"token"`
}

type MeResponse struct {
	User        UserResponse      `json:"user"`
	Permissions []rbac.Permission `json:"permissions"`
}
