package tenant

import (
	"context"
	"errors"

	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"

	"gorm.io/gorm"
)

// ErrMissingScope fails a query that reached the database without a tenant scope.
var ErrMissingScope = errors.New("tenant: query without scope")

var (
	ErrForeignTenant   = apperror.Forbidden("Access to another company is not allowed")
	ErrCompanyRequired = apperror.BadRequest("company_id is required for this operation")
)

// Scope is the set of companies a request may touch: exactly one, or all of them.
// The zero value is invalid and makes every query fail.
type Scope struct {
	valid     bool
	all       bool
	companyID string
}

func ForCompany(companyID string) Scope {
	return Scope{valid: companyID != "", companyID: companyID}
}

// AllTenants is reserved for super-admins and trusted system jobs.
func AllTenants() Scope {
	return Scope{valid: true, all: true}
}

// Resolve derives the scope of a request from its principal and an optional company_id filter.
func Resolve(p session.Principal, requested string) (Scope, error) {
	if p.IsSuperAdmin() {
		if requested != "" {
			return ForCompany(requested), nil
		}
		return AllTenants(), nil
	}
	if requested != "" && requested != p.CompanyID {
		return Scope{}, ErrForeignTenant
	}
	return ForCompany(p.CompanyID), nil
}

func (s Scope) Valid() bool {
	return s.valid
}

func (s Scope) IsAll() bool {
	return s.valid && s.all
}

// CompanyID is empty for an all-tenants scope.
func (s Scope) CompanyID() string {
	return s.companyID
}

func (s Scope) Allows(companyID string) bool {
	return s.valid && (s.all || s.companyID == companyID)
}

// WriteCompanyID picks the company a new row belongs to.
func (s Scope) WriteCompanyID(explicit string) (string, error) {
	switch {
	case !s.valid:
		return "", ErrMissingScope
	case s.all:
		if explicit == "" {
			return "", ErrCompanyRequired
		}
		return explicit, nil
	case explicit != "" && explicit != s.companyID:
		return "", ErrForeignTenant
	default:
		return s.companyID, nil
	}
}

// Key identifies the scope in cache keys.
func (s Scope) Key() string {
	if s.all {
		return "all"
	}
	return s.companyID
}

type scopeKey struct{}

func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

func FromContext(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(Scope)
	return s, ok && s.valid
}

// Query is the single entry point repositories use to read or write tenant data.
// column is the qualified tenant column, e.g. "employees.company_id" or, after a join,
// "employee.company_id".
func Query(ctx context.Context, db *gorm.DB, column string) *gorm.DB {
	tx := db.WithContext(ctx)
	s, ok := FromContext(ctx)
	if !ok {
		_ = tx.AddError(ErrMissingScope)
		return tx
	}
	if s.all {
		return tx
	}
	return tx.Where(column+" = ?", s.companyID)
}
