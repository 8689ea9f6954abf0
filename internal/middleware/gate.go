package middleware

import (
	"hr-hub/internal/rbac"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/shared/contextutil"
	"hr-hub/internal/shared/response"
	"hr-hub/internal/tenant"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const principalKey = "principal"

// Authorizer answers whether a role holds a (module, action) grant.
type Authorizer interface {
	Enforce(role session.Role, module rbac.Module, action rbac.Action) (bool, error)
}

// HandlerFunc is a route body that runs only for an authorized principal.
type HandlerFunc func(c *gin.Context, p session.Principal)

// Gate guards routes: session first, then the role grant, then the tenant scope.
type Gate struct {
	resolver   session.Resolver
	authorizer Authorizer
	logger     *zap.Logger
}

func NewGate(resolver session.Resolver, authorizer Authorizer, logger ...*zap.Logger) *Gate {
	l := zap.L().Named("middleware.gate")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("middleware.gate")
	}
	return &Gate{resolver: resolver, authorizer: authorizer, logger: l}
}

// Authenticate resolves the principal for a whole route group. Handle reuses it.
func (g *Gate) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := g.principal(c); !ok {
			return
		}
		c.Next()
	}
}

// Handle wraps h behind the (module, action) requirement.
func (g *Gate) Handle(module rbac.Module, action rbac.Action, h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := g.authorize(c, module, action)
		if !ok {
			return
		}
		h(c, p)
	}
}

// Require is the middleware form of Handle.
func (g *Gate) Require(module rbac.Module, action rbac.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := g.authorize(c, module, action); !ok {
			return
		}
		c.Next()
	}
}

// Authenticated guards self-service routes that need a session but no module grant.
func (g *Gate) Authenticated(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := g.principal(c)
		if !ok {
			return
		}
		if !g.scope(c, p) {
			return
		}
		h(c, p)
	}
}

func (g *Gate) authorize(c *gin.Context, module rbac.Module, action rbac.Action) (session.Principal, bool) {
	p, ok := g.principal(c)
	if !ok {
		return session.Principal{}, false
	}

	allowed, err := g.authorizer.Enforce(p.Role, module, action)
	if err != nil {
		response.Fail(c, err)
		return session.Principal{}, false
	}
	if !allowed {
		contextutil.GetLogger(c.Request.Context(), g.logger).Warn("permission denied",
			zap.String("role", string(p.Role)),
			zap.String("module", string(module)),
			zap.String("action", string(action)),
		)
		response.Fail(c, apperror.ErrForbidden)
		return session.Principal{}, false
	}

	if !g.scope(c, p) {
		return session.Principal{}, false
	}
	return p, true
}

// principal returns the already resolved principal or resolves it from the request.
func (g *Gate) principal(c *gin.Context) (session.Principal, bool) {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(session.Principal); ok {
			return p, true
		}
	}

	p, err := g.resolver.Resolve(c.Request.Context(), session.TokenFromRequest(c.Request))
	if err != nil {
		response.Fail(c, err)
		return session.Principal{}, false
	}

	c.Set(principalKey, p)
	ctx := session.WithPrincipal(c.Request.Context(), p)
	ctx = contextutil.WithUserID(ctx, p.UserID)
	reqLogger := contextutil.GetLogger(ctx, g.logger).With(
		zap.String("user_id", p.UserID),
		zap.String("company_id", p.CompanyID),
		zap.String("role", string(p.Role)),
	)
	ctx = contextutil.WithLogger(ctx, reqLogger)
	c.Request = c.Request.WithContext(ctx)
	return p, true
}

func (g *Gate) scope(c *gin.Context, p session.Principal) bool {
	s, err := tenant.Resolve(p, c.Query("company_id"))
	if err != nil {
		contextutil.GetLogger(c.Request.Context(), g.logger).Warn("cross-tenant request rejected",
			zap.String("requested_company_id", c.Query("company_id")),
		)
		response.Fail(c, err)
		return false
	}
	c.Request = c.Request.WithContext(tenant.WithScope(c.Request.Context(), s))
	return true
}

// PrincipalFrom returns the principal stored by the gate.
func PrincipalFrom(c *gin.Context) (session.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return session.Principal{}, false
	}
	p, ok := v.(session.Principal)
	return p, ok
}
