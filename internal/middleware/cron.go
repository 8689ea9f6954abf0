package middleware

import (
	"crypto/subtle"
	"strings"

	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/shared/response"
	"hr-hub/internal/tenant"

	"github.com/gin-gonic/gin"
)

var ErrCronDisabled = apperror.Unavailable("Cron endpoints are disabled")

// CronAuth admits scheduler calls carrying "Bearer <secret>". An empty secret disables cron.
// Admitted jobs run across all tenants.
func CronAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			response.Fail(c, ErrCronDisabled)
			return
		}
		token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			response.Fail(c, apperror.ErrUnauthorized)
			return
		}
		c.Request = c.Request.WithContext(tenant.WithScope(c.Request.Context(), tenant.AllTenants()))
		c.Next()
	}
}
