package request

import (
	"hr-hub/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/form"
	"github.com/google/uuid"
)

// Defaulter is implemented by schemas with optional fields that must not fall back to zero values.
type Defaulter interface {
	SetDefaults()
}

// Normalizer runs after a schema validated successfully, e.g. to clamp limits.
type Normalizer interface {
	Normalize()
}

var queryDecoder = form.NewDecoder()

// BindJSON decodes and validates the body into dst. Every violated field is reported at once.
func BindJSON(c *gin.Context, dst any) error {
	if d, ok := dst.(Defaulter); ok {
		d.SetDefaults()
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperror.MapValidationError(err)
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	return nil
}

// BindQuery coerces the query string into dst, then validates it.
// Coercion and rule failures are merged into a single BadRequest.
func BindQuery(c *gin.Context, dst any) error {
	if d, ok := dst.(Defaulter); ok {
		d.SetDefaults()
	}

	var issues []apperror.FieldIssue
	seen := map[string]bool{}
	if err := queryDecoder.Decode(dst, c.Request.URL.Query()); err != nil {
		for _, issue := range issuesOf(err) {
			seen[issue.Field] = true
			issues = append(issues, issue)
		}
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		for _, issue := range issuesOf(err) {
			if !seen[issue.Field] {
				issues = append(issues, issue)
			}
		}
	}
	if len(issues) > 0 {
		return apperror.Validation(issues)
	}

	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	return nil
}

// ParamUUID reads a route parameter that must be a UUID.
func ParamUUID(c *gin.Context, name string) (string, error) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", apperror.Validation([]apperror.FieldIssue{{
			Field:   name,
			Rule:    "uuid",
			Message: name + " must be a valid UUID",
		}})
	}
	return raw, nil
}

func issuesOf(err error) []apperror.FieldIssue {
	appErr, ok := apperror.As(apperror.MapValidationError(err))
	if !ok {
		return nil
	}
	issues, _ := appErr.Details.([]apperror.FieldIssue)
	return issues
}
