package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldIssue describes one violated rule on one input field.
type FieldIssue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

var ErrValidation = New(
	CodeBadRequest,
	"Request validation failed",
	http.StatusBadRequest,
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

func ruleMessage(field, rule, param string) string {
	human := formatFieldName(field)
	switch rule {
	case "required":
		return human + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", human, strings.ReplaceAll(param, " ", ", "))
	case "uuid", "uuid4":
		return human + " must be a valid UUID"
	case "datetime":
		return fmt.Sprintf("%s must be a date in format %s", human, param)
	case "email":
		return human + " must be a valid email address"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", human, param)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", human, param)
	case "len":
		return fmt.Sprintf("%s must have length %s", human, param)
	case "gtfield", "gtefield":
		return fmt.Sprintf("%s must not be before %s", human, formatFieldName(param))
	case "type":
		return human + " has an invalid type"
	default:
		return human + " is invalid"
	}
}

// Validation builds the BadRequest error for a list of issues.
func Validation(issues []FieldIssue) *AppError {
	return ErrValidation.WithDetails(issues)
}

// MapValidationError converts binding/decoding failures into a BadRequest that lists every issue.
func MapValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		issues := make([]FieldIssue, 0, len(verrs))
		for _, e := range verrs {
			// e.Field() is the json/form name, see Init.
			issues = append(issues, FieldIssue{
				Field:   e.Field(),
				Rule:    e.Tag(),
				Param:   e.Param(),
				Message: ruleMessage(e.Field(), e.Tag(), e.Param()),
			})
		}
		return Validation(issues)
	}

	var decodeErrs form.DecodeErrors
	if errors.As(err, &decodeErrs) {
		fields := make([]string, 0, len(decodeErrs))
		for field := range decodeErrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		issues := make([]FieldIssue, 0, len(fields))
		for _, field := range fields {
			issues = append(issues, FieldIssue{
				Field:   field,
				Rule:    "type",
				Message: ruleMessage(field, "type", ""),
			})
		}
		return Validation(issues)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return Validation([]FieldIssue{{
			Field:   field,
			Rule:    "type",
			Param:   typeErr.Type.String(),
			Message: ruleMessage(field, "type", ""),
		}})
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return Validation([]FieldIssue{{
			Field:   "body",
			Rule:    "json",
			Message: "Request body must be valid JSON",
		}})
	}

	return Validation([]FieldIssue{{
		Field:   "request",
		Rule:    "invalid",
		Message: err.Error(),
	}})
}
