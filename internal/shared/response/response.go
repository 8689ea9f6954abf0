package response

import (
	"net/http"
	"reflect"

	"hr-hub/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(total int64, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		// ceil(total / limit)
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// SuccessEnvelope always carries data, so a nil payload renders as {"data":null}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

type PageEnvelope struct {
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// Success writes {data}. Status 0 means 200.
func Success(c *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, SuccessEnvelope{Data: data})
}

func Created(c *gin.Context, data any) {
	Success(c, http.StatusCreated, data)
}

// Paginated writes {data, pagination}; a nil slice is rendered as [].
func Paginated(c *gin.Context, data any, pagination Pagination) {
	c.JSON(http.StatusOK, PageEnvelope{Data: nonNilSlice(data), Pagination: pagination})
}

func Error(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, ErrorEnvelope{
		Error: ErrorBody{
			Code:    code,
			Message: apperror.Localize(code, message, c.GetHeader("Accept-Language")),
			Details: details,
		},
	})
}

// Fail maps err through the error taxonomy and aborts the chain.
func Fail(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}

func nonNilSlice(data any) any {
	if data == nil {
		return []any{}
	}
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return data
}
