package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, 0, response.NewPagination(0, 1, 20).TotalPages)
	assert.Equal(t, 3, response.NewPagination(45, 1, 20).TotalPages)
	assert.Equal(t, 2, response.NewPagination(40, 1, 20).TotalPages)
	assert.Equal(t, 1, response.NewPagination(1, 1, 20).TotalPages)
}

func TestPaginated_PastLastPageRendersEmptyArray(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	var rows []string
	response.Paginated(c, rows, response.NewPagination(45, 4, 20))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"pagination":{"page":4,"limit":20,"total":45,"totalPages":3}}`, w.Body.String())
}

func TestSuccess_DefaultsTo200(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	response.Success(c, 0, gin.H{"id": "1"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"id":"1"}}`, w.Body.String())
}

func TestSuccess_NilDataKeepsTheKey(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	response.Success(c, http.StatusOK, nil)

	assert.JSONEq(t, `{"data":null}`, w.Body.String())
}

func TestFail_WritesErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	issues := []apperror.FieldIssue{{Field: "page", Rule: "min", Param: "1", Message: "Page must be at least 1"}}
	response.Fail(c, apperror.Validation(issues))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, c.IsAborted())

	var env struct {
		Error struct {
			Code    string                `json:"code"`
			Details []apperror.FieldIssue `json:"details"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, apperror.CodeBadRequest, env.Error.Code)
	assert.Equal(t, issues, env.Error.Details)
}

func TestError_LocalizesGenericMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Accept-Language", "ru-RU")

	response.Fail(c, apperror.ErrForbidden)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Недостаточно прав")
}
