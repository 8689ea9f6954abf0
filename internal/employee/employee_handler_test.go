package employee_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hr-hub/internal/employee"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	CreateFn  func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	ListFn    func(ctx context.Context, q employee.ListEmployeesQuery) ([]employee.EmployeeResponse, int64, error)
	GetByIDFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	UpdateFn  func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) List(ctx context.Context, q employee.ListEmployeesQuery) ([]employee.EmployeeResponse, int64, error) {
	return f.ListFn(ctx, q)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

var (
	hrAdmin = session.Principal{UserID: "u-hr", Role: session.RoleHRAdmin, CompanyID: "kr"}
	staffer = session.Principal{UserID: "u-emp", Role: session.RoleEmployee, CompanyID: "kr"}
)

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	c.Request = r
	return c, w
}

func TestEmployeeHandler_Create(t *testing.T) {
	apperror.Init()

	t.Run("reports every invalid field", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/api/v1/employees", `{"email":"not-an-email","hire_date":"05/01/2026","status":"RETIRED"}`)

		employee.NewHandler(&fakeEmployeeService{}).Create(c, hrAdmin)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		for _, field := range []string{"full_name", "email", "hire_date", "status"} {
			assert.Contains(t, body, `"field":"`+field+`"`)
		}
	})

	t.Run("created with defaults", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, employee.StatusActive, req.Status)
				assert.Equal(t, "minji@hub.kr", req.Email)
				return employee.EmployeeResponse{ID: uuid.NewString(), Email: req.Email}, nil
			},
		}
		c, w := newContext(http.MethodPost, "/api/v1/employees", `{"full_name":"Kim Minji","email":"Minji@Hub.kr","hire_date":"2026-01-05"}`)

		employee.NewHandler(svc).Create(c, hrAdmin)

		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestEmployeeHandler_ListRedactsSalaryForEmployees(t *testing.T) {
	salary := decimal.NewFromInt(5000)
	svc := &fakeEmployeeService{
		ListFn: func(ctx context.Context, q employee.ListEmployeesQuery) ([]employee.EmployeeResponse, int64, error) {
			assert.Equal(t, 100, q.Limit)
			return []employee.EmployeeResponse{{ID: "e-1", BaseSalary: &salary}}, 1, nil
		},
	}

	c, w := newContext(http.MethodGet, "/api/v1/employees?limit=500", "")
	employee.NewHandler(svc).List(c, staffer)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "base_salary")

	c, w = newContext(http.MethodGet, "/api/v1/employees?limit=500", "")
	employee.NewHandler(svc).List(c, hrAdmin)

	assert.Contains(t, w.Body.String(), `"base_salary":"5000"`)
}

func TestEmployeeHandler_GetByIDInvalidUUID(t *testing.T) {
	c, w := newContext(http.MethodGet, "/api/v1/employees/abc", "")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	employee.NewHandler(&fakeEmployeeService{}).GetByID(c, hrAdmin)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"id"`)
}
