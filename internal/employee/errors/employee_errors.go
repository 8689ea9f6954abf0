package employeeerrors

import (
	"net/http"

	"hr-hub/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee number already exists in this company",
		http.StatusConflict,
	)
	ErrNegativeSalary = apperror.New(
		apperror.CodeBadRequest,
		"Base salary must not be negative",
		http.StatusBadRequest,
	).WithDetails([]apperror.FieldIssue{{Field: "base_salary", Rule: "min", Param: "0", Message: "Base Salary must be at least 0"}})
	ErrNothingToUpdate = apperror.New(
		apperror.CodeBadRequest,
		"At least one field must be provided",
		http.StatusBadRequest,
	)
)
