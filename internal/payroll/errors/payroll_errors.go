package payrollerrors

import (
	"net/http"

	"hr-hub/internal/shared/apperror"
)

var (
	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll run not found",
		http.StatusNotFound,
	)
	ErrRunAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A payroll run for this period already exists",
		http.StatusConflict,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeBadRequest,
		"Payroll run is not in a state that allows this action",
		http.StatusBadRequest,
	)
	ErrNoEmployees = apperror.New(
		apperror.CodeBadRequest,
		"There are no active employees to pay",
		http.StatusBadRequest,
	)
	ErrImportNotImplemented = apperror.New(
		apperror.CodeServiceUnavailable,
		"KPMG payroll import is not implemented",
		http.StatusServiceUnavailable,
	)
)
