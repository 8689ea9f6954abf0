package attendanceerrors

import (
	"net/http"

	"hr-hub/internal/shared/apperror"
)

var (
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"Already clocked in today",
		http.StatusConflict,
	)
	ErrNotClockedIn = apperror.New(
		apperror.CodeBadRequest,
		"No clock-in found for today",
		http.StatusBadRequest,
	)
	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeConflict,
		"Already clocked out today",
		http.StatusConflict,
	)
	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeForbidden,
		"This account is not linked to an employee",
		http.StatusForbidden,
	)
	ErrInvalidRange = apperror.New(
		apperror.CodeBadRequest,
		"from must not be after to",
		http.StatusBadRequest,
	)
)
