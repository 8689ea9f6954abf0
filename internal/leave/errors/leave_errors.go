package leaveerrors

import (
	"net/http"

	"hr-hub/internal/shared/apperror"
)

var (
	ErrInvalidDateRange = apperror.New(
		apperror.CodeBadRequest,
		"start_date must be on or before end_date",
		http.StatusBadRequest,
	)
	ErrSpansYears = apperror.New(
		apperror.CodeBadRequest,
		"A leave request must stay within one calendar year",
		http.StatusBadRequest,
	)
	ErrNoWorkingDays = apperror.New(
		apperror.CodeBadRequest,
		"The requested period contains no working days",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"Leave already exists in an overlapping period",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeBadRequest,
		"No leave balance exists for this employee, type and year",
		http.StatusBadRequest,
	)
	ErrBalanceAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A balance for this employee, type and year already exists",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeBadRequest,
		"Insufficient leave balance",
		http.StatusBadRequest,
	)
	ErrNegativeEntitlement = apperror.New(
		apperror.CodeBadRequest,
		"entitled must not be negative",
		http.StatusBadRequest,
	)
	ErrNotPending = apperror.New(
		apperror.CodeBadRequest,
		"Only PENDING requests can be changed",
		http.StatusBadRequest,
	)
	ErrSelfApproval = apperror.New(
		apperror.CodeForbidden,
		"You cannot decide on your own leave request",
		http.StatusForbidden,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"Only the requester or HR can cancel this request",
		http.StatusForbidden,
	)
)
