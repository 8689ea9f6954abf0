package performanceerrors

import (
	"net/http"

	"hr-hub/internal/shared/apperror"
)

var (
	ErrCycleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Performance cycle not found",
		http.StatusNotFound,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeBadRequest,
		"starts_on must be before ends_on",
		http.StatusBadRequest,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeBadRequest,
		"Performance cycles advance one step at a time: DRAFT, ACTIVE, EVAL_OPEN, CALIBRATION, CLOSED",
		http.StatusBadRequest,
	)
)
