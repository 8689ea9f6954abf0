package companyerrors

import (
	"net/http"

	"hr-hub/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrNothingToUpdate = apperror.New(
		apperror.CodeBadRequest,
		"At least one field must be provided",
		http.StatusBadRequest,
	)
)
