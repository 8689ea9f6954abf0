package complianceerrors

import (
	"net/http"

	"hr-hub/internal/shared/apperror"
)

var (
	ErrUnknownCountry = apperror.New(
		apperror.CodeNotFound,
		"No labor rules for this country",
		http.StatusNotFound,
	)
	ErrConsentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Consent not found",
		http.StatusNotFound,
	)
	ErrConsentAlreadyRevoked = apperror.New(
		apperror.CodeConflict,
		"Consent is already revoked",
		http.StatusConflict,
	)
	ErrConsentAlreadyGranted = apperror.New(
		apperror.CodeConflict,
		"An active consent for this purpose already exists",
		http.StatusConflict,
	)
)
