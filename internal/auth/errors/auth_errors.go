package autherrors

import (
	"net/http"

	"hr-hub/internal/shared/apperror"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password and disabled accounts alike.
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrUserNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"User no longer exists",
		http.StatusUnauthorized,
	)
)
