package fileserrors

import (
	"net/http"

	"hr-hub/internal/shared/apperror"
)

var (
	ErrStorageUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"File storage is not configured",
		http.StatusServiceUnavailable,
	)
	ErrForeignKey = apperror.New(
		apperror.CodeForbidden,
		"The file belongs to another company",
		http.StatusForbidden,
	)
	ErrInvalidKey = apperror.New(
		apperror.CodeBadRequest,
		"Invalid file key",
		http.StatusBadRequest,
	)
	ErrInvalidFilename = apperror.New(
		apperror.CodeBadRequest,
		"Filename has no usable characters",
		http.StatusBadRequest,
	)
)
