package onboardingerrors

import (
	"net/http"

	"hr-hub/internal/shared/apperror"
)

var (
	ErrChecklistNotFound = apperror.New(
		apperror.CodeNotFound,
		"Checklist not found",
		http.StatusNotFound,
	)
	ErrChecklistExists = apperror.New(
		apperror.CodeConflict,
		"Employee already has a checklist of this kind",
		http.StatusConflict,
	)
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Checklist task not found",
		http.StatusNotFound,
	)
	ErrTaskNotPending = apperror.New(
		apperror.CodeBadRequest,
		"Only pending tasks can be completed or skipped",
		http.StatusBadRequest,
	)
)
