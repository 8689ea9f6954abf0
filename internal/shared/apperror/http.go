package apperror

import "net/http"

// HTTPError is the wire form of an error before localisation.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP maps any error to its HTTP status and stable code.
func ToHTTP(err error) HTTPError {
	if err == nil {
		return HTTPError{Status: http.StatusOK}
	}
	appErr, ok := As(FromStorage(err))
	if !ok {
		appErr = ErrInternal
	}
	return HTTPError{
		Status:  appErr.HTTPStatus,
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}
}
