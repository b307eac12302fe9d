package apierr

import (
	"errors"
	"net/http"

	"github.com/erppro/identity/internal/api/response"
	"github.com/erppro/identity/internal/model"
)

// httpError combines an HTTP status code with a caller-facing message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError maps an error to an HTTP status and writes the failure envelope
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	response.Failure(w, he.status, he.message)
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Expected, recoverable conditions from the error taxonomy
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, model.ErrInvalidCredentials.Error()}
	case errors.Is(err, model.ErrEmailExists):
		return &httpError{http.StatusConflict, model.ErrEmailExists.Error()}
	case errors.Is(err, model.ErrAccountNotFound):
		return &httpError{http.StatusNotFound, model.ErrAccountNotFound.Error()}

	case errors.Is(err, model.ErrPasswordTooShort),
		errors.Is(err, model.ErrPasswordNoUppercase),
		errors.Is(err, model.ErrPasswordNoDigit),
		errors.Is(err, model.ErrPasswordNoSpecial),
		errors.Is(err, model.ErrPasswordMismatch),
		errors.Is(err, model.ErrInvalidUsername),
		errors.Is(err, model.ErrInvalidDisplayName),
		errors.Is(err, model.ErrInvalidEmail),
		errors.Is(err, model.ErrInvalidPhone),
		errors.Is(err, model.ErrUnderage),
		errors.Is(err, model.ErrShortAddress):
		return &httpError{http.StatusBadRequest, err.Error()}

	// Anything else is an unexpected fault (e.g., a storage write failure),
	// distinct from the expected taxonomy
	default:
		return &httpError{http.StatusInternalServerError, "unexpected error"}
	}
}

// NewInvalidRequestError creates a 400 error with the given message
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates a 401 error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, "authentication required"}
}
