package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

func RequiredField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s is required", field),
		http.StatusBadRequest,
	)
}

func InvalidField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s is invalid", field),
		http.StatusBadRequest,
	)
}

// Conflict reports a uniqueness collision on a single field.
func Conflict(field string, err error) *AppError {
	e := Wrap(err, CodeConflict, fmt.Sprintf("%s already exists", field), http.StatusConflict)
	if e == nil {
		e = New(CodeConflict, fmt.Sprintf("%s already exists", field), http.StatusConflict)
	}
	e.Details = map[string]string{"field": field}
	return e
}

// Dependency wraps an infrastructure failure (store, hashing primitive).
// Callers may retry these with backoff.
func Dependency(operation string, err error) *AppError {
	return Wrap(
		err,
		CodeDependencyFailure,
		fmt.Sprintf("%s failed, please retry", operation),
		http.StatusServiceUnavailable,
	)
}
