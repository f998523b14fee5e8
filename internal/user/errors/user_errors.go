package usererrors

import (
	"net/http"

	"go-estateflow/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)

	ErrAccountSuspended = apperror.New(
		apperror.CodeForbidden,
		"User account is suspended",
		http.StatusForbidden,
	)

	ErrNotSelf = apperror.New(
		apperror.CodeForbidden,
		"Only the account owner can change its password",
		http.StatusForbidden,
	)

	ErrDeletionDisabled = apperror.New(
		apperror.CodeForbidden,
		"Company policy does not allow deleting users",
		http.StatusForbidden,
	)
)
