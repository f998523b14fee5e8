package employeeerrors

import (
	"net/http"

	"go-estateflow/internal/shared/apperror"
)

var (
	ErrNotHRVerified = apperror.New(
		apperror.CodeInvalidState,
		"Employee profile must be HR verified before admin approval",
		http.StatusConflict,
	)

	ErrAlreadyApproved = apperror.New(
		apperror.CodeInvalidState,
		"Employee profile is already admin approved",
		http.StatusConflict,
	)

	ErrNoActor = apperror.New(
		apperror.CodeUnauthorized,
		"An authenticated user is required",
		http.StatusUnauthorized,
	)
)
