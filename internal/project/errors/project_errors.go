package projecterrors

import (
	"net/http"

	"go-estateflow/internal/shared/apperror"
)

var ErrDeletionDisabled = apperror.New(
	apperror.CodeForbidden,
	"Company policy does not allow deleting projects",
	http.StatusForbidden,
)
