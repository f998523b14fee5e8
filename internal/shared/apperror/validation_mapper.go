package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func formatFieldName(s string) string {
	// recipient_phone -> Recipient Phone
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError converts request binding errors into a single
// INVALID_INPUT error that lists every failing field.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		details := make([]FieldError, 0, len(errs))
		for _, e := range errs {
			humanReadableField := formatFieldName(e.Field())

			var msg string
			switch e.Tag() {
			case "required":
				msg = RequiredField(humanReadableField).Message
			default:
				msg = InvalidField(humanReadableField).Message
			}
			details = append(details, FieldError{Field: e.Field(), Message: msg})
		}

		return New(CodeInvalidInput, details[0].Message, http.StatusBadRequest).WithDetails(details)
	}

	return Wrap(err, CodeInvalidInput, "Invalid input", http.StatusBadRequest)
}
