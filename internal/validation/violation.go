package validation

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-estateflow/internal/shared/apperror"
)

// Violation is one failed rule. Rule is a stable identifier such as
// "user.credential.required"; Field is the json path it concerns.
type Violation struct {
	Rule    string `json:"rule"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Violations keeps evaluation order; it is never truncated to the first entry.
type Violations []Violation

func (v *Violations) Add(rule, field, message string) {
	*v = append(*v, Violation{Rule: rule, Field: field, Message: message})
}

func (v Violations) Empty() bool {
	return len(v) == 0
}

func (v Violations) Rules() []string {
	rules := make([]string, len(v))
	for i, violation := range v {
		rules[i] = violation.Rule
	}
	return rules
}

func (v Violations) Has(rule string) bool {
	for _, violation := range v {
		if violation.Rule == rule {
			return true
		}
	}
	return false
}

func (v Violations) Error() string {
	msgs := make([]string, len(v))
	for i, violation := range v {
		msgs[i] = violation.Message
	}
	return strings.Join(msgs, "; ")
}

// StructuralError reports missing or malformed fields.
func (v Violations) StructuralError() *apperror.AppError {
	return &apperror.AppError{
		Code:       apperror.CodeValidationFailed,
		Message:    fmt.Sprintf("%d field(s) are missing or malformed", len(v)),
		HTTPStatus: http.StatusBadRequest,
		Details:    v,
		Err:        v,
	}
}

// BusinessError reports failed cross-field or cross-entity invariants.
func (v Violations) BusinessError() *apperror.AppError {
	return &apperror.AppError{
		Code:       apperror.CodeBusinessRule,
		Message:    fmt.Sprintf("%d business rule(s) violated", len(v)),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    v,
		Err:        v,
	}
}

// ViolationsOf extracts the violation list carried by a validation error.
func ViolationsOf(err error) Violations {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return nil
	}
	v, _ := appErr.Details.(Violations)
	return v
}
