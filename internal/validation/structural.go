package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(apperror.JSONTagName)

		registerString(v, "emailshape", IsEmailShaped)
		registerString(v, "pan", IsPAN)
		registerString(v, "gstin", IsGSTIN)
		registerString(v, "cin", IsCIN)
		registerString(v, "ifsc", IsIFSC)
		registerString(v, "digits12", IsTwelveDigits)

		_ = v.RegisterValidationCtx("pastdate", func(ctx context.Context, fl validator.FieldLevel) bool {
			t, ok := fl.Field().Interface().(time.Time)
			return ok && t.Before(nowFrom(ctx))
		})

		instance = v
	})
	return instance
}

func registerString(v *validator.Validate, tag string, fn func(string) bool) {
	_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	})
}

type nowKey struct{}

func nowFrom(ctx context.Context) time.Time {
	if now, ok := ctx.Value(nowKey{}).(time.Time); ok {
		return now
	}
	return time.Now()
}

// Struct runs every tag rule on s against the wall clock.
func Struct(s any) Violations {
	return StructAt(s, time.Now())
}

// StructAt runs every tag rule on s and returns all failures. Time-relative
// tags such as pastdate compare against now. It needs no store access and
// never short-circuits.
func StructAt(s any, now time.Time) Violations {
	ctx := context.WithValue(context.Background(), nowKey{}, now)
	err := engine().StructCtx(ctx, s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return Violations{{Rule: "structural.invalid", Message: err.Error()}}
	}

	out := make(Violations, 0, len(errs))
	for _, fe := range errs {
		field := fieldPath(fe.Namespace())
		out.Add("structural."+fe.Tag(), field, message(field, fe))
	}
	return out
}

// fieldPath drops the root type name: "User.bankDetails.ifscCode" -> "bankDetails.ifscCode".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "emailshape":
		return "Invalid email format"
	case "pan":
		return "Invalid PAN format"
	case "pastdate":
		return fmt.Sprintf("%s must be in the past", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Lookups is the read capability business validators need from the store.
type Lookups interface {
	Exists(ctx context.Context, kind store.Kind, id uuid.UUID) (bool, error)
}

// RequireRef records rule when id is set but does not resolve to a live
// record of kind. A lookup failure is returned as-is for the caller to
// classify as a dependency error.
func RequireRef(
	ctx context.Context,
	lookups Lookups,
	out *Violations,
	kind store.Kind,
	id *uuid.UUID,
	rule, field string,
) error {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	ok, err := lookups.Exists(ctx, kind, *id)
	if err != nil {
		return err
	}
	if !ok {
		out.Add(rule, field, fmt.Sprintf("%s references an unknown %s", field, kind))
	}
	return nil
}
