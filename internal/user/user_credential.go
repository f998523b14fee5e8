package user

import (
	"context"
	"time"

	"go-estateflow/internal/credential"
	"go-estateflow/internal/lifecycle"
	"go-estateflow/internal/validation"
)

// credentialDeriver swaps a changed raw password for its hash. The raw
// value is always cleared so it cannot reach the store.
type credentialDeriver struct {
	creds credential.Manager
}

func (d credentialDeriver) Derive(ctx context.Context, u *User, changed lifecycle.FieldSet, now time.Time) error {
	raw := u.Password
	u.Password = ""
	if raw == "" || !changed.Has("password") {
		return nil
	}

	hashed, err := d.creds.Derive(ctx, raw)
	if err != nil {
		if credential.IsInputError(err) {
			var v validation.Violations
			v.Add("structural.password", "password", "password cannot be hashed")
			return v.StructuralError()
		}
		return err
	}

	u.PasswordHash = hashed
	changedAt := now
	u.PasswordChangedAt = &changedAt
	return nil
}
