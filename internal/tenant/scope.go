// Package tenant decides which company's records a caller may touch.
package tenant

import (
	"context"

	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/shared/contextutil"

	"github.com/google/uuid"
)

// PlatformRole sees every tenant.
const PlatformRole = "PLATFORM_SUPER_ADMIN"

type Scope struct {
	CompanyID     string
	Authenticated bool
	Platform      bool
}

// FromContext reads the caller set by the auth middleware. In-process
// callers without an authenticated identity are not restricted.
func FromContext(ctx context.Context) Scope {
	role := contextutil.GetRole(ctx)
	return Scope{
		CompanyID:     contextutil.GetCompanyID(ctx),
		Authenticated: contextutil.GetUserID(ctx) != "",
		Platform:      role == PlatformRole,
	}
}

// Restricted is true for tenant users; company policies bind only them.
func (s Scope) Restricted() bool {
	return s.Authenticated && !s.Platform
}

func (s Scope) Allows(companyID *uuid.UUID) bool {
	if !s.Restricted() {
		return true
	}
	if companyID == nil || *companyID == uuid.Nil {
		return false
	}
	return s.CompanyID == companyID.String()
}

// Check hides records of other tenants as not found.
func Check(ctx context.Context, companyID *uuid.UUID) error {
	if FromContext(ctx).Allows(companyID) {
		return nil
	}
	return apperror.ErrNotFound
}

// Authorize guards writes into companyID; callers outside the tenant are
// refused outright.
func Authorize(ctx context.Context, companyID *uuid.UUID) error {
	if FromContext(ctx).Allows(companyID) {
		return nil
	}
	return apperror.ErrForbidden
}
