package company

import (
	"context"
	"errors"

	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/store"

	"github.com/google/uuid"
)

// LoadPolicies reads the policy toggles of a live company.
func LoadPolicies(ctx context.Context, st store.Store, id uuid.UUID) (Policies, error) {
	var c Company
	if err := st.Load(ctx, store.KindCompany, id, &c); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Policies{}, apperror.ErrNotFound
		}
		return Policies{}, apperror.Dependency("company policy lookup", err)
	}
	if c.IsDeleted {
		return Policies{}, apperror.ErrNotFound
	}
	return c.Policies, nil
}

func (p Policies) ProjectDeletionAllowed() bool {
	return p.AllowProjectDeletion != nil && *p.AllowProjectDeletion
}

func (p Policies) UserDeletionAllowed() bool {
	return p.AllowUserDeletion != nil && *p.AllowUserDeletion
}
