package user_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-estateflow/internal/company"
	"go-estateflow/internal/credential"
	"go-estateflow/internal/lifecycle"
	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/shared/contextutil"
	"go-estateflow/internal/store"
	"go-estateflow/internal/user"
	usererrors "go-estateflow/internal/user/errors"
	"go-estateflow/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var now = time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)

type fixture struct {
	st        store.Store
	svc       user.Service
	companyID uuid.UUID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	st := store.NewMemoryStore()
	deps := lifecycle.Deps{Clock: func() time.Time { return now }}

	comp, err := company.NewService(st, deps).Create(context.Background(), company.CreateCompanyRequest{
		CompanyName:   "Acme Estates",
		LegalName:     "Acme Estates Pvt Ltd",
		Emails:        []company.CompanyEmail{{Type: company.EmailPrimary, Email: "office@acme.in"}},
		CreatedByRole: company.CreatedBySelfRegistered,
	})
	require.NoError(t, err)

	return fixture{
		st:        st,
		svc:       user.NewService(st, credential.NewBcryptManager(bcrypt.MinCost, 2), deps),
		companyID: uuid.MustParse(comp.ID),
	}
}

func (f fixture) employee(email string) user.CreateUserRequest {
	companyID := f.companyID
	return user.CreateUserRequest{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     email,
		Password:  "secret1",
		Role:      user.RoleEmployee,
		CompanyID: &companyID,
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults and stored hash", func(t *testing.T) {
		f := newFixture(t)

		resp, err := f.svc.Create(ctx, f.employee("Asha@Acme.in"))

		require.NoError(t, err)
		assert.Equal(t, "asha@acme.in", resp.Email)
		assert.Equal(t, user.StatusInvited, resp.Status)
		require.NotNil(t, resp.PasswordChangedAt)
		assert.Equal(t, now, *resp.PasswordChangedAt)

		var stored user.User
		require.NoError(t, f.st.Load(ctx, store.KindUser, uuid.MustParse(resp.ID), &stored))
		assert.Empty(t, stored.Password)
		assert.NotEqual(t, "secret1", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
	})

	t.Run("company admin may register without company", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, user.CreateUserRequest{
			FirstName: "Ravi",
			Email:     "ravi@acme.in",
			GoogleID:  "google-ravi",
			Role:      user.RoleCompanyAdmin,
		})

		assert.NoError(t, err)
	})

	t.Run("short password is structural", func(t *testing.T) {
		f := newFixture(t)
		req := f.employee("a@acme.in")
		req.Password = "abc"

		_, err := f.svc.Create(ctx, req)

		assert.Equal(t, apperror.CodeValidationFailed, apperror.CodeOf(err))
		assert.Equal(t, []string{"structural.min"}, validation.ViolationsOf(err).Rules())
	})

	t.Run("business rules are reported together", func(t *testing.T) {
		f := newFixture(t)
		unknown := uuid.New()

		_, err := f.svc.Create(ctx, user.CreateUserRequest{
			FirstName: "Asha",
			Email:     "a@acme.in",
			Role:      user.RolePlatformSuperAdmin,
			CompanyID: &unknown,
		})

		assert.Equal(t, apperror.CodeBusinessRule, apperror.CodeOf(err))
		assert.Equal(t, []string{
			user.RuleSuperAdminCompany,
			user.RuleCredentialRequired,
			user.RuleCompanyExists,
		}, validation.ViolationsOf(err).Rules())
	})

	t.Run("duplicate email ignores case", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Create(ctx, f.employee("dup@acme.in"))
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, f.employee("DUP@acme.in"))

		assert.Equal(t, apperror.CodeConflict, apperror.CodeOf(err))
		assert.Equal(t, map[string]string{"field": "email"}, apperror.ToHTTP(err).Details)
	})

	t.Run("concurrent duplicates yield one winner", func(t *testing.T) {
		f := newFixture(t)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = f.svc.Create(ctx, f.employee("race@acme.in"))
			}(i)
		}
		wg.Wait()

		var ok, conflicts int
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case apperror.CodeOf(err) == apperror.CodeConflict:
				conflicts++
				assert.Equal(t, map[string]string{"field": "email"}, apperror.ToHTTP(err).Details)
			}
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, 1, conflicts)
	})

	t.Run("caller outside the tenant is refused", func(t *testing.T) {
		f := newFixture(t)
		callerCtx := contextutil.WithCompanyID(contextutil.WithUserID(ctx, uuid.NewString()), uuid.NewString())

		_, err := f.svc.Create(callerCtx, f.employee("x@acme.in"))

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("unrelated change keeps the credential", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.Create(ctx, f.employee("a@acme.in"))
		require.NoError(t, err)
		id := uuid.MustParse(created.ID)

		name := "Asha R"
		resp, err := f.svc.Update(ctx, id, user.UpdateUserRequest{FirstName: &name}, lifecycle.Fields("firstName"))
		require.NoError(t, err)
		assert.Equal(t, "Asha R", resp.FirstName)
		assert.Equal(t, "Asha R Rao", resp.FullName)

		_, err = f.svc.Authenticate(ctx, "a@acme.in", "secret1")
		assert.NoError(t, err)
	})

	t.Run("password change rehashes", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.Create(ctx, f.employee("a@acme.in"))
		require.NoError(t, err)
		id := uuid.MustParse(created.ID)

		pw := "newsecret"
		_, err = f.svc.Update(ctx, id, user.UpdateUserRequest{Password: &pw}, lifecycle.Fields("password"))
		require.NoError(t, err)

		_, err = f.svc.Authenticate(ctx, "a@acme.in", "secret1")
		assert.ErrorIs(t, err, usererrors.ErrInvalidCredentials)
		_, err = f.svc.Authenticate(ctx, "a@acme.in", "newsecret")
		assert.NoError(t, err)
	})

	t.Run("clearing the only credential is rejected", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.Create(ctx, f.employee("a@acme.in"))
		require.NoError(t, err)

		_, err = f.svc.Update(ctx, uuid.MustParse(created.ID), user.UpdateUserRequest{}, lifecycle.Fields("password"))

		assert.Equal(t, []string{user.RuleCredentialRequired}, validation.ViolationsOf(err).Rules())
		_, err = f.svc.Authenticate(ctx, "a@acme.in", "secret1")
		assert.NoError(t, err)
	})

	t.Run("clearing the password keeps a google login", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.Create(ctx, f.employee("a@acme.in"))
		require.NoError(t, err)

		google := "google-oauth2|123"
		resp, err := f.svc.Update(ctx, uuid.MustParse(created.ID), user.UpdateUserRequest{GoogleID: &google}, lifecycle.Fields("password", "googleId"))
		require.NoError(t, err)
		assert.True(t, resp.HasGoogleLogin)
		assert.Nil(t, resp.PasswordChangedAt)

		_, err = f.svc.Authenticate(ctx, "a@acme.in", "secret1")
		assert.ErrorIs(t, err, usererrors.ErrInvalidCredentials)
	})

	t.Run("clearing the company of an employee", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.Create(ctx, f.employee("a@acme.in"))
		require.NoError(t, err)

		_, err = f.svc.Update(ctx, uuid.MustParse(created.ID), user.UpdateUserRequest{}, lifecycle.Fields("companyId"))

		assert.Equal(t, []string{user.RuleCompanyRequired}, validation.ViolationsOf(err).Rules())
	})

	t.Run("other tenant sees not found", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.Create(ctx, f.employee("a@acme.in"))
		require.NoError(t, err)
		callerCtx := contextutil.WithCompanyID(contextutil.WithUserID(ctx, uuid.NewString()), uuid.NewString())

		name := "Mallory"
		_, err = f.svc.Update(callerCtx, uuid.MustParse(created.ID), user.UpdateUserRequest{FirstName: &name}, lifecycle.Fields("firstName"))

		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.Create(ctx, user.CreateUserRequest{
		FirstName: "Ravi",
		Email:     "ravi@acme.in",
		Password:  "secret1",
		Role:      user.RoleCompanyAdmin,
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	t.Run("owner reads own account", func(t *testing.T) {
		selfCtx := contextutil.WithUserID(ctx, created.ID)

		resp, err := f.svc.GetByID(selfCtx, id)

		require.NoError(t, err)
		assert.Equal(t, "ravi@acme.in", resp.Email)
	})

	t.Run("another tenant cannot", func(t *testing.T) {
		otherCtx := contextutil.WithCompanyID(contextutil.WithUserID(ctx, uuid.NewString()), f.companyID.String())

		_, err := f.svc.GetByID(otherCtx, id)

		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.Create(ctx, f.employee("gone@acme.in"))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	require.NoError(t, f.svc.Delete(ctx, id))

	_, err = f.svc.GetByID(ctx, id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.Authenticate(ctx, "gone@acme.in", "secret1")
	assert.ErrorIs(t, err, usererrors.ErrInvalidCredentials)

	_, err = f.svc.Create(ctx, f.employee("gone@acme.in"))
	assert.Equal(t, apperror.CodeConflict, apperror.CodeOf(err))
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.Create(ctx, f.employee("a@acme.in"))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)
	selfCtx := contextutil.WithUserID(ctx, created.ID)

	t.Run("wrong current password", func(t *testing.T) {
		err := f.svc.ChangePassword(selfCtx, id, user.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "another1"})
		assert.ErrorIs(t, err, usererrors.ErrWrongPassword)
	})

	t.Run("someone else", func(t *testing.T) {
		otherCtx := contextutil.WithUserID(ctx, uuid.NewString())
		err := f.svc.ChangePassword(otherCtx, id, user.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "another1"})
		assert.ErrorIs(t, err, usererrors.ErrNotSelf)
	})

	t.Run("success", func(t *testing.T) {
		err := f.svc.ChangePassword(selfCtx, id, user.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "another1"})
		require.NoError(t, err)

		_, err = f.svc.Authenticate(ctx, "a@acme.in", "another1")
		assert.NoError(t, err)
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.Create(ctx, f.employee("a@acme.in"))
	require.NoError(t, err)

	t.Run("stamps last login", func(t *testing.T) {
		resp, err := f.svc.Authenticate(ctx, " A@ACME.IN ", "secret1")

		require.NoError(t, err)
		assert.Equal(t, created.ID, resp.ID)
		require.NotNil(t, resp.LastLoginAt)
		assert.Equal(t, now, *resp.LastLoginAt)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.Authenticate(ctx, "nobody@acme.in", "secret1")
		assert.ErrorIs(t, err, usererrors.ErrInvalidCredentials)
	})

	t.Run("suspended account", func(t *testing.T) {
		suspended := user.StatusSuspended
		_, err := f.svc.Update(ctx, uuid.MustParse(created.ID), user.UpdateUserRequest{Status: &suspended}, lifecycle.Fields("status"))
		require.NoError(t, err)

		_, err = f.svc.Authenticate(ctx, "a@acme.in", "secret1")
		assert.ErrorIs(t, err, usererrors.ErrAccountSuspended)
	})
}

func TestService_DeleteFollowsCompanyPolicy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.Create(ctx, f.employee("a@acme.in"))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	adminCtx := contextutil.WithRole(
		contextutil.WithCompanyID(contextutil.WithUserID(ctx, uuid.NewString()), f.companyID.String()),
		string(user.RoleCompanyAdmin),
	)

	err = f.svc.Delete(adminCtx, id)
	assert.ErrorIs(t, err, usererrors.ErrDeletionDisabled)

	allow := true
	companies := company.NewService(f.st, lifecycle.Deps{Clock: func() time.Time { return now }})
	_, err = companies.Update(ctx, f.companyID, company.UpdateCompanyRequest{
		Policies: &company.Policies{AllowUserDeletion: &allow},
	}, lifecycle.Fields("policies"))
	require.NoError(t, err)

	assert.NoError(t, f.svc.Delete(adminCtx, id))
}
