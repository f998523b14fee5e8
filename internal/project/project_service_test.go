package project_test

import (
	"context"
	"testing"
	"time"

	"go-estateflow/internal/company"
	"go-estateflow/internal/credential"
	"go-estateflow/internal/lifecycle"
	"go-estateflow/internal/project"
	projecterrors "go-estateflow/internal/project/errors"
	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/shared/contextutil"
	"go-estateflow/internal/store"
	"go-estateflow/internal/user"
	"go-estateflow/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var now = time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)

type fixture struct {
	st        store.Store
	deps      lifecycle.Deps
	svc       project.Service
	companyID uuid.UUID
	creatorID uuid.UUID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()
	deps := lifecycle.Deps{Clock: func() time.Time { return now }}

	comp, err := company.NewService(st, deps).Create(ctx, company.CreateCompanyRequest{
		CompanyName:   "Acme Estates",
		LegalName:     "Acme Estates Pvt Ltd",
		Emails:        []company.CompanyEmail{{Type: company.EmailPrimary, Email: "office@acme.in"}},
		CreatedByRole: company.CreatedBySelfRegistered,
	})
	require.NoError(t, err)
	companyID := uuid.MustParse(comp.ID)

	creator, err := user.NewService(st, credential.NewBcryptManager(bcrypt.MinCost, 1), deps).Create(ctx, user.CreateUserRequest{
		FirstName: "Priya",
		Email:     "pm@acme.in",
		GoogleID:  "google-pm",
		Role:      user.RoleProjectManager,
		CompanyID: &companyID,
	})
	require.NoError(t, err)

	return fixture{
		st:        st,
		deps:      deps,
		svc:       project.NewService(st, deps),
		companyID: companyID,
		creatorID: uuid.MustParse(creator.ID),
	}
}

func (f fixture) request(code string) project.CreateProjectRequest {
	creator := f.creatorID
	return project.CreateProjectRequest{
		CompanyID:   f.companyID,
		Name:        "Skyline Towers",
		Code:        code,
		ProjectType: project.TypeResidential,
		CreatedBy:   &creator,
		Structure:   project.Structure{TotalTowers: 2, TotalFloors: 30, TotalUnits: 480},
	}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to planning", func(t *testing.T) {
		f := newFixture(t)

		resp, err := f.svc.Create(ctx, f.request(" SKY-01 "))

		require.NoError(t, err)
		assert.Equal(t, project.StatusPlanning, resp.Status)
		assert.Equal(t, "SKY-01", resp.Code)
	})

	t.Run("creator taken from caller", func(t *testing.T) {
		f := newFixture(t)
		req := f.request("SKY-02")
		req.CreatedBy = nil
		callerCtx := contextutil.WithCompanyID(contextutil.WithUserID(ctx, f.creatorID.String()), f.companyID.String())

		resp, err := f.svc.Create(callerCtx, req)

		require.NoError(t, err)
		assert.Equal(t, f.creatorID, *resp.CreatedBy)
	})

	t.Run("structural failures", func(t *testing.T) {
		f := newFixture(t)
		req := f.request("")
		req.ProjectType = "CASTLE"
		req.CreatedBy = nil
		req.EstimatedBudget = -5

		_, err := f.svc.Create(ctx, req)

		assert.ElementsMatch(t, []string{
			"structural.required",
			"structural.oneof",
			"structural.required",
			"structural.min",
		}, validation.ViolationsOf(err).Rules())
	})

	t.Run("completion requires start", func(t *testing.T) {
		f := newFixture(t)
		req := f.request("SKY-03")
		req.ActualCompletionDate = date(2027, 1, 1)

		_, err := f.svc.Create(ctx, req)

		assert.Equal(t, apperror.CodeBusinessRule, apperror.CodeOf(err))
		assert.Equal(t, []string{project.RuleCompletionRequiresStart}, validation.ViolationsOf(err).Rules())
	})

	t.Run("expected completion ordering", func(t *testing.T) {
		f := newFixture(t)
		req := f.request("SKY-04")
		req.StartDate = date(2026, 6, 1)
		req.ExpectedCompletionDate = date(2026, 5, 1)

		_, err := f.svc.Create(ctx, req)
		assert.Equal(t, []string{project.RuleExpectedCompletionOrder}, validation.ViolationsOf(err).Rules())

		req.ExpectedCompletionDate = date(2028, 5, 1)
		_, err = f.svc.Create(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("code is unique", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Create(ctx, f.request("SKY-05"))
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, f.request("SKY-05"))

		assert.Equal(t, map[string]string{"field": "code"}, apperror.ToHTTP(err).Details)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.Create(ctx, f.request("SKY-01"))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	t.Run("clearing start invalidates completion", func(t *testing.T) {
		start := date(2026, 1, 1)
		done := date(2026, 12, 1)
		_, err := f.svc.Update(ctx, id, project.UpdateProjectRequest{StartDate: start, ActualCompletionDate: done},
			lifecycle.Fields("startDate", "actualCompletionDate"))
		require.NoError(t, err)

		_, err = f.svc.Update(ctx, id, project.UpdateProjectRequest{}, lifecycle.Fields("startDate"))

		assert.Equal(t, []string{project.RuleCompletionRequiresStart}, validation.ViolationsOf(err).Rules())
	})

	t.Run("untouched fields survive", func(t *testing.T) {
		status := project.StatusActive
		resp, err := f.svc.Update(ctx, id, project.UpdateProjectRequest{Status: &status}, lifecycle.Fields("status"))

		require.NoError(t, err)
		assert.Equal(t, project.StatusActive, resp.Status)
		assert.Equal(t, "Skyline Towers", resp.Name)
		assert.Equal(t, 480, resp.Structure.TotalUnits)
		assert.NotNil(t, resp.StartDate)
	})
}

func TestService_DeleteFollowsCompanyPolicy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.Create(ctx, f.request("SKY-01"))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	tenantCtx := contextutil.WithCompanyID(contextutil.WithUserID(ctx, f.creatorID.String()), f.companyID.String())
	assert.ErrorIs(t, f.svc.Delete(tenantCtx, id), projecterrors.ErrDeletionDisabled)

	allow := true
	_, err = company.NewService(f.st, f.deps).Update(ctx, f.companyID, company.UpdateCompanyRequest{
		Policies: &company.Policies{AllowProjectDeletion: &allow},
	}, lifecycle.Fields("policies"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(tenantCtx, id))
	_, err = f.svc.GetByID(ctx, id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestService_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.Create(ctx, f.request("SKY-01"))
	require.NoError(t, err)

	outsider := contextutil.WithCompanyID(contextutil.WithUserID(ctx, uuid.NewString()), uuid.NewString())

	_, err = f.svc.GetByID(outsider, uuid.MustParse(created.ID))
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.Create(outsider, f.request("SKY-02"))
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}
