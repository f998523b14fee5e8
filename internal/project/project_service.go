package project

import (
	"context"

	"go-estateflow/internal/company"
	"go-estateflow/internal/lifecycle"
	projecterrors "go-estateflow/internal/project/errors"
	"go-estateflow/internal/shared/contextutil"
	"go-estateflow/internal/store"
	"go-estateflow/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=project_service.go -destination=mock/project_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (ProjectResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateProjectRequest, changed lifecycle.FieldSet) (ProjectResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	records *lifecycle.Controller[*Project]
	store   store.Store
	logger  *zap.Logger
}

func NewService(st store.Store, deps lifecycle.Deps) Service {
	l := zap.L().Named("project.service")
	if deps.Logger != nil {
		l = deps.Logger.Named("project.service")
	}

	records := lifecycle.NewController(
		store.KindProject,
		st,
		func() *Project { return &Project{} },
		Validator{},
		lifecycle.OptionsFrom[*Project](deps)...,
	)
	return &service{records: records, store: st, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create project requested",
		zap.String("company_id", req.CompanyID.String()),
		zap.String("code", req.Code),
	)

	if err := tenant.Authorize(ctx, &req.CompanyID); err != nil {
		return ProjectResponse{}, err
	}

	// The caller is the creator unless one was named.
	if req.CreatedBy == nil {
		if uid, err := uuid.Parse(contextutil.GetUserID(ctx)); err == nil {
			req.CreatedBy = &uid
		}
	}

	p, err := s.records.Create(ctx, req.toEntity(), lifecycle.AllFields())
	if err != nil {
		log.Warn("create project failed", zap.Error(err))
		return ProjectResponse{}, err
	}

	log.Info("create project success", zap.String("project_id", p.ID.String()))
	return mapToResponse(p), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (ProjectResponse, error) {
	p, err := s.records.Get(ctx, id)
	if err != nil {
		return ProjectResponse{}, err
	}
	if err := tenant.Check(ctx, &p.CompanyID); err != nil {
		return ProjectResponse{}, err
	}
	return mapToResponse(p), nil
}

func (s *service) Update(
	ctx context.Context,
	id uuid.UUID,
	req UpdateProjectRequest,
	changed lifecycle.FieldSet,
) (ProjectResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update project requested",
		zap.String("project_id", id.String()),
		zap.Strings("fields", changed.Names()),
	)

	p, err := s.records.Update(ctx, id, changed, func(p *Project) error {
		if err := tenant.Check(ctx, &p.CompanyID); err != nil {
			return err
		}
		req.applyTo(p, changed)
		return nil
	})
	if err != nil {
		log.Warn("update project failed", zap.String("project_id", id.String()), zap.Error(err))
		return ProjectResponse{}, err
	}

	log.Info("update project success", zap.String("project_id", id.String()))
	return mapToResponse(p), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	log := contextutil.GetLogger(ctx, s.logger)

	p, err := s.records.Load(ctx, id)
	if err != nil {
		return err
	}
	if err := tenant.Check(ctx, &p.CompanyID); err != nil {
		return err
	}
	if tenant.FromContext(ctx).Restricted() {
		policies, err := company.LoadPolicies(ctx, s.store, p.CompanyID)
		if err != nil {
			return err
		}
		if !policies.ProjectDeletionAllowed() {
			return projecterrors.ErrDeletionDisabled
		}
	}

	if err := s.records.SoftDelete(ctx, id); err != nil {
		log.Warn("delete project failed", zap.String("project_id", id.String()), zap.Error(err))
		return err
	}

	log.Info("delete project success", zap.String("project_id", id.String()))
	return nil
}
