package company

import (
	"context"

	"go-estateflow/internal/lifecycle"
	"go-estateflow/internal/store"
	"go-estateflow/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (CompanyResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest, changed lifecycle.FieldSet) (CompanyResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	records *lifecycle.Controller[*Company]
	logger  *zap.Logger
}

func NewService(st store.Store, deps lifecycle.Deps) Service {
	l := zap.L().Named("company.service")
	if deps.Logger != nil {
		l = deps.Logger.Named("company.service")
	}

	records := lifecycle.NewController(
		store.KindCompany,
		st,
		func() *Company { return &Company{} },
		Validator{},
		lifecycle.OptionsFrom[*Company](deps)...,
	)
	return &service{records: records, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error) {
	s.logger.Debug("create company requested",
		zap.String("company_name", req.CompanyName),
		zap.String("created_by_role", string(req.CreatedByRole)),
	)

	c, err := s.records.Create(ctx, req.toEntity(), lifecycle.AllFields())
	if err != nil {
		s.logger.Warn("create company failed", zap.Error(err))
		return CompanyResponse{}, err
	}

	s.logger.Info("create company success", zap.String("company_id", c.ID.String()))
	return mapToResponse(c), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (CompanyResponse, error) {
	if err := tenant.Check(ctx, &id); err != nil {
		return CompanyResponse{}, err
	}

	c, err := s.records.Get(ctx, id)
	if err != nil {
		return CompanyResponse{}, err
	}
	return mapToResponse(c), nil
}

func (s *service) Update(
	ctx context.Context,
	id uuid.UUID,
	req UpdateCompanyRequest,
	changed lifecycle.FieldSet,
) (CompanyResponse, error) {
	if err := tenant.Check(ctx, &id); err != nil {
		return CompanyResponse{}, err
	}

	s.logger.Debug("update company requested",
		zap.String("company_id", id.String()),
		zap.Strings("fields", changed.Names()),
	)

	c, err := s.records.Update(ctx, id, changed, func(c *Company) error {
		req.applyTo(c, changed)
		return nil
	})
	if err != nil {
		s.logger.Warn("update company failed", zap.String("company_id", id.String()), zap.Error(err))
		return CompanyResponse{}, err
	}

	s.logger.Info("update company success", zap.String("company_id", id.String()))
	return mapToResponse(c), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := tenant.Check(ctx, &id); err != nil {
		return err
	}

	if err := s.records.SoftDelete(ctx, id); err != nil {
		s.logger.Warn("delete company failed", zap.String("company_id", id.String()), zap.Error(err))
		return err
	}

	s.logger.Info("delete company success", zap.String("company_id", id.String()))
	return nil
}
