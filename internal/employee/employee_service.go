package employee

import (
	"context"
	"fmt"
	"strings"

	employeeerrors "go-estateflow/internal/employee/errors"
	"go-estateflow/internal/lifecycle"
	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/shared/contextutil"
	"go-estateflow/internal/shared/counter"
	"go-estateflow/internal/store"
	"go-estateflow/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const employeeCodeCounter = "employee_code"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeProfileRequest) (EmployeeProfileResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (EmployeeProfileResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateEmployeeProfileRequest, changed lifecycle.FieldSet) (EmployeeProfileResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	VerifyByHR(ctx context.Context, id, verifierID uuid.UUID) (EmployeeProfileResponse, error)
	ApproveByAdmin(ctx context.Context, id, approverID uuid.UUID) (EmployeeProfileResponse, error)
}

type service struct {
	records *lifecycle.Controller[*EmployeeProfile]
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(st store.Store, seq counter.Repository, deps lifecycle.Deps) Service {
	l := zap.L().Named("employee.service")
	if deps.Logger != nil {
		l = deps.Logger.Named("employee.service")
	}

	records := lifecycle.NewController(
		store.KindEmployeeProfile,
		st,
		func() *EmployeeProfile { return &EmployeeProfile{} },
		Validator{},
		lifecycle.OptionsFrom[*EmployeeProfile](deps)...,
	)
	return &service{records: records, counter: seq, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeProfileRequest) (EmployeeProfileResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create employee profile requested",
		zap.String("company_id", req.CompanyID.String()),
		zap.String("user_id", req.UserID.String()),
	)

	if err := tenant.Authorize(ctx, &req.CompanyID); err != nil {
		return EmployeeProfileResponse{}, err
	}

	if strings.TrimSpace(req.EmployeeCode) == "" && req.CompanyID != uuid.Nil && s.counter != nil {
		code, err := s.nextEmployeeCode(ctx, req.CompanyID)
		if err != nil {
			log.Error("create employee profile generate code failed", zap.Error(err))
			return EmployeeProfileResponse{}, apperror.Dependency("employee code sequence", err)
		}
		req.EmployeeCode = code
	}

	p, err := s.records.Create(ctx, req.toEntity(), lifecycle.AllFields())
	if err != nil {
		log.Warn("create employee profile failed", zap.Error(err))
		return EmployeeProfileResponse{}, err
	}

	log.Info("create employee profile success",
		zap.String("employee_profile_id", p.ID.String()),
		zap.String("employee_code", p.EmployeeCode),
	)
	return mapToResponse(p), nil
}

// nextEmployeeCode is unique across companies: the company prefix keeps
// per-company sequences apart.
func (s *service) nextEmployeeCode(ctx context.Context, companyID uuid.UUID) (string, error) {
	next, err := s.counter.GetNextValue(ctx, companyID.String(), employeeCodeCounter)
	if err != nil {
		return "", err
	}
	prefix := strings.ToUpper(strings.ReplaceAll(companyID.String(), "-", "")[:8])
	return fmt.Sprintf("EMP-%s-%06d", prefix, next), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (EmployeeProfileResponse, error) {
	p, err := s.records.Get(ctx, id)
	if err != nil {
		return EmployeeProfileResponse{}, err
	}
	if err := tenant.Check(ctx, &p.CompanyID); err != nil {
		return EmployeeProfileResponse{}, err
	}
	return mapToResponse(p), nil
}

func (s *service) Update(
	ctx context.Context,
	id uuid.UUID,
	req UpdateEmployeeProfileRequest,
	changed lifecycle.FieldSet,
) (EmployeeProfileResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update employee profile requested",
		zap.String("employee_profile_id", id.String()),
		zap.Strings("fields", changed.Names()),
	)

	p, err := s.records.Update(ctx, id, changed, func(p *EmployeeProfile) error {
		if err := tenant.Check(ctx, &p.CompanyID); err != nil {
			return err
		}
		req.applyTo(p, changed)
		return nil
	})
	if err != nil {
		log.Warn("update employee profile failed", zap.String("employee_profile_id", id.String()), zap.Error(err))
		return EmployeeProfileResponse{}, err
	}

	log.Info("update employee profile success", zap.String("employee_profile_id", id.String()))
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

	if err := s.records.SoftDelete(ctx, id); err != nil {
		log.Warn("delete employee profile failed", zap.String("employee_profile_id", id.String()), zap.Error(err))
		return err
	}

	log.Info("delete employee profile success", zap.String("employee_profile_id", id.String()))
	return nil
}

// VerifyByHR moves a pending profile to HR_VERIFIED and records who did it.
func (s *service) VerifyByHR(ctx context.Context, id, verifierID uuid.UUID) (EmployeeProfileResponse, error) {
	changed := lifecycle.Fields("verificationStatus", "verifiedByHR")
	return s.transition(ctx, id, changed, func(p *EmployeeProfile) error {
		if p.VerificationStatus == StatusAdminApproved {
			return employeeerrors.ErrAlreadyApproved
		}
		p.VerificationStatus = StatusHRVerified
		p.VerifiedByHR = &verifierID
		return nil
	})
}

// ApproveByAdmin requires a prior HR verification.
func (s *service) ApproveByAdmin(ctx context.Context, id, approverID uuid.UUID) (EmployeeProfileResponse, error) {
	changed := lifecycle.Fields("verificationStatus", "approvedByAdmin")
	return s.transition(ctx, id, changed, func(p *EmployeeProfile) error {
		switch p.VerificationStatus {
		case StatusAdminApproved:
			return employeeerrors.ErrAlreadyApproved
		case StatusHRVerified:
		default:
			return employeeerrors.ErrNotHRVerified
		}
		p.VerificationStatus = StatusAdminApproved
		p.ApprovedByAdmin = &approverID
		return nil
	})
}

func (s *service) transition(
	ctx context.Context,
	id uuid.UUID,
	changed lifecycle.FieldSet,
	apply func(*EmployeeProfile) error,
) (EmployeeProfileResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	p, err := s.records.Update(ctx, id, changed, func(p *EmployeeProfile) error {
		if err := tenant.Check(ctx, &p.CompanyID); err != nil {
			return err
		}
		return apply(p)
	})
	if err != nil {
		log.Warn("employee profile transition failed",
			zap.String("employee_profile_id", id.String()),
			zap.Strings("fields", changed.Names()),
			zap.Error(err),
		)
		return EmployeeProfileResponse{}, err
	}

	log.Info("employee profile transition success",
		zap.String("employee_profile_id", id.String()),
		zap.String("verification_status", string(p.VerificationStatus)),
	)
	return mapToResponse(p), nil
}
