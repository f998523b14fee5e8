package user

import (
	"context"
	"errors"
	"time"

	"go-estateflow/internal/company"
	"go-estateflow/internal/credential"
	"go-estateflow/internal/lifecycle"
	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/shared/contextutil"
	"go-estateflow/internal/store"
	"go-estateflow/internal/tenant"
	"go-estateflow/internal/validation"
	usererrors "go-estateflow/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest, changed lifecycle.FieldSet) (UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ChangePassword(ctx context.Context, id uuid.UUID, req ChangePasswordRequest) error
	Authenticate(ctx context.Context, email, password string) (UserResponse, error)
}

type service struct {
	records *lifecycle.Controller[*User]
	store   store.Store
	creds   credential.Manager
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(st store.Store, creds credential.Manager, deps lifecycle.Deps) Service {
	l := zap.L().Named("user.service")
	if deps.Logger != nil {
		l = deps.Logger.Named("user.service")
	}

	opts := append(
		lifecycle.OptionsFrom[*User](deps),
		lifecycle.WithDeriver[*User](credentialDeriver{creds: creds}),
	)
	records := lifecycle.NewController(
		store.KindUser,
		st,
		func() *User { return &User{} },
		Validator{},
		opts...,
	)
	now := deps.Clock
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{records: records, store: st, creds: creds, now: now, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create user requested",
		zap.String("role", string(req.Role)),
		zap.Bool("has_company", req.CompanyID != nil),
	)

	if err := tenant.Authorize(ctx, req.CompanyID); err != nil {
		return UserResponse{}, err
	}

	u, err := s.records.Create(ctx, req.toEntity(), lifecycle.AllFields())
	if err != nil {
		log.Warn("create user failed", zap.Error(err))
		return UserResponse{}, err
	}

	log.Info("create user success", zap.String("user_id", u.ID.String()))
	return mapToResponse(u), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (UserResponse, error) {
	u, err := s.records.Get(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	if !isSelf(ctx, id) {
		if err := tenant.Check(ctx, u.CompanyID); err != nil {
			return UserResponse{}, err
		}
	}
	return mapToResponse(u), nil
}

func (s *service) Update(
	ctx context.Context,
	id uuid.UUID,
	req UpdateUserRequest,
	changed lifecycle.FieldSet,
) (UserResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update user requested",
		zap.String("user_id", id.String()),
		zap.Strings("fields", changed.Names()),
	)

	u, err := s.records.Update(ctx, id, changed, func(u *User) error {
		if err := tenant.Check(ctx, u.CompanyID); err != nil {
			return err
		}
		req.applyTo(u, changed)
		return tenant.Authorize(ctx, u.CompanyID)
	})
	if err != nil {
		log.Warn("update user failed", zap.String("user_id", id.String()), zap.Error(err))
		return UserResponse{}, err
	}

	log.Info("update user success", zap.String("user_id", id.String()))
	return mapToResponse(u), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	log := contextutil.GetLogger(ctx, s.logger)

	u, err := s.records.Load(ctx, id)
	if err != nil {
		return err
	}
	if err := tenant.Check(ctx, u.CompanyID); err != nil {
		return err
	}
	if u.CompanyID != nil && tenant.FromContext(ctx).Restricted() {
		policies, err := company.LoadPolicies(ctx, s.store, *u.CompanyID)
		if err != nil {
			return err
		}
		if !policies.UserDeletionAllowed() {
			return usererrors.ErrDeletionDisabled
		}
	}

	if err := s.records.SoftDelete(ctx, id); err != nil {
		log.Warn("delete user failed", zap.String("user_id", id.String()), zap.Error(err))
		return err
	}

	log.Info("delete user success", zap.String("user_id", id.String()))
	return nil
}

// ChangePassword is self-service; the current password must verify.
func (s *service) ChangePassword(ctx context.Context, id uuid.UUID, req ChangePasswordRequest) error {
	log := contextutil.GetLogger(ctx, s.logger)

	if contextutil.GetUserID(ctx) != "" && !isSelf(ctx, id) {
		return usererrors.ErrNotSelf
	}

	_, err := s.records.Update(ctx, id, lifecycle.Fields("password"), func(u *User) error {
		if u.PasswordHash == "" || !s.creds.Verify(req.CurrentPassword, u.PasswordHash) {
			return usererrors.ErrWrongPassword
		}
		u.Password = req.NewPassword
		return nil
	})
	if err != nil {
		log.Warn("change password failed", zap.String("user_id", id.String()), zap.Error(err))
		return err
	}

	log.Info("change password success", zap.String("user_id", id.String()))
	return nil
}

// Authenticate checks an email and password pair and stamps the login
// time. Unknown emails and wrong passwords are indistinguishable.
func (s *service) Authenticate(ctx context.Context, email, password string) (UserResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	id, found, err := s.store.FindByUniqueKey(ctx, store.KindUser, "email", validation.NormalizeEmail(email))
	if err != nil {
		log.Error("lookup user by email failed", zap.Error(err))
		return UserResponse{}, apperror.Dependency("user lookup", err)
	}
	if !found {
		return UserResponse{}, usererrors.ErrInvalidCredentials
	}

	u, err := s.records.Load(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return UserResponse{}, usererrors.ErrInvalidCredentials
		}
		return UserResponse{}, err
	}

	if u.PasswordHash == "" || !s.creds.Verify(password, u.PasswordHash) {
		log.Debug("login rejected", zap.String("user_id", id.String()))
		return UserResponse{}, usererrors.ErrInvalidCredentials
	}
	if u.Status == StatusSuspended {
		return UserResponse{}, usererrors.ErrAccountSuspended
	}

	updated, err := s.records.Update(ctx, id, lifecycle.Fields("lastLoginAt"), func(u *User) error {
		loginAt := s.now()
		u.LastLoginAt = &loginAt
		return nil
	})
	if err != nil {
		// The credential was valid; a failed stamp does not block login.
		log.Warn("record last login failed", zap.String("user_id", id.String()), zap.Error(err))
		return mapToResponse(u), nil
	}

	log.Info("login success", zap.String("user_id", id.String()))
	return mapToResponse(updated), nil
}

func isSelf(ctx context.Context, id uuid.UUID) bool {
	return contextutil.GetUserID(ctx) == id.String()
}
