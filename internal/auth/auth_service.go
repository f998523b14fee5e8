package auth

import (
	"context"

	autherrors "go-estateflow/internal/auth/errors"
	"go-estateflow/internal/middleware"
	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/shared/contextutil"
	"go-estateflow/internal/user"
	usererrors "go-estateflow/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserDirectory is the slice of user.Service that sign-in needs.
type UserDirectory interface {
	Authenticate(ctx context.Context, email, password string) (user.UserResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (user.UserResponse, error)
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	Me(ctx context.Context) (user.UserResponse, error)
}

type service struct {
	users  UserDirectory
	tokens *TokenManager
	logger *zap.Logger
}

func NewService(users UserDirectory, tokens *TokenManager, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, tokens: tokens, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (Session, error) {
	u, err := s.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return Session{}, err
	}
	return s.session(ctx, u)
}

// Refresh re-reads the account so role, tenant and suspension changes take
// effect on the next token pair.
func (s *service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	id, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return Session{}, err
	}

	userID, err := uuid.Parse(id.UserID)
	if err != nil {
		return Session{}, autherrors.ErrInvalidRefreshToken
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeNotFound {
			return Session{}, autherrors.ErrInvalidRefreshToken
		}
		return Session{}, err
	}
	if u.Status == user.StatusSuspended {
		return Session{}, usererrors.ErrAccountSuspended
	}

	return s.session(ctx, u)
}

func (s *service) Me(ctx context.Context) (user.UserResponse, error) {
	userID, err := uuid.Parse(contextutil.GetUserID(ctx))
	if err != nil {
		return user.UserResponse{}, apperror.ErrUnauthorized
	}
	return s.users.GetByID(ctx, userID)
}

func (s *service) session(ctx context.Context, u user.UserResponse) (Session, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	id := IdentityOf(u)
	access, accessExp, err := s.tokens.Issue(id, TokenTypeAccess)
	if err != nil {
		log.Error("issue access token failed", zap.String("user_id", id.UserID), zap.Error(err))
		return Session{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, refreshExp, err := s.tokens.Issue(id, TokenTypeRefresh)
	if err != nil {
		log.Error("issue refresh token failed", zap.String("user_id", id.UserID), zap.Error(err))
		return Session{}, autherrors.ErrTokenGenerationFailed
	}

	return Session{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
		User:             u,
	}, nil
}

func IdentityOf(u user.UserResponse) middleware.Identity {
	id := middleware.Identity{UserID: u.ID, Role: string(u.Role)}
	if u.CompanyID != nil {
		id.CompanyID = u.CompanyID.String()
	}
	return id
}
