package auth

import (
	"errors"
	"fmt"
	"time"

	autherrors "go-estateflow/internal/auth/errors"
	"go-estateflow/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type TokenConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Claims struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id,omitempty"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 tokens. It satisfies
// middleware.TokenVerifier for access tokens.
type TokenManager struct {
	cfg TokenConfig
	now func() time.Time
}

func NewTokenManager(cfg TokenConfig) *TokenManager {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{cfg: cfg, now: time.Now}
}

func (m *TokenManager) Issue(id middleware.Identity, tokenType string) (string, time.Time, error) {
	ttl := m.cfg.AccessTTL
	if tokenType == TokenTypeRefresh {
		ttl = m.cfg.RefreshTTL
	}

	issuedAt := m.now()
	expiresAt := issuedAt.Add(ttl)
	claims := Claims{
		UserID:    id.UserID,
		CompanyID: id.CompanyID,
		Role:      id.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, expiresAt, nil
}

func (m *TokenManager) Verify(token string) (middleware.Identity, error) {
	return m.parse(token, TokenTypeAccess)
}

func (m *TokenManager) VerifyRefresh(token string) (middleware.Identity, error) {
	id, err := m.parse(token, TokenTypeRefresh)
	if errors.Is(err, autherrors.ErrInvalidToken) {
		return middleware.Identity{}, autherrors.ErrInvalidRefreshToken
	}
	return id, err
}

func (m *TokenManager) parse(tokenString, tokenType string) (middleware.Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(m.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return middleware.Identity{}, autherrors.ErrTokenExpired
		}
		return middleware.Identity{}, autherrors.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" || claims.TokenType != tokenType {
		return middleware.Identity{}, autherrors.ErrInvalidToken
	}
	if m.cfg.Issuer != "" && claims.Issuer != m.cfg.Issuer {
		return middleware.Identity{}, autherrors.ErrInvalidToken
	}

	return middleware.Identity{
		UserID:    claims.UserID,
		CompanyID: claims.CompanyID,
		Role:      claims.Role,
	}, nil
}
