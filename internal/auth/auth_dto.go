package auth

import (
	"time"

	"go-estateflow/internal/user"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type Session struct {
	AccessToken      string            `json:"accessToken"`
	AccessExpiresAt  time.Time         `json:"accessExpiresAt"`
	RefreshToken     string            `json:"refreshToken"`
	RefreshExpiresAt time.Time         `json:"refreshExpiresAt"`
	User             user.UserResponse `json:"user"`
}
