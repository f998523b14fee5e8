package auth

import (
	"net/http"
	"time"

	autherrors "go-estateflow/internal/auth/errors"
	"go-estateflow/internal/middleware"
	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const RefreshTokenCookie = "refresh_token"

type Handler struct {
	service       Service
	secureCookies bool
}

func NewHandler(service Service, secureCookies bool) *Handler {
	return &Handler{service: service, secureCookies: secureCookies}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.setSessionCookies(c, session)
	response.Success(c, http.StatusOK, session)
}

// Refresh accepts the refresh token from the cookie set at login, or from
// the body for non-browser clients.
func (h *Handler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		var req RefreshRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			response.FromError(c, autherrors.ErrMissingRefreshToken)
			return
		}
		refreshToken = req.RefreshToken
	}

	session, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.setSessionCookies(c, session)
	response.Success(c, http.StatusOK, session)
}

func (h *Handler) Me(c *gin.Context) {
	resp, err := h.service.Me(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, middleware.AccessTokenCookie, "", -1)
	h.setCookie(c, RefreshTokenCookie, "", -1)
	c.Status(http.StatusNoContent)
}

func (h *Handler) setSessionCookies(c *gin.Context, s Session) {
	h.setCookie(c, middleware.AccessTokenCookie, s.AccessToken, secondsUntil(s.AccessExpiresAt))
	h.setCookie(c, RefreshTokenCookie, s.RefreshToken, secondsUntil(s.RefreshExpiresAt))
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func secondsUntil(t time.Time) int {
	if s := int(time.Until(t).Seconds()); s > 0 {
		return s
	}
	return -1
}
