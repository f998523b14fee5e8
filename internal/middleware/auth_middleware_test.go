package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-estateflow/internal/middleware"
	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeVerifier struct {
	tokens map[string]middleware.Identity
}

func (f fakeVerifier) Verify(token string) (middleware.Identity, error) {
	id, ok := f.tokens[token]
	if !ok {
		return middleware.Identity{}, apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	}
	return id, nil
}

func authRouter(verifier middleware.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(verifier), func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"user_id":    c.GetString("user_id"),
			"ctx_user":   contextutil.GetUserID(ctx),
			"ctx_tenant": contextutil.GetCompanyID(ctx),
			"ctx_role":   contextutil.GetRole(ctx),
		})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	verifier := fakeVerifier{tokens: map[string]middleware.Identity{
		"good": {UserID: "u-1", CompanyID: "c-1", Role: "HR_MANAGER"},
	}}

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "bearer header",
			header:     "Bearer good",
			wantStatus: http.StatusOK,
			wantBody:   `{"user_id":"u-1","ctx_user":"u-1","ctx_tenant":"c-1","ctx_role":"HR_MANAGER"}`,
		},
		{
			name:       "cookie fallback",
			cookie:     "good",
			wantStatus: http.StatusOK,
			wantBody:   `{"user_id":"u-1","ctx_user":"u-1","ctx_tenant":"c-1","ctx_role":"HR_MANAGER"}`,
		},
		{
			name:       "missing token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"ok":false,"error":{"code":"UNAUTHORIZED","message":"Authentication is required","details":null}}`,
		},
		{
			name:       "rejected token",
			header:     "Bearer forged",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"ok":false,"error":{"code":"INVALID_TOKEN","message":"Invalid token","details":null}}`,
		},
		{
			name:       "non bearer scheme",
			header:     "Basic good",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := authRouter(verifier)
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_VerifierErrorIsNotLeaked(t *testing.T) {
	r := authRouter(errVerifier{})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "keyring offline")
}

type errVerifier struct{}

func (errVerifier) Verify(string) (middleware.Identity, error) {
	return middleware.Identity{}, errors.New("keyring offline")
}
