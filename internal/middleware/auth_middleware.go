package middleware

import (
	"strings"

	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/shared/contextutil"
	"go-estateflow/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Identity is the caller carried by a verified access token.
type Identity struct {
	UserID    string
	CompanyID string
	Role      string
}

// TokenVerifier turns a raw bearer token into an Identity.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

const AccessTokenCookie = "access_token"

func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.FromError(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}

		id, err := verifier.Verify(tokenString)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		c.Set("user_id", id.UserID)
		c.Set("company_id", id.CompanyID)
		c.Set("role", id.Role)

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, id.UserID)
		ctx = contextutil.WithCompanyID(ctx, id.CompanyID)
		ctx = contextutil.WithRole(ctx, id.Role)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, nil).With(contextFields(id)...))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
