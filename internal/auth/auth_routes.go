package auth

import (
	"go-estateflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, chain middleware.Chain) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", middleware.RateLimitByIP(0.2, 5), handler.Refresh)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", chain.Auth, middleware.RateLimitByUser(2, 5), handler.Me)
	}
}
