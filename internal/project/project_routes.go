package project

import (
	"go-estateflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, chain middleware.Chain) {
	projects := r.Group("/projects")
	projects.Use(chain.Auth)
	{
		projects.POST("", middleware.RateLimitByUser(0.5, 2), chain.Authorize("project", "create"), chain.Idempotent(), h.Create)
		projects.GET("/:id", middleware.RateLimitByUser(5, 20), chain.Authorize("project", "read"), h.GetByID)
		projects.PATCH("/:id", middleware.RateLimitByUser(1, 5), chain.Authorize("project", "update"), h.Update)
		projects.DELETE("/:id", middleware.RateLimitByUser(0.1, 1), chain.Authorize("project", "delete"), h.Delete)
	}
}
