package employee

import (
	"go-estateflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, chain middleware.Chain) {
	profiles := r.Group("/employee-profiles")
	profiles.Use(chain.Auth)
	{
		profiles.POST("",
			middleware.RateLimitByUser(0.5, 2),
			chain.Authorize("employee_profile", "create"),
			chain.Idempotent(),
			handler.Create,
		)

		profiles.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			chain.Authorize("employee_profile", "read"),
			handler.GetByID,
		)

		profiles.PATCH("/:id",
			middleware.RateLimitByUser(0.5, 2),
			chain.Authorize("employee_profile", "update"),
			handler.Update,
		)

		profiles.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			chain.Authorize("employee_profile", "delete"),
			handler.Delete,
		)

		profiles.POST("/:id/verify",
			middleware.RateLimitByUser(0.5, 2),
			chain.Authorize("employee_profile", "verify"),
			handler.Verify,
		)

		profiles.POST("/:id/approve",
			middleware.RateLimitByUser(0.5, 2),
			chain.Authorize("employee_profile", "approve"),
			handler.Approve,
		)
	}
}
