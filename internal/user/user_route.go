package user

import (
	"go-estateflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, chain middleware.Chain) {
	users := r.Group("/users")
	users.Use(chain.Auth)
	{
		users.POST("",
			middleware.RateLimitByUser(1, 5),
			chain.Authorize("user", "create"),
			chain.Idempotent(),
			handler.Create,
		)

		// Everyone may read their own account; the service widens this to
		// the caller's tenant.
		users.GET("/:id",
			middleware.RateLimitByUser(5, 20),
			handler.GetByID,
		)

		users.PATCH("/:id",
			middleware.RateLimitByUser(1, 5),
			chain.Authorize("user", "update"),
			handler.Update,
		)

		users.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			chain.Authorize("user", "delete"),
			handler.Delete,
		)

		users.POST("/:id/password",
			middleware.RateLimitByUser(0.2, 3),
			handler.ChangePassword,
		)
	}
}
