package company

import (
	"go-estateflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, chain middleware.Chain) {
	// Self-registration is public; keep it slow per IP.
	r.POST("/companies/register",
		middleware.RateLimitByIP(0.2, 3),
		chain.Idempotent(),
		handler.Register,
	)

	company := r.Group("/companies")
	company.Use(chain.Auth)
	{
		company.POST("",
			middleware.RateLimitByUser(1, 3),
			chain.Authorize("company", "create"),
			chain.Idempotent(),
			handler.Create,
		)

		company.GET("/:id",
			middleware.RateLimitByUser(5, 20),
			chain.Authorize("company", "read"),
			handler.GetByID,
		)

		company.PATCH("/:id",
			middleware.RateLimitByUser(1, 5),
			chain.Authorize("company", "update"),
			handler.Update,
		)

		company.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			chain.Authorize("company", "delete"),
			handler.Delete,
		)
	}
}
