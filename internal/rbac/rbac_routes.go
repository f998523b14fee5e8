package rbac

import (
	"go-estateflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, chain middleware.Chain) {
	group := r.Group("/rbac")
	group.Use(chain.Auth)
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/permissions", handler.MyPermissions)
	}
}
