package rbac

import (
	"net/http"

	"go-estateflow/internal/domain"
	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// Enforce answers whether the caller's role may perform an action.
func (h *Handler) Enforce(c *gin.Context) {
	var req domain.EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}
	req.Role = c.GetString("role")

	allowed, err := h.service.Enforce(req)
	if err != nil {
		h.logger.Error("enforce failed", zap.Error(err))
		response.FromError(c, apperror.Dependency("authorization", err))
		return
	}

	response.Success(c, http.StatusOK, domain.EnforceResponse{Allowed: allowed})
}

func (h *Handler) MyPermissions(c *gin.Context) {
	role := c.GetString("role")

	perms, err := h.service.PermissionsFor(role)
	if err != nil {
		h.logger.Error("list permissions failed", zap.String("role", role), zap.Error(err))
		response.FromError(c, apperror.Dependency("authorization", err))
		return
	}

	response.Success(c, http.StatusOK, domain.RolePermissionsResponse{Role: role, Permissions: perms})
}
