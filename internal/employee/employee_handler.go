package employee

import (
	"context"
	"net/http"

	employeeerrors "go-estateflow/internal/employee/errors"
	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/shared/request"
	"go-estateflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee profile request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req UpdateEmployeeProfileRequest
	changed, err := request.BindPatch(c, &req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req, changed)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Verify(c *gin.Context) {
	h.transition(c, h.service.VerifyByHR)
}

func (h *Handler) Approve(c *gin.Context) {
	h.transition(c, h.service.ApproveByAdmin)
}

// transition acts on behalf of the authenticated caller.
func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, id, actorID uuid.UUID) (EmployeeProfileResponse, error)) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	actorID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, employeeerrors.ErrNoActor)
		return
	}

	resp, err := fn(c.Request.Context(), id, actorID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
