package company

import (
	"net/http"

	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/shared/request"
	"go-estateflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	h.create(c, req)
}

// Register is the public self-registration entry point; the origin is
// always SELF_REGISTERED and there is no creator.
func (h *Handler) Register(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}
	req.CreatedByRole = CreatedBySelfRegistered
	req.CreatedBy = nil

	h.create(c, req)
}

func (h *Handler) create(c *gin.Context, req CreateCompanyRequest) {
	comp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, comp)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	comp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comp)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req UpdateCompanyRequest
	changed, err := request.BindPatch(c, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	comp, err := h.service.Update(c.Request.Context(), id, req, changed)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comp)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete company", zap.String("company_id", id.String()), zap.Error(err))
		response.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

