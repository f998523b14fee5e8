// Package request holds gin binding helpers shared by the entity handlers.
package request

import (
	"go-estateflow/internal/lifecycle"
	"go-estateflow/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

// ParamID parses a uuid path parameter.
func ParamID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.InvalidField(name)
	}
	return id, nil
}

// BindPatch decodes a partial update and reports which top-level fields the
// body carried, so an explicit null can clear a field.
func BindPatch(c *gin.Context, req any) (lifecycle.FieldSet, error) {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		return lifecycle.FieldSet{}, apperror.MapValidationError(err)
	}

	raw, ok := c.Get(gin.BodyBytesKey)
	body, _ := raw.([]byte)
	if !ok || len(body) == 0 {
		return lifecycle.FieldSet{}, apperror.ErrInvalidInput
	}

	changed, err := lifecycle.FieldsFromJSON(body)
	if err != nil {
		return lifecycle.FieldSet{}, apperror.ErrInvalidInput
	}
	if changed.Empty() {
		return lifecycle.FieldSet{}, apperror.RequiredField("body")
	}
	return changed, nil
}
