package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-estateflow/internal/shared/apperror"
	"go-estateflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.FromError(c, apperror.Conflict("code", nil))

	assert.Equal(t, http.StatusConflict, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])

	errObj := body["error"].(map[string]any)
	assert.Equal(t, apperror.CodeConflict, errObj["code"])
	assert.Equal(t, "code", errObj["details"].(map[string]any)["field"])
}
