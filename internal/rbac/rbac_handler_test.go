package rbac_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-estateflow/internal/domain"
	"go-estateflow/internal/rbac"
	rbacMock "go-estateflow/internal/rbac/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRouter(handler *rbac.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("role", rbac.RoleHRManager)
		c.Next()
	})
	r.POST("/rbac/enforce", handler.Enforce)
	r.GET("/rbac/permissions", handler.MyPermissions)
	return r
}

func TestHandler_Enforce(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := rbacMock.NewMockService(ctrl)
	r := setupRouter(rbac.NewHandler(mockService))

	t.Run("uses the caller role", func(t *testing.T) {
		mockService.EXPECT().Enforce(domain.EnforceRequest{Role: rbac.RoleHRManager, Resource: "user", Action: "create"}).Return(true, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"role":"PLATFORM_SUPER_ADMIN","resource":"user","action":"create"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true,"data":{"allowed":true}}`, w.Body.String())
	})

	t.Run("missing action", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"resource":"user"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("enforcer failure", func(t *testing.T) {
		mockService.EXPECT().Enforce(gomock.Any()).Return(false, errors.New("bad matcher"))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"resource":"user","action":"read"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestHandler_MyPermissions(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := rbacMock.NewMockService(ctrl)
	r := setupRouter(rbac.NewHandler(mockService))

	mockService.EXPECT().PermissionsFor(rbac.RoleHRManager).Return([]domain.PermissionResponse{{Resource: "user", Action: "read"}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/rbac/permissions", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"HR_MANAGER"`)
}
