package project_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-estateflow/internal/lifecycle"
	"go-estateflow/internal/project"
	projectMock "go-estateflow/internal/project/mock"
	"go-estateflow/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRouter(handler *project.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/projects", handler.Create)
	r.PATCH("/projects/:id", handler.Update)
	r.DELETE("/projects/:id", handler.Delete)
	return r
}

func TestHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := projectMock.NewMockService(ctrl)
	r := setupRouter(project.NewHandler(mockService))

	var v validation.Violations
	v.Add(project.RuleExpectedCompletionOrder, "expectedCompletionDate", "expectedCompletionDate must not precede startDate")
	mockService.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, req project.CreateProjectRequest) (project.ProjectResponse, error) {
			assert.Equal(t, 2026, req.StartDate.Year())
			return project.ProjectResponse{}, v.BusinessError()
		})

	body := `{"name":"Skyline","code":"SKY","projectType":"RESIDENTIAL","startDate":"2026-06-01T00:00:00Z","expectedCompletionDate":"2026-05-01T00:00:00Z"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/projects", bytes.NewBufferString(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), project.RuleExpectedCompletionOrder)
}

func TestHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := projectMock.NewMockService(ctrl)
	r := setupRouter(project.NewHandler(mockService))
	id := uuid.New()

	mockService.EXPECT().Update(gomock.Any(), id, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, _ uuid.UUID, req project.UpdateProjectRequest, changed lifecycle.FieldSet) (project.ProjectResponse, error) {
			assert.Equal(t, []string{"actualCompletionDate", "status"}, changed.Names())
			assert.Nil(t, req.ActualCompletionDate)
			return project.ProjectResponse{ID: id.String(), Status: *req.Status}, nil
		})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/projects/"+id.String(), bytes.NewBufferString(`{"status":"ON_HOLD","actualCompletionDate":null}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ON_HOLD")
}
