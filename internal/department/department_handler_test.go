package department_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hr-ticketing/internal/department"
	departmenterrors "go-hr-ticketing/internal/department/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeDepartmentService struct {
	CreateFn  func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetAllFn  func(ctx context.Context) ([]department.DepartmentResponse, error)
	GetByIDFn func(ctx context.Context, id string) (department.DepartmentResponse, error)
	UpdateFn  func(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeDepartmentService) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeDepartmentService) GetAll(ctx context.Context) ([]department.DepartmentResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeDepartmentService) GetByID(ctx context.Context, id string) (department.DepartmentResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeDepartmentService) Update(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeDepartmentService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestDepartmentHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				assert.Equal(t, "HR", req.Name)
				return department.DepartmentResponse{ID: uuid.New().String(), Name: req.Name, TLMail: req.TLMail}, nil
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"name":"HR","tl_mail":"tl@example.com"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "tl@example.com")
	})

	t.Run("validation error", func(t *testing.T) {
		h := department.NewHandler(&fakeDepartmentService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{"name":"HR","tl_mail":"nope"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestDepartmentHandler_GetById(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := &fakeDepartmentService{
			GetByIDFn: func(ctx context.Context, id string) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
			},
		}
		r := setupRouter()
		r.GET("/departments/:id", department.NewHandler(svc).GetById)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/departments/"+uuid.New().String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Ok)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}

func TestDepartmentHandler_Delete(t *testing.T) {
	t.Run("conflict when in use", func(t *testing.T) {
		svc := &fakeDepartmentService{
			DeleteFn: func(ctx context.Context, id string) error {
				return departmenterrors.ErrDepartmentInUse
			},
		}
		r := setupRouter()
		r.DELETE("/departments/:id", department.NewHandler(svc).Delete)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/departments/"+uuid.New().String(), nil))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeDepartmentService{
			DeleteFn: func(ctx context.Context, id string) error { return nil },
		}
		r := setupRouter()
		r.DELETE("/departments/:id", department.NewHandler(svc).Delete)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/departments/"+uuid.New().String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"deleted":true`)
	})
}
