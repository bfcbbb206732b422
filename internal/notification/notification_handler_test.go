package notification_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hr-ticketing/internal/domain"
	"go-hr-ticketing/internal/notification"
	notificationerrors "go-hr-ticketing/internal/notification/errors"
	notificationMock "go-hr-ticketing/internal/notification/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupNotificationHandler(t *testing.T, actor *domain.Actor) (*notificationMock.MockService, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := notificationMock.NewMockService(gomock.NewController(t))
	h := notification.NewHandler(svc)

	r := gin.New()
	if actor != nil {
		r.Use(func(c *gin.Context) {
			c.Set("actor", *actor)
			c.Next()
		})
	}
	r.GET("/notifications", h.List)
	r.POST("/notifications/:id/read", h.MarkRead)
	return svc, r
}

func serve(t *testing.T, r *gin.Engine, method, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestNotificationHandler(t *testing.T) {
	actor := domain.Actor{ID: uuid.New(), Role: domain.RoleEmployee}

	t.Run("list unread", func(t *testing.T) {
		svc, r := setupNotificationHandler(t, &actor)
		svc.EXPECT().List(gomock.Any(), actor, true).
			Return([]notification.NotificationResponse{{ID: "n1", Message: "assigned"}}, nil)

		w, env := serve(t, r, http.MethodGet, "/notifications?unread=true")

		assert.Equal(t, http.StatusOK, w.Code)
		var data []notification.NotificationResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.Len(t, data, 1)
		assert.Equal(t, "assigned", data[0].Message)
	})

	t.Run("list without identity", func(t *testing.T) {
		_, r := setupNotificationHandler(t, nil)

		w, env := serve(t, r, http.MethodGet, "/notifications")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	})

	t.Run("mark read", func(t *testing.T) {
		svc, r := setupNotificationHandler(t, &actor)
		svc.EXPECT().MarkRead(gomock.Any(), actor, "n1").Return(nil)

		w, env := serve(t, r, http.MethodPost, "/notifications/n1/read")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Ok)
	})

	t.Run("mark read not found", func(t *testing.T) {
		svc, r := setupNotificationHandler(t, &actor)
		svc.EXPECT().MarkRead(gomock.Any(), actor, "n2").Return(notificationerrors.ErrNotificationNotFound)

		w, env := serve(t, r, http.MethodPost, "/notifications/n2/read")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}
