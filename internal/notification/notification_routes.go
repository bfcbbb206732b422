package notification

import (
	"go-hr-ticketing/internal/middleware"
	"go-hr-ticketing/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	auth gin.HandlerFunc,
) {
	notifications := r.Group("/notifications")
	notifications.Use(auth, middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionRead))
	{
		notifications.GET("", h.List)
		notifications.POST("/:id/read", h.MarkRead)
	}
}
