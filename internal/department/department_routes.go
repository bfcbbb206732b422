package department

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
	departments := r.Group("/departments")
	departments.Use(auth)
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceDepartment, rbac.ActionRead), h.GetAll)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceDepartment, rbac.ActionRead), h.GetById)
		departments.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceDepartment, rbac.ActionManage), h.Create)
		departments.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceDepartment, rbac.ActionManage), h.Update)
		departments.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceDepartment, rbac.ActionManage), h.Delete)
	}
}
