package leave

import (
	"go-hr-ticketing/internal/middleware"
	"go-hr-ticketing/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes wires the leave workflow. decisionLimit is shared by every
// HR and Team Lead decision route so a user has one bucket across them;
// idempotency guards the POSTs that create or finalise.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	auth gin.HandlerFunc,
	idempotency gin.HandlerFunc,
	decisionLimit gin.HandlerFunc,
	logger *zap.Logger,
) {
	authorize := func(action string) gin.HandlerFunc {
		return middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, action)
	}

	leaves := r.Group("/leaves")
	leaves.Use(auth)
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.POST("", authorize(rbac.ActionCreate), idempotency, handler.Submit)
		leaves.GET("/me", authorize(rbac.ActionReadOwn), handler.MyTickets)

		leaves.GET("/hr/queue", authorize(rbac.ActionHRQueue), handler.HRQueue)
		leaves.GET("/tl/queue", authorize(rbac.ActionTLQueue), handler.TLQueue)
		leaves.GET("/manager/overview", authorize(rbac.ActionOverview), handler.ManagerOverview)
		leaves.GET("/employees/:employee_id/balance", authorize(rbac.ActionReadBalance), handler.EmployeeBalance)
		leaves.GET("/employees/:employee_id/monthly", authorize(rbac.ActionReadOwn), handler.MonthlySummary)

		leaves.GET("/:id/history", authorize(rbac.ActionReadOwn), handler.History)
		leaves.POST("/:id/re-raise", authorize(rbac.ActionCreate), handler.ReRaise)
		leaves.POST("/:id/accept-rejection", authorize(rbac.ActionCreate), handler.AcceptRejection)
		leaves.POST("/:id/answer-query", authorize(rbac.ActionCreate), handler.AnswerQuery)
		leaves.DELETE("/:id", authorize(rbac.ActionCreate), handler.Withdraw)

		leaves.POST("/:id/assign", decisionLimit, authorize(rbac.ActionAssign), idempotency, handler.AssignHR)
		leaves.POST("/:id/hr/reject", decisionLimit, authorize(rbac.ActionHRDecide), handler.HRReject)
		leaves.POST("/:id/hr/forward-tl", decisionLimit, authorize(rbac.ActionHRDecide), handler.HRForwardToTL)
		leaves.POST("/:id/hr/query", decisionLimit, authorize(rbac.ActionHRDecide), handler.HRAskQuery)
		leaves.POST("/:id/hr/forward-employee", decisionLimit, authorize(rbac.ActionHRDecide), handler.HRForwardToEmployee)
		leaves.POST("/:id/tl/decision", decisionLimit, authorize(rbac.ActionTLDecide), handler.TLDecide)
		leaves.POST("/:id/final", decisionLimit, authorize(rbac.ActionFinalize), idempotency, handler.FinalAcceptance)
	}
}
