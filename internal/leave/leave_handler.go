package leave

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go-hr-ticketing/internal/domain"
	"go-hr-ticketing/internal/middleware"
	"go-hr-ticketing/internal/shared/apperror"
	"go-hr-ticketing/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	query   QueryService
	logger  *zap.Logger
}

func NewHandler(service Service, query QueryService, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, query: query, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("leave request validation failed", zap.String("path", c.FullPath()), zap.Error(err))
	response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", apperror.MapValidationError(err).Error())
}

func (h *Handler) actor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
	}
	return actor, ok
}

func (h *Handler) Submit(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

type messageOp func(ctx context.Context, actor domain.Actor, id string, req MessageRequest) (LeaveResponse, error)

// handleMessage runs an operation whose body is an optional message.
func (h *Handler) handleMessage(c *gin.Context, op messageOp) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeBindError(c, err)
		return
	}

	resp, err := op(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ReRaise(c *gin.Context)     { h.handleMessage(c, h.service.ReRaise) }
func (h *Handler) AnswerQuery(c *gin.Context) { h.handleMessage(c, h.service.AnswerQuery) }
func (h *Handler) HRReject(c *gin.Context)    { h.handleMessage(c, h.service.HRReject) }
func (h *Handler) HRForwardToTL(c *gin.Context) {
	h.handleMessage(c, h.service.HRForwardToTL)
}
func (h *Handler) HRAskQuery(c *gin.Context) { h.handleMessage(c, h.service.HRAskQuery) }
func (h *Handler) HRForwardToEmployee(c *gin.Context) {
	h.handleMessage(c, h.service.HRForwardToEmployee)
}

func (h *Handler) AcceptRejection(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	resp, err := h.service.AcceptRejection(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Withdraw(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.service.Withdraw(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id"), "withdrawn": true}, nil)
}

func (h *Handler) AssignHR(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req AssignHRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.AssignHR(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) TLDecide(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.TLDecide(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) FinalAcceptance(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.FinalAcceptance(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MyTickets(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	resp, err := h.query.MyTickets(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) HRQueue(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	resp, err := h.query.HRQueue(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(int64(len(resp)), 1, len(resp))
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) TLQueue(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	resp, err := h.query.TLQueue(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(int64(len(resp)), 1, len(resp))
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) MonthlySummary(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	resp, err := h.query.MonthlySummary(c.Request.Context(), actor, c.Param("employee_id"), c.Query("month"), c.Query("year"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) EmployeeBalance(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	resp, err := h.query.EmployeeBalance(c.Request.Context(), actor, c.Param("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ManagerOverview(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	resp, err := h.query.ManagerOverview(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) History(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	resp, err := h.query.History(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
