package leaveerrors

import (
	"net/http"

	"go-hr-ticketing/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"leave_type must be one of EmergencyLeave, SickLeave, PlannedLeave",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrPlannedNoticeTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"planned leave must start more than the required notice period from today",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be Approved or Rejected",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"month must be 1-12 or an English month name",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"invalid year",
		http.StatusBadRequest,
	)
	ErrHRRequired = apperror.New(
		apperror.CodeInvalidInput,
		"hr_employee_id or hr_email is required",
		http.StatusBadRequest,
	)
	ErrAssigneeNotHR = apperror.New(
		apperror.CodeInvalidInput,
		"assignee must have the HR role",
		http.StatusBadRequest,
	)

	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrHREmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"HR employee not found",
		http.StatusNotFound,
	)

	ErrForbiddenRole = apperror.New(
		apperror.CodeForbidden,
		"your role cannot perform this action",
		http.StatusForbidden,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"only the employee who raised the leave can do this",
		http.StatusForbidden,
	)
	ErrNotAssignedHR = apperror.New(
		apperror.CodeForbidden,
		"leave is not assigned to you",
		http.StatusForbidden,
	)
	ErrNotDepartmentTL = apperror.New(
		apperror.CodeForbidden,
		"you are not the team lead of this employee's department",
		http.StatusForbidden,
	)

	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeConflict,
		"invalid leave status transition",
		http.StatusConflict,
	)
	ErrTicketBusy = apperror.New(
		apperror.CodeConflict,
		"ticket is being processed",
		http.StatusConflict,
	)
	ErrSameHandler = apperror.New(
		apperror.CodeConflict,
		"same handler",
		http.StatusConflict,
	)
	ErrLockedAtTLStage = apperror.New(
		apperror.CodeConflict,
		"locked at TL stage",
		http.StatusConflict,
	)
	ErrTLDecisionPending = apperror.New(
		apperror.CodeConflict,
		"team lead has not decided yet",
		http.StatusConflict,
	)
	ErrTLApprovalRequired = apperror.New(
		apperror.CodeConflict,
		"team lead approval is required before final acceptance",
		http.StatusConflict,
	)
	ErrApprovalHistoryMissing = apperror.New(
		apperror.CodeConflict,
		"no approval history for this leave",
		http.StatusConflict,
	)
	ErrAlreadyFinal = apperror.New(
		apperror.CodeConflict,
		"leave already has a final decision",
		http.StatusConflict,
	)
	ErrNoDepartment = apperror.New(
		apperror.CodeConflict,
		"employee has no department",
		http.StatusConflict,
	)
	ErrTLAssignmentMissing = apperror.New(
		apperror.CodeConflict,
		"leave has no team lead assignment",
		http.StatusConflict,
	)
	ErrReferenceInvalid = apperror.New(
		apperror.CodeConflict,
		"leave references a record that does not exist",
		http.StatusConflict,
	)
)
