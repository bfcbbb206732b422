package leave

import "go-hr-ticketing/internal/balance"

type SubmitLeaveRequest struct {
	LeaveType     string  `json:"leave_type" binding:"required"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       string  `json:"end_date" binding:"required"`
	Reason        string  `json:"reason" binding:"required,max=2000"`
	AttachmentRef *string `json:"attachment_ref" binding:"omitempty,max=512"`
}

type MessageRequest struct {
	Message string `json:"message" binding:"max=2000"`
}

type AssignHRRequest struct {
	HREmployeeID   string `json:"hr_employee_id" binding:"omitempty,uuid"`
	HREmail        string `json:"hr_email" binding:"omitempty,email"`
	MarkInProgress bool   `json:"mark_in_progress"`
}

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
	Message  string `json:"message" binding:"max=2000"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	TicketNumber    string  `json:"ticket_number"`
	EmployeeID      string  `json:"employee_id"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	AttachmentRef   *string `json:"attachment_ref,omitempty"`
	AppliedAt       string  `json:"applied_at"`
	Status          string  `json:"status"`
	TLStatus        string  `json:"tl_status"`
	EmployeeMessage string  `json:"employee_message,omitempty"`
	HRMessage       string  `json:"hr_message,omitempty"`
	TeamleadMessage string  `json:"teamlead_message,omitempty"`
	ReRaiseCount    int     `json:"reraise_count"`
	EscalatedAt     *string `json:"escalated_at,omitempty"`
	TLDecidedAt     *string `json:"tl_decided_at,omitempty"`
	FinalDecidedBy  *string `json:"final_decided_by,omitempty"`
	FinalDecidedAt  *string `json:"final_decided_at,omitempty"`
}

type MyTicketsResponse struct {
	Tickets   []LeaveResponse `json:"tickets"`
	Remaining *balance.Counts `json:"remaining,omitempty"`
}

type MonthlySummaryResponse struct {
	EmployeeID string         `json:"employee_id"`
	Month      string         `json:"month"`
	Year       int            `json:"year"`
	Approved   balance.Counts `json:"approved"`
}

type ApprovalHistoryResponse struct {
	ID                   string  `json:"id"`
	EmployeeID           string  `json:"employee_id"`
	LeaveRequestID       string  `json:"leave_request_id"`
	ApproverDepartmentID *string `json:"approver_department_id,omitempty"`
	ApproverID           string  `json:"approver_id"`
	Action               string  `json:"action"`
	Comment              string  `json:"comment,omitempty"`
	CreatedAt            string  `json:"created_at"`
}

type OverviewTicketResponse struct {
	LeaveResponse
	EmployeeName string `json:"employee_name"`
	HRName       string `json:"hr_name,omitempty"`
	HREmail      string `json:"hr_email,omitempty"`
}

type HRMemberResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ManagerOverviewResponse struct {
	Tickets []OverviewTicketResponse `json:"tickets"`
	HRStaff []HRMemberResponse       `json:"hr_staff"`
}
