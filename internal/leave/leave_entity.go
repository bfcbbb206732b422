package leave

import (
	"time"

	"go-hr-ticketing/internal/domain"

	"github.com/google/uuid"
)

// LeaveRequest is the ticket. Status and TLStatus move independently; the
// only place one is copied into the other is HR forwarding to the employee.
type LeaveRequest struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	TicketNumber string           `gorm:"size:32;not null;uniqueIndex:uq_leave_ticket_number"`
	EmployeeID   uuid.UUID        `gorm:"type:uuid;not null;index:idx_leave_requests_employee"`
	LeaveType    domain.LeaveType `gorm:"type:smallint;not null"`
	StartDate    time.Time        `gorm:"type:date;not null"`
	EndDate      time.Time        `gorm:"type:date;not null"`
	Reason       string           `gorm:"type:text;not null"`
	// AttachmentRef points into external storage and is never opened here.
	AttachmentRef *string   `gorm:"size:512"`
	AppliedAt     time.Time `gorm:"<-:create;not null"`

	Status          Status   `gorm:"type:varchar(40);not null;index:idx_leave_requests_status"`
	TLStatus        TLStatus `gorm:"column:tl_status;type:varchar(40);not null"`
	EmployeeMessage string   `gorm:"type:text"`
	HRMessage       string   `gorm:"column:hr_message;type:text"`
	TeamleadMessage string   `gorm:"column:teamlead_message;type:text"`
	ReRaiseCount    int      `gorm:"column:reraise_count;not null;default:0"`

	EscalatedAt    *time.Time
	TLDecidedAt    *time.Time `gorm:"column:tl_decided_at"`
	FinalDecidedBy *uuid.UUID `gorm:"type:uuid"`
	FinalDecidedAt *time.Time
	UpdatedAt      time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (l *LeaveRequest) state() State {
	return State{Status: l.Status, TLStatus: l.TLStatus, ReRaiseCount: l.ReRaiseCount}
}

func (l *LeaveRequest) apply(s State) {
	l.Status = s.Status
	l.TLStatus = s.TLStatus
	l.ReRaiseCount = s.ReRaiseCount
}

// Assignment is the single HR handler of a ticket. Reassignment replaces
// the row.
type Assignment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeaveRequestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_assignment_request"`
	HREmployeeID   uuid.UUID `gorm:"column:hr_employee_id;type:uuid;not null;index"`
	AssignedBy     uuid.UUID `gorm:"type:uuid;not null"`
	AssignedAt     time.Time `gorm:"not null"`
}

func (Assignment) TableName() string {
	return "leave_assignments"
}

// TLAssignment is created the first time a ticket is escalated and never
// duplicated.
type TLAssignment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeaveRequestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_tl_assignment_request"`
	DepartmentID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (TLAssignment) TableName() string {
	return "leave_tl_assignments"
}

const (
	HistoryApproved = "Approved"
	HistoryRejected = "Rejected"
)

// historyAction is the approval history label of a Team Lead verdict.
func historyAction(d Decision) string {
	if d == DecisionApproved {
		return HistoryApproved
	}
	return HistoryRejected
}

// ApprovalHistory is append-only.
type ApprovalHistory struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID           uuid.UUID  `gorm:"type:uuid;not null"`
	LeaveRequestID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ApproverDepartmentID *uuid.UUID `gorm:"type:uuid"`
	ApproverID           uuid.UUID  `gorm:"type:uuid;not null"`
	Action               string     `gorm:"size:20;not null"`
	Comment              string     `gorm:"type:text"`
	CreatedAt            time.Time  `gorm:"<-:create;not null"`
}

func (ApprovalHistory) TableName() string {
	return "approval_history"
}

// Person is the directory view of an employee the workflow needs: who to
// notify and which department's Team Lead is responsible.
type Person struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Role           domain.Role
	DepartmentID   *uuid.UUID
	DepartmentName string
	DepartmentHead string
	TLMail         string
}

// OverviewRow is a ticket joined with its owner and current HR handler.
type OverviewRow struct {
	LeaveRequest
	EmployeeName string
	HRName       string
	HREmail      string
}
