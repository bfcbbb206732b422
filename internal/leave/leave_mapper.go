package leave

import (
	"fmt"
	"strings"
	"time"

	leaveerrors "go-hr-ticketing/internal/leave/errors"
)

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func formatTicketNumber(year int, seq int64) string {
	return fmt.Sprintf("LR-%d-%06d", year, seq)
}

func normalizeRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	v := strings.TrimSpace(*ref)
	if v == "" {
		return nil
	}
	return &v
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	res := LeaveResponse{
		ID:              l.ID.String(),
		TicketNumber:    l.TicketNumber,
		EmployeeID:      l.EmployeeID.String(),
		LeaveType:       l.LeaveType.String(),
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		TotalDays:       int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1,
		Reason:          l.Reason,
		AttachmentRef:   l.AttachmentRef,
		AppliedAt:       l.AppliedAt.UTC().Format(time.RFC3339),
		Status:          string(l.Status),
		TLStatus:        string(l.TLStatus),
		EmployeeMessage: l.EmployeeMessage,
		HRMessage:       l.HRMessage,
		TeamleadMessage: l.TeamleadMessage,
		ReRaiseCount:    l.ReRaiseCount,
		EscalatedAt:     formatTime(l.EscalatedAt),
		TLDecidedAt:     formatTime(l.TLDecidedAt),
		FinalDecidedAt:  formatTime(l.FinalDecidedAt),
	}
	if l.FinalDecidedBy != nil {
		v := l.FinalDecidedBy.String()
		res.FinalDecidedBy = &v
	}
	return res
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	res := make([]LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		res = append(res, mapToResponse(l))
	}
	return res
}

func mapHistoryResponse(rows []ApprovalHistory) []ApprovalHistoryResponse {
	res := make([]ApprovalHistoryResponse, 0, len(rows))
	for _, h := range rows {
		item := ApprovalHistoryResponse{
			ID:             h.ID.String(),
			EmployeeID:     h.EmployeeID.String(),
			LeaveRequestID: h.LeaveRequestID.String(),
			ApproverID:     h.ApproverID.String(),
			Action:         h.Action,
			Comment:        h.Comment,
			CreatedAt:      h.CreatedAt.UTC().Format(time.RFC3339),
		}
		if h.ApproverDepartmentID != nil {
			v := h.ApproverDepartmentID.String()
			item.ApproverDepartmentID = &v
		}
		res = append(res, item)
	}
	return res
}
