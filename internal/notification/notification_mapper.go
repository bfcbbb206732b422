package notification

import "time"

func mapToResponse(n Notification) NotificationResponse {
	res := NotificationResponse{
		ID:        n.ID.String(),
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.LeaveRequestID != nil {
		v := n.LeaveRequestID.String()
		res.LeaveRequestID = &v
	}
	return res
}

func mapToListResponse(rows []Notification) []NotificationResponse {
	res := make([]NotificationResponse, 0, len(rows))
	for _, n := range rows {
		res = append(res, mapToResponse(n))
	}
	return res
}
