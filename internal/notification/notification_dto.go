package notification

type NotificationResponse struct {
	ID             string  `json:"id"`
	LeaveRequestID *string `json:"leave_request_id,omitempty"`
	Message        string  `json:"message"`
	IsRead         bool    `json:"is_read"`
	CreatedAt      string  `json:"created_at"`
}
