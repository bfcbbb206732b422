package events

import "time"

const (
	LeaveNotificationTopic = "hr.leave.notification.v1"

	LeaveNotificationRequested = "leave_notification_requested"
)

// LeaveNotificationRequestedEvent asks the mail consumer to deliver one
// message about a leave ticket.
type LeaveNotificationRequestedEvent struct {
	EventType    string    `json:"event_type"`
	EventID      string    `json:"event_id"`
	LeaveID      string    `json:"leave_id"`
	TicketNumber string    `json:"ticket_number,omitempty"`
	To           []string  `json:"to"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
	OccurredAt   time.Time `json:"occurred_at"`
}
