package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_recipient"`
	LeaveRequestID *uuid.UUID `gorm:"type:uuid"`
	Message        string     `gorm:"type:text;not null"`
	IsRead         bool       `gorm:"not null;default:false"`
	CreatedAt      time.Time  `gorm:"<-:create;not null"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Mail is an outbound message queued for the mail consumer.
type Mail struct {
	To      []string
	Subject string
	Body    string
}

// Notice is what a workflow step wants delivered: one inbox row per
// recipient and, optionally, one mail.
type Notice struct {
	LeaveID      uuid.UUID
	TicketNumber string
	Recipients   []uuid.UUID
	Message      string
	Mail         *Mail
}
