package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-hr-ticketing/internal/events"
	"go-hr-ticketing/internal/messaging/kafka"
	"go-hr-ticketing/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Emitter delivers notices after the workflow transaction has committed.
// It never fails the caller; problems are logged and dropped.
type Emitter interface {
	Emit(ctx context.Context, notices ...Notice)
}

type emitter struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewEmitter(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Emitter {
	l := zap.L().Named("notification.emitter")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.emitter")
	}
	return &emitter{
		db:     db,
		repo:   repo,
		outbox: outbox,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func (e *emitter) Emit(ctx context.Context, notices ...Notice) {
	log := contextutil.GetLogger(ctx, e.logger)
	for _, n := range notices {
		if err := e.emit(ctx, n); err != nil {
			log.Warn("notification dropped",
				zap.String("leave_id", n.LeaveID.String()),
				zap.Int("recipients", len(n.Recipients)),
				zap.Bool("has_mail", n.Mail != nil),
				zap.Error(err),
			)
		}
	}
}

func (e *emitter) emit(ctx context.Context, n Notice) error {
	rows := make([]Notification, 0, len(n.Recipients))
	seen := make(map[uuid.UUID]struct{}, len(n.Recipients))
	for _, id := range n.Recipients {
		if id == uuid.Nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		leaveID := n.LeaveID
		rows = append(rows, Notification{
			ID:             uuid.New(),
			RecipientID:    id,
			LeaveRequestID: &leaveID,
			Message:        n.Message,
			CreatedAt:      e.now(),
		})
	}

	hasMail := n.Mail != nil && len(n.Mail.To) > 0
	if len(rows) == 0 && !hasMail {
		return nil
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := e.repo.WithTx(tx).CreateMany(ctx, rows); err != nil {
		return err
	}

	if hasMail {
		event := events.LeaveNotificationRequestedEvent{
			EventType:    events.LeaveNotificationRequested,
			EventID:      uuid.NewString(),
			LeaveID:      n.LeaveID.String(),
			TicketNumber: n.TicketNumber,
			To:           n.Mail.To,
			Subject:      n.Mail.Subject,
			Body:         n.Mail.Body,
			OccurredAt:   e.now(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		if err := e.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            event.EventID,
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "leave_request",
			AggregateID:   n.LeaveID.String(),
			EventType:     events.LeaveNotificationRequested,
			Topic:         events.LeaveNotificationTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return err
		}
	}

	return tx.Commit()
}
