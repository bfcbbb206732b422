package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-hr-ticketing/internal/events"
	"go-hr-ticketing/internal/notification"

	lru "github.com/hashicorp/golang-lru/v2"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

const (
	maxSendAttempts = 3
	seenCapacity    = 1024
)

var (
	retryBackoff = time.Second
	// redeliveryPause separates rounds of attempts on a message that keeps failing.
	redeliveryPause = 30 * time.Second
)

// ConsumeLeaveNotifications mails every leave notification event. A message
// is committed once the mail is sent or the event is unusable. Offsets are
// committed per partition, so a mail that keeps failing holds its partition
// and is retried until it goes through or ctx ends; it is never skipped.
func ConsumeLeaveNotifications(
	ctx context.Context,
	reader MessageReader,
	mailer notification.Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_notification")
	log.Info("leave notification consumer started")

	seen, err := lru.New[string, struct{}](seenCapacity)
	if err != nil {
		log.Error("create dedup cache failed", zap.Error(err))
		return
	}

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch leave notification message failed", zap.Error(err))
			continue
		}

		var event events.LeaveNotificationRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave notification event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.EventType != events.LeaveNotificationRequested || len(event.To) == 0 {
			log.Warn("skipping leave notification event",
				zap.String("event_id", event.EventID),
				zap.String("event_type", event.EventType),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.EventID != "" && seen.Contains(event.EventID) {
			log.Debug("duplicate leave notification skipped", zap.String("event_id", event.EventID))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		mail := notification.Mail{To: event.To, Subject: event.Subject, Body: event.Body}
		err = deliver(ctx, mailer, mail, log.With(
			zap.String("event_id", event.EventID),
			zap.String("leave_id", event.LeaveID),
			zap.String("request_id", headerValue(msg, "request_id")),
			zap.Int64("offset", msg.Offset),
		))
		switch {
		case err == nil:
		case errors.Is(err, notification.ErrUndeliverable):
			log.Error("dropping undeliverable leave notification",
				zap.String("event_id", event.EventID),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		default:
			log.Info("leave notification consumer stopped with message uncommitted",
				zap.Int64("offset", msg.Offset),
			)
			return
		}
		if event.EventID != "" {
			seen.Add(event.EventID, struct{}{})
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave notification message failed", zap.Error(err))
			continue
		}

		log.Info("leave notification mailed",
			zap.String("event_id", event.EventID),
			zap.String("leave_id", event.LeaveID),
			zap.String("ticket_number", event.TicketNumber),
		)
	}
}

// deliver sends mail, pausing between rounds of attempts, until it succeeds,
// the mail proves undeliverable or ctx ends.
func deliver(ctx context.Context, mailer notification.Mailer, mail notification.Mail, log *zap.Logger) error {
	for round := 1; ; round++ {
		err := sendWithRetry(ctx, mailer, mail)
		if err == nil || errors.Is(err, notification.ErrUndeliverable) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Error("send leave notification mail failed, holding partition",
			zap.Int("round", round),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(redeliveryPause):
		}
	}
}

func sendWithRetry(ctx context.Context, mailer notification.Mailer, mail notification.Mail) error {
	var err error
	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		if err = mailer.Send(ctx, mail); err == nil || errors.Is(err, notification.ErrUndeliverable) {
			return err
		}
		if attempt == maxSendAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
	return err
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
