package kafka_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-hr-ticketing/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to pending inside tx", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
			WithArgs("evt-1", "req-1", "leave_request", "leave-1", "leave_notification_requested", "hr.leave.notification.v1", []byte(`{}`), kafka.OutboxStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)
		err = kafka.NewOutboxRepository(db).WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            "evt-1",
			RequestID:     "req-1",
			AggregateType: "leave_request",
			AggregateID:   "leave-1",
			EventType:     "leave_notification_requested",
			Topic:         "hr.leave.notification.v1",
			Payload:       []byte(`{}`),
		})
		require.NoError(t, err)
		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid event", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		err = kafka.NewOutboxRepository(db).Create(ctx, kafka.OutboxEvent{ID: "evt-1", Topic: "t", Payload: []byte(`{}`)})

		assert.EqualError(t, err, "outbox event type is required")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, kafka.MaxOutboxRetries, 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
			AddRow("evt-1", "req-1", "leave_request", "leave-1", "leave_notification_requested", "hr.leave.notification.v1", []byte(`{}`), "failed", 2, now))

	events, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, 2, events[0].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("retry_count = retry_count + 1")).
		WithArgs("evt-1", kafka.OutboxStatusFailed, "broker down", kafka.MaxOutboxRetries, kafka.OutboxStatusDead).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "evt-1", "broker down")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
