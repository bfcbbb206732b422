package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-hr-ticketing/internal/events"
	"go-hr-ticketing/internal/messaging/kafka"
	kafkaMock "go-hr-ticketing/internal/messaging/kafka/mock"
	"go-hr-ticketing/internal/notification"
	notificationMock "go-hr-ticketing/internal/notification/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type emitterDeps struct {
	sqlMock sqlmock.Sqlmock
	repo    *notificationMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
	emitter notification.Emitter
}

func setupEmitterTest(t *testing.T) *emitterDeps {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	repo := notificationMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo).AnyTimes()
	outbox.EXPECT().WithTx(gomock.Any()).Return(outbox).AnyTimes()

	return &emitterDeps{
		sqlMock: sqlMock,
		repo:    repo,
		outbox:  outbox,
		emitter: notification.NewEmitter(db, repo, outbox, zap.NewNop()),
	}
}

func TestEmitter_Emit(t *testing.T) {
	ctx := context.Background()
	leaveID := uuid.New()
	hr := uuid.New()
	tl := uuid.New()

	t.Run("inbox rows and mail event", func(t *testing.T) {
		d := setupEmitterTest(t)
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()

		d.repo.EXPECT().CreateMany(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rows []notification.Notification) error {
				require.Len(t, rows, 2)
				assert.Equal(t, hr, rows[0].RecipientID)
				assert.Equal(t, tl, rows[1].RecipientID)
				assert.Equal(t, leaveID, *rows[0].LeaveRequestID)
				assert.Equal(t, "Leave ticket LR-2024-000001 needs your decision", rows[0].Message)
				return nil
			})
		d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
				assert.Equal(t, events.LeaveNotificationTopic, e.Topic)
				assert.Equal(t, events.LeaveNotificationRequested, e.EventType)
				assert.Equal(t, leaveID.String(), e.AggregateID)
				assert.Equal(t, kafka.OutboxStatusPending, e.Status)

				var payload events.LeaveNotificationRequestedEvent
				require.NoError(t, json.Unmarshal(e.Payload, &payload))
				assert.Equal(t, e.ID, payload.EventID)
				assert.Equal(t, []string{"tl@corp.test"}, payload.To)
				assert.Equal(t, "LR-2024-000001", payload.TicketNumber)
				return nil
			})

		d.emitter.Emit(ctx, notification.Notice{
			LeaveID:      leaveID,
			TicketNumber: "LR-2024-000001",
			Recipients:   []uuid.UUID{hr, uuid.Nil, tl, hr},
			Message:      "Leave ticket LR-2024-000001 needs your decision",
			Mail:         &notification.Mail{To: []string{"tl@corp.test"}, Subject: "s", Body: "b"},
		})

		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("nothing to deliver", func(t *testing.T) {
		d := setupEmitterTest(t)

		d.emitter.Emit(ctx, notification.Notice{LeaveID: leaveID, Recipients: []uuid.UUID{uuid.Nil}})

		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("failure is dropped and the next notice still goes out", func(t *testing.T) {
		d := setupEmitterTest(t)
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()

		gomock.InOrder(
			d.repo.EXPECT().CreateMany(gomock.Any(), gomock.Any()).Return(errors.New("db down")),
			d.repo.EXPECT().CreateMany(gomock.Any(), gomock.Any()).Return(nil),
		)

		assert.NotPanics(t, func() {
			d.emitter.Emit(ctx,
				notification.Notice{LeaveID: leaveID, Recipients: []uuid.UUID{hr}, Message: "first"},
				notification.Notice{LeaveID: leaveID, Recipients: []uuid.UUID{tl}, Message: "second"},
			)
		})
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})
}
