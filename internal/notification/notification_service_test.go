package notification_test

import (
	"context"
	"testing"
	"time"

	"go-hr-ticketing/internal/domain"
	"go-hr-ticketing/internal/notification"
	notificationerrors "go-hr-ticketing/internal/notification/errors"
	notificationMock "go-hr-ticketing/internal/notification/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNotificationService(t *testing.T) {
	ctx := context.Background()
	actor := domain.Actor{ID: uuid.New(), Role: domain.RoleEmployee}

	t.Run("list", func(t *testing.T) {
		repo := notificationMock.NewMockRepository(gomock.NewController(t))
		leaveID := uuid.New()
		repo.EXPECT().FindByRecipient(gomock.Any(), actor.ID, true).Return([]notification.Notification{
			{ID: uuid.New(), RecipientID: actor.ID, LeaveRequestID: &leaveID, Message: "hello", CreatedAt: time.Now()},
		}, nil)

		res, err := notification.NewService(repo).List(ctx, actor, true)

		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "hello", res[0].Message)
	})

	t.Run("mark read", func(t *testing.T) {
		repo := notificationMock.NewMockRepository(gomock.NewController(t))
		id := uuid.New()
		repo.EXPECT().MarkRead(gomock.Any(), id, actor.ID).Return(true, nil)

		assert.NoError(t, notification.NewService(repo).MarkRead(ctx, actor, id.String()))
	})

	t.Run("mark read of someone else's notification", func(t *testing.T) {
		repo := notificationMock.NewMockRepository(gomock.NewController(t))
		id := uuid.New()
		repo.EXPECT().MarkRead(gomock.Any(), id, actor.ID).Return(false, nil)

		err := notification.NewService(repo).MarkRead(ctx, actor, id.String())

		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		repo := notificationMock.NewMockRepository(gomock.NewController(t))
		err := notification.NewService(repo).MarkRead(ctx, actor, "x")
		assert.ErrorIs(t, err, notificationerrors.ErrInvalidNotificationID)
	})
}
