package notification

import (
	"context"

	"go-hr-ticketing/internal/domain"
	notificationerrors "go-hr-ticketing/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, actor domain.Actor, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, actor domain.Actor, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, actor domain.Actor, unreadOnly bool) ([]NotificationResponse, error) {
	rows, err := s.repo.FindByRecipient(ctx, actor.ID, unreadOnly)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) MarkRead(ctx context.Context, actor domain.Actor, id string) error {
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}
	ok, err := s.repo.MarkRead(ctx, notificationID, actor.ID)
	if err != nil {
		s.logger.Error("mark notification read failed",
			zap.String("notification_id", id),
			zap.String("actor_id", actor.ID.String()),
			zap.Error(err),
		)
		return err
	}
	if !ok {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}
