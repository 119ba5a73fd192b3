package usecase

import (
	"context"

	"campus-event-chat/entity"
)

type NotificationUsecase interface {
	ListNotifications(ctx context.Context, userID uint) ([]entity.Notification, error)
	MarkAsRead(ctx context.Context, notificationID, userID uint) error
}
