package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"campus-event-chat/apperror"
	"campus-event-chat/entity"
	"campus-event-chat/repository"
)

type NotificationUsecaseImpl struct {
	*repository.NotificationRepository
	*gorm.DB
	*logrus.Logger
}

func NewNotificationUsecase(notificationRepository *repository.NotificationRepository, DB *gorm.DB, logger *logrus.Logger) NotificationUsecase {
	return &NotificationUsecaseImpl{NotificationRepository: notificationRepository, DB: DB, Logger: logger}
}

func (uc *NotificationUsecaseImpl) ListNotifications(ctx context.Context, userID uint) ([]entity.Notification, error) {
	notifications, err := uc.NotificationRepository.FindByUser(ctx, uc.DB, userID)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to list notifications of %d", userID)
		return nil, apperror.Persistence("Server error", err)
	}
	return notifications, nil
}

// MarkAsRead only touches notifications owned by userID; anything else is
// reported as not found.
func (uc *NotificationUsecaseImpl) MarkAsRead(ctx context.Context, notificationID, userID uint) error {
	rows, err := uc.NotificationRepository.MarkRead(ctx, uc.DB, notificationID, userID)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to mark notification %d", notificationID)
		return apperror.Persistence("Server error", err)
	}
	if rows == 0 {
		return apperror.NotFound("Notification not found")
	}
	return nil
}
