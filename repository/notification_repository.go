package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"campus-event-chat/entity"
)

type NotificationRepository struct {
	Repository[entity.Notification]
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (repository NotificationRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uint) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flags one notification owned by userID and returns how many rows
// changed. A notification of another user counts as missing.
func (repository NotificationRepository) MarkRead(ctx context.Context, db *gorm.DB, id, userID uint) (int64, error) {
	var notification entity.Notification
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Take(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	notification.IsRead = true
	if err := repository.Update(ctx, db, &notification); err != nil {
		return 0, err
	}
	return 1, nil
}
