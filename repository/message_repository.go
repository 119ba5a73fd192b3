package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"campus-event-chat/entity"
)

type MessageRepository struct {
	Repository[entity.Message]
	now func() time.Time
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{now: time.Now}
}

// Append stores msg with a server-side timestamp that never goes backwards
// within its event, so ordering by (created_at, id) matches commit order.
// Timestamps are kept at microsecond precision, the finest postgres stores.
func (repository MessageRepository) Append(ctx context.Context, db *gorm.DB, msg *entity.Message) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		createdAt := repository.now().UTC().Truncate(time.Microsecond)

		var last entity.Message
		err := tx.Where("event_id = ?", msg.EventID).Order("id DESC").Take(&last).Error
		switch {
		case err == nil:
			if lastAt := last.CreatedAt.UTC(); createdAt.Before(lastAt) {
				createdAt = lastAt
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		msg.ID = 0
		msg.CreatedAt = createdAt
		return tx.Omit("Sender").Create(msg).Error
	})
}

// RecentHistory returns up to limit of the newest messages of an event,
// oldest first.
func (repository MessageRepository) RecentHistory(ctx context.Context, db *gorm.DB, eventID uint, limit int) ([]entity.Message, error) {
	var messages []entity.Message
	err := db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// ThreadHistory returns every message exchanged between a and b in an event,
// oldest first, with the sender loaded.
func (repository MessageRepository) ThreadHistory(ctx context.Context, db *gorm.DB, eventID, a, b uint) ([]entity.Message, error) {
	var messages []entity.Message
	err := db.WithContext(ctx).
		Preload("Sender").
		Where("event_id = ?", eventID).
		Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))", a, b, b, a).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// LatestInvolving returns the newest message of an event sent or received by
// userID, or gorm.ErrRecordNotFound.
func (repository MessageRepository) LatestInvolving(ctx context.Context, db *gorm.DB, eventID, userID uint) (entity.Message, error) {
	var message entity.Message
	err := db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Where("(sender_id = ? OR receiver_id = ?)", userID, userID).
		Order("created_at DESC, id DESC").
		Take(&message).Error
	return message, err
}

// NewMessageRepositoryWithClock is NewMessageRepository with an injected clock.
func NewMessageRepositoryWithClock(now func() time.Time) *MessageRepository {
	return &MessageRepository{now: now}
}
