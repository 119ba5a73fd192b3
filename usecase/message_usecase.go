package usecase

import (
	"context"

	"campus-event-chat/entity"
)

// MessageUsecase is the durable message store. It is the single source of
// truth for chat content; nothing is cached in memory.
type MessageUsecase interface {
	Append(ctx context.Context, eventID, senderID, receiverID uint, text string) (entity.Message, error)
	RecentHistory(ctx context.Context, eventID uint, limit int) ([]entity.Message, error)
	ThreadHistory(ctx context.Context, eventID, userA, userB uint) ([]entity.Message, error)
}
