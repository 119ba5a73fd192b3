package usecase

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"campus-event-chat/apperror"
	"campus-event-chat/entity"
	"campus-event-chat/repository"
)

const defaultHistoryLimit = 50

type MessageUsecaseImpl struct {
	*repository.MessageRepository
	*gorm.DB
	*logrus.Logger
}

func NewMessageUsecase(messageRepository *repository.MessageRepository, DB *gorm.DB, logger *logrus.Logger) MessageUsecase {
	return &MessageUsecaseImpl{MessageRepository: messageRepository, DB: DB, Logger: logger}
}

func (uc *MessageUsecaseImpl) Append(ctx context.Context, eventID, senderID, receiverID uint, text string) (entity.Message, error) {
	if strings.TrimSpace(text) == "" {
		return entity.Message{}, apperror.Validation("Message text is required")
	}

	message := entity.Message{
		EventID:    eventID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    text,
	}
	if err := uc.MessageRepository.Append(ctx, uc.DB, &message); err != nil {
		uc.Logger.WithError(err).Errorf("failed to store message event=%d sender=%d", eventID, senderID)
		return entity.Message{}, apperror.Persistence("Message could not be saved", err)
	}
	return message, nil
}

func (uc *MessageUsecaseImpl) RecentHistory(ctx context.Context, eventID uint, limit int) ([]entity.Message, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	messages, err := uc.MessageRepository.RecentHistory(ctx, uc.DB, eventID, limit)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to load history event=%d", eventID)
		return nil, apperror.Persistence("Could not load chat history", err)
	}
	return messages, nil
}

func (uc *MessageUsecaseImpl) ThreadHistory(ctx context.Context, eventID, userA, userB uint) ([]entity.Message, error) {
	messages, err := uc.MessageRepository.ThreadHistory(ctx, uc.DB, eventID, userA, userB)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to load thread event=%d users=%d,%d", eventID, userA, userB)
		return nil, apperror.Persistence("Could not load messages", err)
	}
	return messages, nil
}
