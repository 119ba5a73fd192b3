package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"campus-event-chat/apperror"
	"campus-event-chat/dto/req"
	"campus-event-chat/dto/res"
	"campus-event-chat/entity"
	"campus-event-chat/repository"
)

type ChatUsecaseImpl struct {
	*repository.EventRepository
	*repository.MessageRepository
	*repository.UserRepository
	Participation ParticipationUsecase
	Messages      MessageUsecase
	*gorm.DB
	*logrus.Logger
}

func NewChatUsecase(
	eventRepository *repository.EventRepository,
	messageRepository *repository.MessageRepository,
	userRepository *repository.UserRepository,
	participation ParticipationUsecase,
	messages MessageUsecase,
	DB *gorm.DB,
	logger *logrus.Logger,
) ChatUsecase {
	return &ChatUsecaseImpl{
		EventRepository:   eventRepository,
		MessageRepository: messageRepository,
		UserRepository:    userRepository,
		Participation:     participation,
		Messages:          messages,
		DB:                DB,
		Logger:            logger,
	}
}

// ListChats returns one row per event the user takes part in, carrying the
// newest message the user sent or received there. Rows without a message sort
// last.
func (uc *ChatUsecaseImpl) ListChats(ctx context.Context, userID uint) (res.ChatListResponse, error) {
	events, err := uc.EventRepository.FindParticipatingEvents(ctx, uc.DB, userID)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to list events for user=%d", userID)
		return res.ChatListResponse{}, apperror.Persistence("Could not load chats", err)
	}

	chats := make([]res.ChatResponse, 0, len(events))
	counterparts := make([]uint, 0, len(events))
	for _, event := range events {
		chat := res.ChatResponse{EventID: event.ID, EventTitle: event.Title}

		latest, err := uc.MessageRepository.LatestInvolving(ctx, uc.DB, event.ID, userID)
		switch {
		case err == nil:
			other := latest.ReceiverID
			if latest.SenderID != userID {
				other = latest.SenderID
			}
			text, at := latest.Message, latest.CreatedAt
			chat.OtherUserID = &other
			chat.LastMessage = &text
			chat.LastAt = &at
			counterparts = append(counterparts, other)
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			uc.Logger.WithError(err).Errorf("failed to load latest message event=%d", event.ID)
			return res.ChatListResponse{}, apperror.Persistence("Could not load chats", err)
		}
		chats = append(chats, chat)
	}

	users, err := uc.UserRepository.FindByIDs(ctx, uc.DB, counterparts)
	if err != nil {
		uc.Logger.WithError(err).Error("failed to load chat counterparts")
		return res.ChatListResponse{}, apperror.Persistence("Could not load chats", err)
	}
	for i := range chats {
		if chats[i].OtherUserID == nil {
			continue
		}
		if user, ok := users[*chats[i].OtherUserID]; ok {
			name := user.Name
			chats[i].OtherUserName = &name
		}
	}

	sort.SliceStable(chats, func(i, j int) bool {
		a, b := chats[i].LastAt, chats[j].LastAt
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.After(*b)
	})
	return res.ChatListResponse{Chats: chats}, nil
}

func (uc *ChatUsecaseImpl) GetThread(ctx context.Context, userID, eventID uint, query *req.ThreadQuery) (res.ThreadResponse, error) {
	if query == nil || query.WithUser == 0 {
		return res.ThreadResponse{}, apperror.Validation("Missing withUser")
	}
	if err := uc.Participation.CheckParticipant(ctx, userID, eventID); err != nil {
		return res.ThreadResponse{}, err
	}

	messages, err := uc.Messages.ThreadHistory(ctx, eventID, userID, query.WithUser)
	if err != nil {
		return res.ThreadResponse{}, err
	}

	response := res.ThreadResponse{Messages: make([]res.MessageResponse, 0, len(messages))}
	for _, m := range messages {
		response.Messages = append(response.Messages, toMessageResponse(m))
	}
	return response, nil
}

func toMessageResponse(m entity.Message) res.MessageResponse {
	return res.MessageResponse{
		ID:         m.ID,
		EventID:    m.EventID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Message:    m.Message,
		CreatedAt:  m.CreatedAt,
		SenderName: m.Sender.Name,
	}
}
