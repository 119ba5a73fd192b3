package usecase

import (
	"context"

	"campus-event-chat/dto/req"
	"campus-event-chat/dto/res"
)

type ChatUsecase interface {
	ListChats(ctx context.Context, userID uint) (res.ChatListResponse, error)
	GetThread(ctx context.Context, userID, eventID uint, query *req.ThreadQuery) (res.ThreadResponse, error)
}
