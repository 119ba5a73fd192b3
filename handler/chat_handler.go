package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-event-chat/apperror"
	"campus-event-chat/dto/req"
	"campus-event-chat/middleware"
	"campus-event-chat/usecase"
)

// ChatHandler serves the conversation list and thread history. Bodies are the
// bare {chats} and {messages} objects the web client reads.
type ChatHandler struct {
	usecase.ChatUsecase
	*logrus.Logger
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{ChatUsecase: chatUsecase, Logger: logger}
}

func (handler *ChatHandler) GetChats(ctx *fiber.Ctx) error {
	identity, _ := middleware.CurrentIdentity(ctx)

	chats, err := handler.ChatUsecase.ListChats(ctx.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return ctx.JSON(chats)
}

func (handler *ChatHandler) GetMessages(ctx *fiber.Ctx) error {
	identity, _ := middleware.CurrentIdentity(ctx)
	eventID, err := parseID(ctx, "eventId")
	if err != nil {
		return err
	}

	query := new(req.ThreadQuery)
	if err := ctx.QueryParser(query); err != nil {
		return apperror.Wrap(apperror.ErrValidation, "Invalid withUser", err)
	}

	thread, err := handler.ChatUsecase.GetThread(ctx.UserContext(), identity.UserID, eventID, query)
	if err != nil {
		return err
	}
	return ctx.JSON(thread)
}
