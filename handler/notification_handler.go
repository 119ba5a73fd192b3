package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-event-chat/dto/res"
	"campus-event-chat/entity"
	"campus-event-chat/middleware"
	"campus-event-chat/usecase"
)

type NotificationHandler struct {
	usecase.NotificationUsecase
	*logrus.Logger
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{NotificationUsecase: notificationUsecase, Logger: logger}
}

func (handler *NotificationHandler) ListNotifications(ctx *fiber.Ctx) error {
	identity, _ := middleware.CurrentIdentity(ctx)

	notifications, err := handler.NotificationUsecase.ListNotifications(ctx.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return ctx.JSON(res.CommonResponse[[]entity.Notification]{
		Message:    "Successfully get notifications",
		StatusCode: fiber.StatusOK,
		Data:       notifications,
	})
}

func (handler *NotificationHandler) MarkAsRead(ctx *fiber.Ctx) error {
	identity, _ := middleware.CurrentIdentity(ctx)
	notificationID, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	if err := handler.NotificationUsecase.MarkAsRead(ctx.UserContext(), notificationID, identity.UserID); err != nil {
		return err
	}
	return ctx.JSON(res.CommonResponse[any]{
		Message:    "Marked as read",
		StatusCode: fiber.StatusOK,
	})
}
